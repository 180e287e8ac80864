package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationNewRequest      = "new_request"
	NotificationRequestAccepted = "request_accepted"
	NotificationRequestDeclined = "request_declined"
)

// Notification is a user-visible event record. The engine only guarantees
// the row exists; push/email delivery is best-effort on top of it.
type Notification struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `json:"userId" gorm:"type:uuid;index;not null"`
	Type           string     `json:"type" gorm:"not null"`
	Message        string     `json:"message" gorm:"not null"`
	IsRead         bool       `json:"isRead" gorm:"default:false"`
	MatchRequestID *uuid.UUID `json:"matchRequestId" gorm:"type:uuid"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
