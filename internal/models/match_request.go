package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match request lifecycle. pending is the only non-terminal state:
// pending -> accepted | declined, and pending -> land_no_longer_available
// as a cascade when a sibling request is accepted.
const (
	StatusPending           = "pending"
	StatusAccepted          = "accepted"
	StatusDeclined          = "declined"
	StatusLandNoLongerAvail = "land_no_longer_available"
)

const (
	ActionAccept  = "accept"
	ActionDecline = "decline"
)

// MatchRequest is an organization's claim of interest in a listing. Rows are
// append-only; an organization may request a given listing at most once,
// ever, including after a decline.
type MatchRequest struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `json:"organizationId" gorm:"type:uuid;uniqueIndex:idx_org_listing;not null"`
	RestorerID     uuid.UUID `json:"restorerId" gorm:"type:uuid;index;not null"`
	LandListingID  uuid.UUID `json:"landListingId" gorm:"type:uuid;uniqueIndex:idx_org_listing;not null"`
	Status         string    `json:"status" gorm:"default:pending;index"`

	// Email tracking
	EmailSent   bool       `json:"emailSent" gorm:"default:false"`
	EmailSentAt *time.Time `json:"emailSentAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Organization *User        `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Restorer     *User        `json:"restorer,omitempty" gorm:"foreignKey:RestorerID"`
	LandListing  *LandListing `json:"landListing,omitempty" gorm:"foreignKey:LandListingID"`
}

func (m *MatchRequest) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type CreateMatchRequest struct {
	LandListingID uuid.UUID `json:"landListingId"`
}

type UpdateMatchStatusRequest struct {
	Action string `json:"action"` // accept, decline
}
