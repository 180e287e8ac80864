package services

import (
	"github.com/ardhilink/ardhilink-api/internal/apperr"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationService appends user-visible event records and hands them to
// best-effort delivery. The record is the guarantee; delivery is not.
type NotificationService struct {
	db   *gorm.DB
	push *PushService
	log  *zap.Logger
}

func NewNotificationService(db *gorm.DB, push *PushService, log *zap.Logger) *NotificationService {
	return &NotificationService{db: db, push: push, log: log}
}

// Record appends a notification row on the given handle, which may be a
// transaction so the row commits atomically with the state change that
// produced it. Delivery is the caller's business, after commit.
func (s *NotificationService) Record(tx *gorm.DB, userID uuid.UUID, notifType, message string, matchRequestID *uuid.UUID) (*models.Notification, error) {
	notif := models.Notification{
		UserID:         userID,
		Type:           notifType,
		Message:        message,
		MatchRequestID: matchRequestID,
	}
	if err := tx.Create(&notif).Error; err != nil {
		return nil, err
	}
	return &notif, nil
}

// Deliver pushes the notification to the recipient's device. Fire-and-forget:
// failures are logged, never propagated.
func (s *NotificationService) Deliver(notif *models.Notification) {
	if s.push == nil {
		return
	}
	go s.push.SendToUser(notif.UserID, pushTitle(notif.Type), notif.Message)
}

// Create is Record + Deliver outside any transaction.
func (s *NotificationService) Create(userID uuid.UUID, notifType, message string, matchRequestID *uuid.UUID) (*models.Notification, error) {
	notif, err := s.Record(s.db, userID, notifType, message, matchRequestID)
	if err != nil {
		return nil, err
	}
	s.Deliver(notif)
	return notif, nil
}

// List returns the principal's unread notifications, newest first.
func (s *NotificationService) List(principal models.Principal) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ? AND is_read = ?", principal.ID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flags a notification read. Idempotent: re-marking an already-read
// notification succeeds silently.
func (s *NotificationService) MarkRead(principal models.Principal, id uuid.UUID) error {
	var notif models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", id, principal.ID).
		First(&notif).Error; err != nil {
		return apperr.NotFound("notification not found")
	}
	if notif.IsRead {
		return nil
	}
	return s.db.Model(&notif).Update("is_read", true).Error
}

func pushTitle(notifType string) string {
	switch notifType {
	case models.NotificationNewRequest:
		return "New match request"
	case models.NotificationRequestAccepted:
		return "Request accepted"
	case models.NotificationRequestDeclined:
		return "Request update"
	default:
		return "ArdhiLink"
	}
}
