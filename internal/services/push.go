package services

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/ardhilink/ardhilink-api/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// PushService delivers notifications via Firebase Cloud Messaging. It
// degrades to a no-op when no service account is configured (dev mode).
type PushService struct {
	client *messaging.Client
	db     *gorm.DB
	log    *zap.Logger
}

func NewPushService(serviceAccountPath string, db *gorm.DB, log *zap.Logger) *PushService {
	svc := &PushService{db: db, log: log}

	if serviceAccountPath == "" {
		log.Info("push notifications disabled: no FCM service account configured")
		return svc
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		log.Warn("failed to initialize Firebase app", zap.Error(err))
		return svc
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Warn("failed to get FCM messaging client", zap.Error(err))
		return svc
	}

	svc.client = client
	log.Info("push notifications enabled")
	return svc
}

// SendToUser pushes to the user's registered device. No-op when push is not
// configured or the user has no token; failures are logged, never returned.
func (p *PushService) SendToUser(userID uuid.UUID, title, body string) {
	if p.client == nil {
		return
	}

	var user models.User
	if err := p.db.Select("fcm_token").First(&user, "id = ?", userID).Error; err != nil {
		return
	}
	if user.FCMToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}

	if _, err := p.client.Send(context.Background(), msg); err != nil {
		p.log.Warn("push delivery failed",
			zap.String("userId", userID.String()), zap.Error(err))
	}
}
