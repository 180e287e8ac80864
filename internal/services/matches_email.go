package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ardhilink/ardhilink-api/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Email side effects of the state machine. Always fire-and-forget: a failed
// send is logged and the request keeps EmailSent=false for a later sweep.

func (s *MatchService) sendRequestEmail(requestID uuid.UUID) {
	if !s.mailer.Enabled() {
		return
	}
	go func() {
		request, err := s.reload(requestID)
		if err != nil || request.Restorer == nil || request.Organization == nil || request.LandListing == nil {
			return
		}
		subject := "New match request for " + request.LandListing.Title
		body := fmt.Sprintf(
			"%s has requested to collaborate on your land listing %q. Log in to review the request.",
			request.Organization.DisplayName(), request.LandListing.Title)
		s.deliverEmail(request, request.Restorer.Email, subject, body)
	}()
}

func (s *MatchService) sendAcceptedEmail(requestID uuid.UUID) {
	if !s.mailer.Enabled() {
		return
	}
	go func() {
		request, err := s.reload(requestID)
		if err != nil || request.Organization == nil || request.Restorer == nil || request.LandListing == nil {
			return
		}
		subject := "Your match request was accepted"
		body := fmt.Sprintf(
			"%s accepted your request for the land listing %q. You can now coordinate the restoration project.",
			request.Restorer.DisplayName(), request.LandListing.Title)
		s.deliverEmail(request, request.Organization.Email, subject, body)
	}()
}

func (s *MatchService) deliverEmail(request *models.MatchRequest, to, subject, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.mailer.Send(ctx, to, subject, body); err != nil {
		s.log.Warn("match request email failed",
			zap.String("requestId", request.ID.String()), zap.Error(err))
		return
	}

	now := time.Now()
	if err := s.db.Model(&models.MatchRequest{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{"email_sent": true, "email_sent_at": &now}).Error; err != nil {
		s.log.Warn("failed to record email delivery",
			zap.String("requestId", request.ID.String()), zap.Error(err))
	}
}
