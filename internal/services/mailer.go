package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

// Mailer sends match-request emails through SES. Like push delivery it is
// best-effort and degrades to a no-op when not configured.
type Mailer struct {
	client *ses.Client
	sender string
	log    *zap.Logger
}

func NewMailer(region, sender string, log *zap.Logger) *Mailer {
	m := &Mailer{sender: sender, log: log}

	if region == "" || sender == "" {
		log.Info("email disabled: AWS region or sender not configured")
		return m
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		log.Warn("failed to load AWS config", zap.Error(err))
		return m
	}

	m.client = ses.NewFromConfig(cfg)
	log.Info("email enabled", zap.String("sender", sender))
	return m
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.client != nil
}

// Send delivers a plain-text email. Returns an error for the caller to log;
// delivery failures never propagate into state transitions.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if !m.Enabled() {
		return nil
	}

	input := &ses.SendEmailInput{
		Source: aws.String(m.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	}

	_, err := m.client.SendEmail(ctx, input)
	return err
}
