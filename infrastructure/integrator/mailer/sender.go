package mailer

import (
	"context"
	"time"

	"github.com/vfg2006/property-leads-api/internal/config"
)

type SendRequest struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

type SendResult struct {
	MessageID string
	SentAt    time.Time
}

//go:generate mockgen -source=sender.go -destination=mocks/sender_mock.go -package=mocks
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}

// NewSender picks Resend when an API key is configured and the noop sender otherwise.
func NewSender(cfg *config.Config) Sender {
	if cfg.Mailer.ResendAPIKey == "" {
		return NewNoopSender()
	}
	return NewResendSender(cfg.Mailer.ResendAPIKey, cfg.Mailer.From)
}
