package crm

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/property-leads-api/infrastructure/integrator/crm/crmclient"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	EventLeadCreated        = "lead.created"
	EventConsultationBooked = "consultation.booked"
)

// LeadPayload is the body posted to the CRM webhook.
type LeadPayload struct {
	Event        string               `json:"event"`
	OccurredAt   time.Time            `json:"occurred_at"`
	Client       *domain.Client       `json:"client"`
	Message      string               `json:"message,omitempty"`
	Consultation *domain.Consultation `json:"consultation,omitempty"`
}

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type Integrator interface {
	SendLead(ctx context.Context, payload LeadPayload) error
}

type CRMService struct {
	client  crmclient.Client
	secret  string
	enabled bool
}

func New(cfg *config.Config, client crmclient.Client) Integrator {
	return &CRMService{
		client:  client,
		secret:  cfg.CRM.WebhookSecret,
		enabled: cfg.CRM.Enabled && cfg.CRM.WebhookURL != "",
	}
}

// SendLead forwards the payload to the CRM. It is a no-op while the webhook is disabled.
func (s *CRMService) SendLead(ctx context.Context, payload LeadPayload) error {
	if !s.enabled {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode crm payload")
	}

	if err := s.client.PostWebhook(ctx, body, Sign(body, s.secret)); err != nil {
		return errors.Wrapf(err, "crm webhook for %s", payload.Event)
	}

	return nil
}

// Sign returns the hex HMAC-SHA256 of body, or "" without a secret.
func Sign(body []byte, secret string) string {
	if secret == "" {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
