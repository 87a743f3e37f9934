package tracking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/property-leads-api/infrastructure/integrator/crm"
	"github.com/vfg2006/property-leads-api/infrastructure/integrator/mailer"
	"github.com/vfg2006/property-leads-api/infrastructure/repository"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/log"
	"github.com/vfg2006/property-leads-api/pkg/validation"
)

const DefaultLeadSource = "website"

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type Tracker interface {
	StartSession(ctx context.Context, req *domain.SessionRequest) (*domain.Session, error)
	RecordPageView(ctx context.Context, req *domain.PageViewRequest) (*domain.PageView, error)
	RecordEvent(ctx context.Context, req *domain.EventRequest) (*domain.Event, error)
	CaptureLead(ctx context.Context, req *domain.LeadRequest) (*domain.Client, error)
}

type Service struct {
	analyticsRepo repository.AnalyticsRepository
	clientRepo    repository.ClientRepository
	crm           crm.Integrator
	notifier      mailer.Notifier
	now           func() time.Time
}

func NewService(
	analyticsRepo repository.AnalyticsRepository,
	clientRepo repository.ClientRepository,
	crmIntegrator crm.Integrator,
	notifier mailer.Notifier,
) Tracker {
	return &Service{
		analyticsRepo: analyticsRepo,
		clientRepo:    clientRepo,
		crm:           crmIntegrator,
		notifier:      notifier,
		now:           time.Now,
	}
}

// StartSession opens a visitor session, or refreshes last_seen_at when the
// browser already holds one. A missing id is generated server side.
func (s *Service) StartSession(ctx context.Context, req *domain.SessionRequest) (*domain.Session, error) {
	if err := validation.Struct(req); err != nil {
		return nil, invalid(err)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	now := s.now().UTC()
	session, err := s.analyticsRepo.UpsertSession(ctx, &domain.Session{
		SessionID:   sessionID,
		LandingPage: req.LandingPage,
		Variant:     req.Variant,
		Referrer:    req.Referrer,
		UserAgent:   req.UserAgent,
		IPAddress:   req.IPAddress,
		Attribution: req.Attribution,
		FirstSeenAt: now,
		LastSeenAt:  now,
	})
	if err != nil {
		return nil, databaseError(err)
	}

	return session, nil
}

func (s *Service) RecordPageView(ctx context.Context, req *domain.PageViewRequest) (*domain.PageView, error) {
	if err := validation.Struct(req); err != nil {
		return nil, invalid(err)
	}

	view := &domain.PageView{
		SessionID:     req.SessionID,
		Path:          req.Path,
		Title:         req.Title,
		Variant:       req.Variant,
		Referrer:      req.Referrer,
		TimeOnPageSec: req.TimeOnPageSec,
		ViewedAt:      s.now().UTC(),
		UserAgent:     req.UserAgent,
		IPAddress:     req.IPAddress,
	}
	if err := s.analyticsRepo.InsertPageView(ctx, view); err != nil {
		return nil, databaseError(err)
	}

	return view, nil
}

func (s *Service) RecordEvent(ctx context.Context, req *domain.EventRequest) (*domain.Event, error) {
	if err := validation.Struct(req); err != nil {
		return nil, invalid(err)
	}

	if len(req.Properties) > 0 {
		var properties map[string]any
		if err := jsoniter.Unmarshal(req.Properties, &properties); err != nil || properties == nil {
			return nil, NewTrackingError(ErrInvalidProperties, apiErrors.ErrInvalidFormat, nil)
		}
	}

	event := &domain.Event{
		SessionID:  req.SessionID,
		Name:       strings.TrimSpace(req.Name),
		Category:   req.Category,
		Label:      req.Label,
		Value:      req.Value,
		Properties: req.Properties,
		OccurredAt: s.now().UTC(),
	}
	err := s.analyticsRepo.InsertEvent(ctx, event)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewTrackingError(ErrSessionNotFound, apiErrors.ErrNotFound, req.SessionID)
	}
	if err != nil {
		return nil, databaseError(err)
	}

	return event, nil
}

// CaptureLead stores the contact form submission. The lead and its conversion
// are persisted; CRM forwarding and the team notice are best effort.
func (s *Service) CaptureLead(ctx context.Context, req *domain.LeadRequest) (*domain.Client, error) {
	req.Email = domain.NormalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	if err := validation.Struct(req); err != nil {
		return nil, invalid(err)
	}

	logger := log.ForContext(ctx).WithField("client_email", req.Email)

	client := &domain.Client{
		FirstName:      req.FirstName,
		LastName:       strings.TrimSpace(req.LastName),
		Email:          req.Email,
		Phone:          strings.TrimSpace(req.Phone),
		Company:        optional(req.Company),
		BudgetMin:      req.BudgetMin,
		BudgetMax:      req.BudgetMax,
		PreferredAreas: req.PreferredAreas,
		PropertyType:   optional(req.PropertyType),
		Notes:          optional(req.Message),
		Status:         domain.LeadStatusNew,
	}

	if req.SessionID != "" {
		client.SessionID = &req.SessionID
		session, err := s.analyticsRepo.GetSession(ctx, req.SessionID)
		switch {
		case err == nil:
			client.Attribution = session.Attribution
		case errors.Is(err, repository.ErrNotFound):
			logger.WithField("session_id", req.SessionID).Debug("lead references an unknown session")
			client.SessionID = nil
		default:
			return nil, databaseError(err)
		}
	}

	client.LeadSource = leadSource(req.Source, client.Attribution)

	saved, err := s.clientRepo.UpsertByEmail(ctx, client)
	if err != nil {
		return nil, databaseError(err)
	}
	logger = logger.WithField("client_id", saved.ID)

	if err := s.analyticsRepo.InsertConversion(ctx, &domain.Conversion{
		SessionID: client.SessionID,
		ClientID:  saved.ID,
		Type:      domain.ConversionTypeLead,
		Value:     1,
	}); err != nil {
		logger.WithError(err).Error("failed to record lead conversion")
	}

	if err := s.crm.SendLead(ctx, crm.LeadPayload{
		Event:      crm.EventLeadCreated,
		OccurredAt: s.now().UTC(),
		Client:     saved,
		Message:    req.Message,
	}); err != nil {
		logger.WithError(err).Warn("failed to forward lead to crm")
	}

	if err := s.notifier.SendLeadNotice(ctx, saved, client.LeadSource, req.Message); err != nil {
		logger.WithError(err).Warn("failed to send lead notice")
	}

	logger.Info("lead captured")
	return saved, nil
}

func leadSource(requested string, attribution domain.Attribution) string {
	if source := strings.TrimSpace(strings.ToLower(requested)); source != "" {
		return source
	}
	if channel := attribution.Channel(); channel != "direct" {
		return channel
	}
	return DefaultLeadSource
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
