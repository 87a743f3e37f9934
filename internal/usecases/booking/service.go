package booking

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/vfg2006/property-leads-api/infrastructure/integrator/calendar"
	"github.com/vfg2006/property-leads-api/infrastructure/integrator/crm"
	"github.com/vfg2006/property-leads-api/infrastructure/integrator/mailer"
	"github.com/vfg2006/property-leads-api/infrastructure/repository"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/log"
	"github.com/vfg2006/property-leads-api/pkg/utils"
	"github.com/vfg2006/property-leads-api/pkg/validation"
)

const (
	MaxDaysAhead       = 60
	ReferencePrefix    = "CNS"
	ConsultationSource = "consultation"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type Booker interface {
	GetAvailableSlots(ctx context.Context, date string) (*domain.AvailableSlots, error)
	BookConsultation(ctx context.Context, req *domain.BookingRequest) (*domain.Consultation, error)
	List(ctx context.Context, filters domain.ConsultationFilters) (*domain.Page[*domain.Consultation], error)
	Get(ctx context.Context, id int64) (*domain.Consultation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ConsultationStatus) (*domain.Consultation, error)
}

type Service struct {
	consultationRepo repository.ConsultationRepository
	clientRepo       repository.ClientRepository
	propertyRepo     repository.PropertyRepository
	analyticsRepo    repository.AnalyticsRepository
	calendar         calendar.Integrator
	crm              crm.Integrator
	notifier         mailer.Notifier
	minNotice        time.Duration
	now              func() time.Time
}

func NewService(
	cfg *config.Config,
	consultationRepo repository.ConsultationRepository,
	clientRepo repository.ClientRepository,
	propertyRepo repository.PropertyRepository,
	analyticsRepo repository.AnalyticsRepository,
	calendarIntegrator calendar.Integrator,
	crmIntegrator crm.Integrator,
	notifier mailer.Notifier,
) Booker {
	return &Service{
		consultationRepo: consultationRepo,
		clientRepo:       clientRepo,
		propertyRepo:     propertyRepo,
		analyticsRepo:    analyticsRepo,
		calendar:         calendarIntegrator,
		crm:              crmIntegrator,
		notifier:         notifier,
		minNotice:        time.Duration(cfg.Calendar.MinNoticeMinutes) * time.Minute,
		now:              time.Now,
	}
}

// parseDay reads a YYYY-MM-DD date in the calendar timezone and checks it
// falls between today and MaxDaysAhead days from now.
func (s *Service) parseDay(date string) (time.Time, error) {
	loc := s.calendar.Location()
	day, err := utils.ParseDateIn(date, loc)
	if err != nil {
		return time.Time{}, NewBookingError(ErrInvalidDate, apiErrors.ErrInvalidFormat, date)
	}

	now := s.now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if day.Before(today) || day.After(today.AddDate(0, 0, MaxDaysAhead)) {
		return time.Time{}, NewBookingError(ErrDateOutOfRange, apiErrors.ErrDateOutOfRange, date)
	}

	return day, nil
}

func (s *Service) GetAvailableSlots(ctx context.Context, date string) (*domain.AvailableSlots, error) {
	day, err := s.parseDay(date)
	if err != nil {
		return nil, err
	}

	return s.freeSlots(ctx, day)
}

// freeSlots merges the calendar availability with the consultations already
// booked in the database, which may not have reached the calendar yet.
func (s *Service) freeSlots(ctx context.Context, day time.Time) (*domain.AvailableSlots, error) {
	slots, err := s.calendar.GetAvailableSlots(ctx, day)
	if err != nil {
		return nil, err
	}

	booked, err := s.consultationRepo.ListActiveBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, databaseError(err)
	}

	busy := make([]domain.Interval, 0, len(booked))
	for _, c := range booked {
		busy = append(busy, domain.Interval{Start: c.StartsAt, End: c.EndsAt})
	}
	slots.Without(busy)

	return slots, nil
}

func (s *Service) BookConsultation(ctx context.Context, req *domain.BookingRequest) (*domain.Consultation, error) {
	req.Email = domain.NormalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	if err := validation.Struct(req); err != nil {
		return nil, invalid(err)
	}

	if req.MeetingType == "" {
		req.MeetingType = domain.MeetingTypeInPerson
	}
	if !req.MeetingType.Valid() {
		return nil, NewBookingError(ErrInvalidRequest, apiErrors.ErrInvalidFormat, "meeting_type")
	}

	day, err := s.parseDay(req.Date)
	if err != nil {
		return nil, err
	}

	slot, ok := s.calendar.SlotAt(day, req.Time)
	if !ok {
		return nil, NewBookingError(ErrSlotUnavailable, apiErrors.ErrSlotUnavailable, req.Time)
	}
	if slot.Start.Before(s.now().Add(s.minNotice)) {
		return nil, NewBookingError(ErrSlotUnavailable, apiErrors.ErrSlotUnavailable, req.Time)
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"client_email":       req.Email,
		"consultation_start": slot.Start.Format(time.RFC3339),
	})

	taken, err := s.consultationRepo.ExistsActiveAt(ctx, slot.Start)
	if err != nil {
		return nil, databaseError(err)
	}
	if taken {
		return nil, slotTaken(req.Time)
	}

	free, err := s.freeSlots(ctx, day)
	if err != nil {
		return nil, err
	}
	if !containsSlot(free.Slots, slot.Time) {
		if free.Fallback && !slices.Contains(calendar.FallbackSlotTimes, slot.Time) {
			return nil, NewBookingError(ErrSlotUnavailable, apiErrors.ErrSlotUnavailable, req.Time)
		}
		return nil, slotTaken(req.Time)
	}

	if req.PropertyID != nil {
		if _, err := s.propertyRepo.GetByID(ctx, *req.PropertyID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, NewBookingError(ErrPropertyNotFound, apiErrors.ErrNotFound, *req.PropertyID)
			}
			return nil, databaseError(err)
		}
	}

	client, sessionID, err := s.upsertClient(ctx, req)
	if err != nil {
		return nil, err
	}
	logger = logger.WithField("client_id", client.ID)

	reference, err := utils.GenerateReference(ReferencePrefix)
	if err != nil {
		return nil, err
	}

	consultation, err := s.consultationRepo.Create(ctx, &domain.Consultation{
		Reference:       reference,
		ClientID:        client.ID,
		PropertyID:      req.PropertyID,
		StartsAt:        slot.Start,
		EndsAt:          slot.End,
		DurationMinutes: int(slot.End.Sub(slot.Start).Minutes()),
		MeetingType:     req.MeetingType,
		Status:          domain.ConsultationStatusScheduled,
		Notes:           optional(req.Notes),
		ClientName:      client.FullName(),
		ClientEmail:     client.Email,
	})
	if errors.Is(err, repository.ErrConflict) {
		return nil, slotTaken(req.Time)
	}
	if err != nil {
		return nil, databaseError(err)
	}
	logger = logger.WithField("consultation_reference", consultation.Reference)

	s.afterBooking(ctx, logger, client, consultation, sessionID)

	logger.Info("consultation booked")
	return consultation, nil
}

// afterBooking runs the side effects of a booking. None of them can undo it.
// The conversion belongs to the session the booking was made from, or to the
// client's first session when the request carried none.
func (s *Service) afterBooking(ctx context.Context, logger log.Logger, client *domain.Client, consultation *domain.Consultation, sessionID *string) {
	eventID, err := s.calendar.CreateBooking(ctx, consultation, client)
	if err != nil {
		logger.WithError(err).Warn("failed to create calendar event")
	} else if err := s.consultationRepo.SetCalendarEventID(ctx, consultation.ID, eventID); err != nil {
		logger.WithError(err).Warn("failed to store calendar event id")
	} else {
		consultation.CalendarEventID = &eventID
	}

	if sessionID == nil {
		sessionID = client.SessionID
	}
	if err := s.analyticsRepo.InsertConversion(ctx, &domain.Conversion{
		SessionID: sessionID,
		ClientID:  client.ID,
		Type:      domain.ConversionTypeConsultation,
		Value:     1,
	}); err != nil {
		logger.WithError(err).Error("failed to record consultation conversion")
	}

	if err := s.crm.SendLead(ctx, crm.LeadPayload{
		Event:        crm.EventConsultationBooked,
		OccurredAt:   s.now().UTC(),
		Client:       client,
		Consultation: consultation,
	}); err != nil {
		logger.WithError(err).Warn("failed to forward consultation to crm")
	}

	if err := s.notifier.SendBookingConfirmation(ctx, client, consultation); err != nil {
		logger.WithError(err).Warn("failed to send booking confirmation")
	}
}

// upsertClient saves the booking contact and returns the id of the known
// session the request came from, if any.
func (s *Service) upsertClient(ctx context.Context, req *domain.BookingRequest) (*domain.Client, *string, error) {
	client := &domain.Client{
		FirstName:  req.FirstName,
		LastName:   strings.TrimSpace(req.LastName),
		Email:      req.Email,
		Phone:      strings.TrimSpace(req.Phone),
		Company:    optional(req.Company),
		LeadSource: ConsultationSource,
		Status:     domain.LeadStatusNew,
	}

	if req.SessionID != "" {
		session, err := s.analyticsRepo.GetSession(ctx, req.SessionID)
		switch {
		case err == nil:
			client.SessionID = &session.SessionID
			client.Attribution = session.Attribution
		case !errors.Is(err, repository.ErrNotFound):
			return nil, nil, databaseError(err)
		}
	}

	saved, err := s.clientRepo.UpsertByEmail(ctx, client)
	if err != nil {
		return nil, nil, databaseError(err)
	}
	if saved.SessionID == nil {
		saved.SessionID = client.SessionID
	}

	return saved, client.SessionID, nil
}

func (s *Service) List(ctx context.Context, filters domain.ConsultationFilters) (*domain.Page[*domain.Consultation], error) {
	filters.Pagination = filters.Pagination.Normalize()

	items, total, err := s.consultationRepo.List(ctx, filters)
	if err != nil {
		return nil, databaseError(err)
	}

	return domain.NewPage(items, total, filters.Pagination), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Consultation, error) {
	consultation, err := s.consultationRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewBookingError(ErrConsultationNotFound, apiErrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, databaseError(err)
	}

	return consultation, nil
}

// UpdateStatus moves an active consultation to its next status. Finished
// consultations are frozen.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.ConsultationStatus) (*domain.Consultation, error) {
	consultation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !consultation.Status.CanTransitionTo(status) {
		return nil, NewBookingError(ErrInvalidTransition, apiErrors.ErrInvalidTransition, string(consultation.Status)+" -> "+string(status))
	}

	if err := s.consultationRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, databaseError(err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"consultation_id": id,
		"status":          status,
	}).Info("consultation status updated")

	consultation.Status = status
	return consultation, nil
}

func containsSlot(slots []domain.Slot, label string) bool {
	for _, slot := range slots {
		if slot.Time == label {
			return true
		}
	}
	return false
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
