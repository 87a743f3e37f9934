package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendarmocks "github.com/vfg2006/property-leads-api/infrastructure/integrator/calendar/mocks"
	"github.com/vfg2006/property-leads-api/infrastructure/integrator/crm"
	crmmocks "github.com/vfg2006/property-leads-api/infrastructure/integrator/crm/mocks"
	mailermocks "github.com/vfg2006/property-leads-api/infrastructure/integrator/mailer/mocks"
	"github.com/vfg2006/property-leads-api/infrastructure/repository"
	"github.com/vfg2006/property-leads-api/infrastructure/repository/mocks"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/log"
	"go.uber.org/mock/gomock"
)

var dubai = time.FixedZone("GST", 4*60*60)

type fixture struct {
	svc           *Service
	consultations *mocks.MockConsultationRepository
	clients       *mocks.MockClientRepository
	properties    *mocks.MockPropertyRepository
	analytics     *mocks.MockAnalyticsRepository
	calendar      *calendarmocks.MockIntegrator
	crm           *crmmocks.MockIntegrator
	notifier      *mailermocks.MockNotifier
}

// Monday 10 March 2025, 08:00 in Dubai.
var now = time.Date(2025, 3, 10, 8, 0, 0, 0, dubai)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	f := &fixture{
		consultations: mocks.NewMockConsultationRepository(ctrl),
		clients:       mocks.NewMockClientRepository(ctrl),
		properties:    mocks.NewMockPropertyRepository(ctrl),
		analytics:     mocks.NewMockAnalyticsRepository(ctrl),
		calendar:      calendarmocks.NewMockIntegrator(ctrl),
		crm:           crmmocks.NewMockIntegrator(ctrl),
		notifier:      mailermocks.NewMockNotifier(ctrl),
	}
	f.calendar.EXPECT().Location().Return(dubai).AnyTimes()

	cfg := &config.Config{Calendar: config.Calendar{MinNoticeMinutes: 60}}
	f.svc = NewService(cfg, f.consultations, f.clients, f.properties, f.analytics, f.calendar, f.crm, f.notifier).(*Service)
	f.svc.now = func() time.Time { return now }
	return f
}

func slotAt(day time.Time, hour int) domain.Slot {
	start := day.Add(time.Duration(hour) * time.Hour)
	return domain.Slot{Time: start.Format(domain.SlotLabelLayout), Start: start, End: start.Add(time.Hour)}
}

func daySlots(day time.Time, hours ...int) *domain.AvailableSlots {
	slots := make([]domain.Slot, 0, len(hours))
	for _, h := range hours {
		slots = append(slots, slotAt(day, h))
	}
	return &domain.AvailableSlots{Date: day.Format(time.DateOnly), Timezone: "GST", Slots: slots}
}

func validRequest() *domain.BookingRequest {
	return &domain.BookingRequest{
		FirstName: "Sara",
		LastName:  "Haddad",
		Email:     "Sara@Example.ae",
		Phone:     "+971501234567",
		Date:      "2025-03-11",
		Time:      "11:00",
	}
}

func TestGetAvailableSlots(t *testing.T) {
	ctx := context.Background()
	tuesday := time.Date(2025, 3, 11, 0, 0, 0, 0, dubai)

	t.Run("removes slots booked in the database", func(t *testing.T) {
		f := newFixture(t)
		f.calendar.EXPECT().GetAvailableSlots(ctx, tuesday).Return(daySlots(tuesday, 10, 11, 12), nil)
		f.consultations.EXPECT().ListActiveBetween(ctx, tuesday, tuesday.AddDate(0, 0, 1)).Return([]*domain.Consultation{
			{StartsAt: tuesday.Add(11 * time.Hour), EndsAt: tuesday.Add(12 * time.Hour)},
		}, nil)

		result, err := f.svc.GetAvailableSlots(ctx, "2025-03-11")
		require.NoError(t, err)
		require.Len(t, result.Slots, 2)
		assert.Equal(t, "10:00", result.Slots[0].Time)
		assert.Equal(t, "12:00", result.Slots[1].Time)
	})

	t.Run("keeps the fallback flag", func(t *testing.T) {
		f := newFixture(t)
		fallback := daySlots(tuesday, 10, 14)
		fallback.Fallback = true
		f.calendar.EXPECT().GetAvailableSlots(ctx, tuesday).Return(fallback, nil)
		f.consultations.EXPECT().ListActiveBetween(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)

		result, err := f.svc.GetAvailableSlots(ctx, "2025-03-11")
		require.NoError(t, err)
		assert.True(t, result.Fallback)
		assert.Len(t, result.Slots, 2)
	})

	tests := []struct {
		name string
		date string
		err  error
	}{
		{name: "yesterday", date: "2025-03-09", err: ErrDateOutOfRange},
		{name: "too far ahead", date: "2025-05-10", err: ErrDateOutOfRange},
		{name: "not a date", date: "11/03/2025", err: ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.GetAvailableSlots(ctx, tt.date)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("today and the last bookable day are accepted", func(t *testing.T) {
		f := newFixture(t)
		f.calendar.EXPECT().GetAvailableSlots(ctx, gomock.Any()).Return(&domain.AvailableSlots{}, nil).Times(2)
		f.consultations.EXPECT().ListActiveBetween(ctx, gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

		_, err := f.svc.GetAvailableSlots(ctx, "2025-03-10")
		require.NoError(t, err)
		_, err = f.svc.GetAvailableSlots(ctx, "2025-05-09")
		require.NoError(t, err)
	})
}

func TestBookConsultation(t *testing.T) {
	ctx := context.Background()
	tuesday := time.Date(2025, 3, 11, 0, 0, 0, 0, dubai)
	slot := slotAt(tuesday, 11)

	t.Run("books the slot and fires side effects", func(t *testing.T) {
		f := newFixture(t)

		f.calendar.EXPECT().SlotAt(tuesday, "11:00").Return(slot, true)
		f.consultations.EXPECT().ExistsActiveAt(ctx, slot.Start).Return(false, nil)
		f.calendar.EXPECT().GetAvailableSlots(ctx, tuesday).Return(daySlots(tuesday, 10, 11), nil)
		f.consultations.EXPECT().ListActiveBetween(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.clients.EXPECT().UpsertByEmail(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Client) (*domain.Client, error) {
			assert.Equal(t, "sara@example.ae", c.Email)
			assert.Equal(t, ConsultationSource, c.LeadSource)
			c.ID = 42
			return c, nil
		})
		f.consultations.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Consultation) (*domain.Consultation, error) {
			assert.Regexp(t, `^CNS-[A-Z2-9]{8}$`, c.Reference)
			assert.Equal(t, int64(42), c.ClientID)
			assert.Equal(t, slot.Start, c.StartsAt)
			assert.Equal(t, 60, c.DurationMinutes)
			assert.Equal(t, domain.MeetingTypeInPerson, c.MeetingType)
			assert.Equal(t, domain.ConsultationStatusScheduled, c.Status)
			c.ID = 9
			return c, nil
		})
		f.calendar.EXPECT().CreateBooking(ctx, gomock.Any(), gomock.Any()).Return("evt_123", nil)
		f.consultations.EXPECT().SetCalendarEventID(ctx, int64(9), "evt_123").Return(nil)
		f.analytics.EXPECT().InsertConversion(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Conversion) error {
			assert.Equal(t, domain.ConversionTypeConsultation, c.Type)
			return nil
		})
		f.crm.EXPECT().SendLead(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p crm.LeadPayload) error {
			assert.Equal(t, crm.EventConsultationBooked, p.Event)
			require.NotNil(t, p.Consultation)
			return nil
		})
		f.notifier.EXPECT().SendBookingConfirmation(ctx, gomock.Any(), gomock.Any()).Return(nil)

		consultation, err := f.svc.BookConsultation(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(9), consultation.ID)
		require.NotNil(t, consultation.CalendarEventID)
		assert.Equal(t, "evt_123", *consultation.CalendarEventID)
	})

	t.Run("active consultation at the same start", func(t *testing.T) {
		f := newFixture(t)
		f.calendar.EXPECT().SlotAt(tuesday, "11:00").Return(slot, true)
		f.consultations.EXPECT().ExistsActiveAt(ctx, slot.Start).Return(true, nil)

		_, err := f.svc.BookConsultation(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotTaken)

		var bookingErr *BookingError
		require.ErrorAs(t, err, &bookingErr)
		assert.Equal(t, apiErrors.ErrSlotTaken, bookingErr.Code)
	})

	t.Run("calendar reports the slot busy", func(t *testing.T) {
		f := newFixture(t)
		f.calendar.EXPECT().SlotAt(tuesday, "11:00").Return(slot, true)
		f.consultations.EXPECT().ExistsActiveAt(ctx, slot.Start).Return(false, nil)
		f.calendar.EXPECT().GetAvailableSlots(ctx, tuesday).Return(daySlots(tuesday, 10, 12), nil)
		f.consultations.EXPECT().ListActiveBetween(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.BookConsultation(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("lost race on insert", func(t *testing.T) {
		f := newFixture(t)
		f.calendar.EXPECT().SlotAt(tuesday, "11:00").Return(slot, true)
		f.consultations.EXPECT().ExistsActiveAt(ctx, slot.Start).Return(false, nil)
		f.calendar.EXPECT().GetAvailableSlots(ctx, tuesday).Return(daySlots(tuesday, 11), nil)
		f.consultations.EXPECT().ListActiveBetween(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.clients.EXPECT().UpsertByEmail(ctx, gomock.Any()).Return(&domain.Client{ID: 1, Email: "sara@example.ae"}, nil)
		f.consultations.EXPECT().Create(ctx, gomock.Any()).Return(nil, repository.ErrConflict)

		_, err := f.svc.BookConsultation(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("time not on the grid", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.Time = "11:30"
		f.calendar.EXPECT().SlotAt(tuesday, "11:30").Return(domain.Slot{}, false)

		_, err := f.svc.BookConsultation(ctx, req)
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("slot inside the minimum notice", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.Date = "2025-03-10"
		req.Time = "08:00"
		monday := time.Date(2025, 3, 10, 0, 0, 0, 0, dubai)
		f.calendar.EXPECT().SlotAt(monday, "08:00").Return(slotAt(monday, 8), true)

		_, err := f.svc.BookConsultation(ctx, req)
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("invalid email", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.Email = "sara.example.ae"

		_, err := f.svc.BookConsultation(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("malformed session id", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.SessionID = "not-a-uuid"

		_, err := f.svc.BookConsultation(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidRequest)

		var bookingErr *BookingError
		require.ErrorAs(t, err, &bookingErr)
		assert.Equal(t, apiErrors.ErrInvalidFormat, bookingErr.Code)
	})

	t.Run("returning client converts on the booking session", func(t *testing.T) {
		f := newFixture(t)
		firstSession := "11111111-1111-4111-8111-111111111111"
		bookingSession := "22222222-2222-4222-8222-222222222222"
		req := validRequest()
		req.SessionID = bookingSession

		f.calendar.EXPECT().SlotAt(tuesday, "11:00").Return(slot, true)
		f.consultations.EXPECT().ExistsActiveAt(ctx, slot.Start).Return(false, nil)
		f.calendar.EXPECT().GetAvailableSlots(ctx, tuesday).Return(daySlots(tuesday, 11), nil)
		f.consultations.EXPECT().ListActiveBetween(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.analytics.EXPECT().GetSession(ctx, bookingSession).Return(&domain.Session{SessionID: bookingSession}, nil)
		f.clients.EXPECT().UpsertByEmail(ctx, gomock.Any()).Return(&domain.Client{ID: 5, Email: "sara@example.ae", SessionID: &firstSession}, nil)
		f.consultations.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Consultation) (*domain.Consultation, error) {
			c.ID = 12
			return c, nil
		})
		f.calendar.EXPECT().CreateBooking(ctx, gomock.Any(), gomock.Any()).Return("", errors.New("calendar down"))
		f.analytics.EXPECT().InsertConversion(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Conversion) error {
			require.NotNil(t, c.SessionID)
			assert.Equal(t, bookingSession, *c.SessionID)
			assert.Equal(t, int64(5), c.ClientID)
			return nil
		})
		f.crm.EXPECT().SendLead(ctx, gomock.Any()).Return(nil)
		f.notifier.EXPECT().SendBookingConfirmation(ctx, gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.BookConsultation(ctx, req)
		require.NoError(t, err)
	})

	t.Run("no request session falls back to the client's first session", func(t *testing.T) {
		f := newFixture(t)
		firstSession := "11111111-1111-4111-8111-111111111111"

		f.calendar.EXPECT().SlotAt(tuesday, "11:00").Return(slot, true)
		f.consultations.EXPECT().ExistsActiveAt(ctx, slot.Start).Return(false, nil)
		f.calendar.EXPECT().GetAvailableSlots(ctx, tuesday).Return(daySlots(tuesday, 11), nil)
		f.consultations.EXPECT().ListActiveBetween(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.clients.EXPECT().UpsertByEmail(ctx, gomock.Any()).Return(&domain.Client{ID: 5, Email: "sara@example.ae", SessionID: &firstSession}, nil)
		f.consultations.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Consultation) (*domain.Consultation, error) {
			c.ID = 13
			return c, nil
		})
		f.calendar.EXPECT().CreateBooking(ctx, gomock.Any(), gomock.Any()).Return("", errors.New("calendar down"))
		f.analytics.EXPECT().InsertConversion(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Conversion) error {
			require.NotNil(t, c.SessionID)
			assert.Equal(t, firstSession, *c.SessionID)
			return nil
		})
		f.crm.EXPECT().SendLead(ctx, gomock.Any()).Return(nil)
		f.notifier.EXPECT().SendBookingConfirmation(ctx, gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.BookConsultation(ctx, validRequest())
		require.NoError(t, err)
	})

	t.Run("grid time missing from the fallback list", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.Time = "13:00"
		lunch := slotAt(tuesday, 13)
		fallback := daySlots(tuesday, 10, 11, 12, 14, 15, 16, 17)
		fallback.Fallback = true

		f.calendar.EXPECT().SlotAt(tuesday, "13:00").Return(lunch, true)
		f.consultations.EXPECT().ExistsActiveAt(ctx, lunch.Start).Return(false, nil)
		f.calendar.EXPECT().GetAvailableSlots(ctx, tuesday).Return(fallback, nil)
		f.consultations.EXPECT().ListActiveBetween(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.BookConsultation(ctx, req)
		assert.ErrorIs(t, err, ErrSlotUnavailable)

		var bookingErr *BookingError
		require.ErrorAs(t, err, &bookingErr)
		assert.Equal(t, apiErrors.ErrSlotUnavailable, bookingErr.Code)
	})

	t.Run("fallback slot already booked is taken", func(t *testing.T) {
		f := newFixture(t)
		fallback := daySlots(tuesday, 10, 11, 12)
		fallback.Fallback = true

		f.calendar.EXPECT().SlotAt(tuesday, "11:00").Return(slot, true)
		f.consultations.EXPECT().ExistsActiveAt(ctx, slot.Start).Return(false, nil)
		f.calendar.EXPECT().GetAvailableSlots(ctx, tuesday).Return(fallback, nil)
		f.consultations.EXPECT().ListActiveBetween(ctx, gomock.Any(), gomock.Any()).Return([]*domain.Consultation{
			{StartsAt: tuesday.Add(10*time.Hour + 30*time.Minute), EndsAt: tuesday.Add(11*time.Hour + 30*time.Minute)},
		}, nil)

		_, err := f.svc.BookConsultation(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("unknown meeting type", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.MeetingType = "carrier_pigeon"

		_, err := f.svc.BookConsultation(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("unknown property", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		propertyID := int64(77)
		req.PropertyID = &propertyID

		f.calendar.EXPECT().SlotAt(tuesday, "11:00").Return(slot, true)
		f.consultations.EXPECT().ExistsActiveAt(ctx, slot.Start).Return(false, nil)
		f.calendar.EXPECT().GetAvailableSlots(ctx, tuesday).Return(daySlots(tuesday, 11), nil)
		f.consultations.EXPECT().ListActiveBetween(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.properties.EXPECT().GetByID(ctx, propertyID).Return(nil, repository.ErrNotFound)

		_, err := f.svc.BookConsultation(ctx, req)
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("side effect failures keep the booking", func(t *testing.T) {
		f := newFixture(t)
		f.calendar.EXPECT().SlotAt(tuesday, "11:00").Return(slot, true)
		f.consultations.EXPECT().ExistsActiveAt(ctx, slot.Start).Return(false, nil)
		f.calendar.EXPECT().GetAvailableSlots(ctx, tuesday).Return(daySlots(tuesday, 11), nil)
		f.consultations.EXPECT().ListActiveBetween(ctx, gomock.Any(), gomock.Any()).Return(nil, nil)
		f.clients.EXPECT().UpsertByEmail(ctx, gomock.Any()).Return(&domain.Client{ID: 1, Email: "sara@example.ae"}, nil)
		f.consultations.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Consultation) (*domain.Consultation, error) {
			c.ID = 3
			return c, nil
		})
		f.calendar.EXPECT().CreateBooking(ctx, gomock.Any(), gomock.Any()).Return("", errors.New("calendar down"))
		f.analytics.EXPECT().InsertConversion(ctx, gomock.Any()).Return(errors.New("db hiccup"))
		f.crm.EXPECT().SendLead(ctx, gomock.Any()).Return(errors.New("crm down"))
		f.notifier.EXPECT().SendBookingConfirmation(ctx, gomock.Any(), gomock.Any()).Return(errors.New("mail down"))

		consultation, err := f.svc.BookConsultation(ctx, validRequest())
		require.NoError(t, err)
		assert.Nil(t, consultation.CalendarEventID)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels a scheduled consultation", func(t *testing.T) {
		f := newFixture(t)
		f.consultations.EXPECT().GetByID(ctx, int64(4)).Return(&domain.Consultation{ID: 4, Status: domain.ConsultationStatusScheduled}, nil)
		f.consultations.EXPECT().UpdateStatus(ctx, int64(4), domain.ConsultationStatusCancelled).Return(nil)

		consultation, err := f.svc.UpdateStatus(ctx, 4, domain.ConsultationStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, domain.ConsultationStatusCancelled, consultation.Status)
	})

	t.Run("completed is final", func(t *testing.T) {
		f := newFixture(t)
		f.consultations.EXPECT().GetByID(ctx, int64(4)).Return(&domain.Consultation{ID: 4, Status: domain.ConsultationStatusCompleted}, nil)

		_, err := f.svc.UpdateStatus(ctx, 4, domain.ConsultationStatusCancelled)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.consultations.EXPECT().GetByID(ctx, int64(4)).Return(nil, repository.ErrNotFound)

		_, err := f.svc.UpdateStatus(ctx, 4, domain.ConsultationStatusCancelled)
		assert.ErrorIs(t, err, ErrConsultationNotFound)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.consultations.EXPECT().List(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, filters domain.ConsultationFilters) ([]*domain.Consultation, int, error) {
		assert.Equal(t, 1, filters.Page)
		assert.Equal(t, domain.DefaultPageSize, filters.PageSize)
		return []*domain.Consultation{{ID: 1}}, 31, nil
	})

	page, err := f.svc.List(ctx, domain.ConsultationFilters{})
	require.NoError(t, err)
	assert.Equal(t, 31, page.Total)
	assert.Len(t, page.Items, 1)
}
