package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/property-leads-api/infrastructure/integrator/calendar/calendarclient"
	calendardomain "github.com/vfg2006/property-leads-api/infrastructure/integrator/calendar/domain"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/pkg/log"
)

// FallbackSlotTimes is offered when the calendar cannot be reached.
var FallbackSlotTimes = []string{"10:00", "11:00", "12:00", "14:00", "15:00", "16:00", "17:00"}

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type Integrator interface {
	GetAvailableSlots(ctx context.Context, date time.Time) (*domain.AvailableSlots, error)
	SlotAt(date time.Time, label string) (domain.Slot, bool)
	CreateBooking(ctx context.Context, consultation *domain.Consultation, client *domain.Client) (string, error)
	Location() *time.Location
}

type CalendarService struct {
	client       calendarclient.Client
	loc          *time.Location
	workdayStart int
	workdayEnd   int
	slotLength   time.Duration
	minNotice    time.Duration
	workdays     map[time.Weekday]bool
	now          func() time.Time
}

func New(cfg *config.Config, client calendarclient.Client) Integrator {
	workdays, err := cfg.Calendar.WorkdaySet()
	if err != nil {
		// config.NewConfig already rejects unknown names
		workdays = map[time.Weekday]bool{}
	}

	loc := cfg.App.Location
	if loc == nil {
		loc = time.UTC
	}

	return &CalendarService{
		client:       client,
		loc:          loc,
		workdayStart: cfg.Calendar.WorkdayStart,
		workdayEnd:   cfg.Calendar.WorkdayEnd,
		slotLength:   time.Duration(cfg.Calendar.SlotMinutes) * time.Minute,
		minNotice:    time.Duration(cfg.Calendar.MinNoticeMinutes) * time.Minute,
		workdays:     workdays,
		now:          time.Now,
	}
}

func (s *CalendarService) Location() *time.Location {
	return s.loc
}

func (s *CalendarService) startOfDay(date time.Time) time.Time {
	y, m, d := date.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// grid lays out every slot of the working day, ignoring availability.
func (s *CalendarService) grid(day time.Time) []domain.Slot {
	slots := make([]domain.Slot, 0)
	if !s.workdays[day.Weekday()] {
		return slots
	}

	end := day.Add(time.Duration(s.workdayEnd) * time.Hour)
	for start := day.Add(time.Duration(s.workdayStart) * time.Hour); !start.Add(s.slotLength).After(end); start = start.Add(s.slotLength) {
		slots = append(slots, newSlot(start, s.slotLength))
	}
	return slots
}

func newSlot(start time.Time, length time.Duration) domain.Slot {
	return domain.Slot{
		Time:  start.Format(domain.SlotLabelLayout),
		Start: start,
		End:   start.Add(length),
	}
}

// SlotAt resolves a "15:04" label on date to a slot of the working grid.
func (s *CalendarService) SlotAt(date time.Time, label string) (domain.Slot, bool) {
	for _, slot := range s.grid(s.startOfDay(date)) {
		if slot.Time == label {
			return slot, true
		}
	}
	return domain.Slot{}, false
}

func (s *CalendarService) meetsNotice(start time.Time) bool {
	return !start.Before(s.now().Add(s.minNotice))
}

// GetAvailableSlots lists the free slots of date. Weekends yield no slots;
// a calendar failure yields the fixed fallback list instead of an error.
func (s *CalendarService) GetAvailableSlots(ctx context.Context, date time.Time) (*domain.AvailableSlots, error) {
	day := s.startOfDay(date)
	result := &domain.AvailableSlots{
		Date:     day.Format(time.DateOnly),
		Timezone: s.loc.String(),
		Slots:    make([]domain.Slot, 0),
	}

	grid := s.grid(day)
	if len(grid) == 0 {
		return result, nil
	}

	events, err := s.client.ListEvents(ctx, calendarclient.ListEventsParams{
		TimeMin: grid[0].Start,
		TimeMax: grid[len(grid)-1].End,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.ForContext(ctx).WithError(err).Warnf("calendar: using fallback slots for %s", result.Date)
		result.Slots = s.fallbackSlots(day)
		result.Fallback = true
		return result, nil
	}

	busy := s.busyIntervals(ctx, events.Items)
	for _, slot := range grid {
		if !s.meetsNotice(slot.Start) {
			continue
		}
		if overlapsAny(slot, busy) {
			continue
		}
		result.Slots = append(result.Slots, slot)
	}

	return result, nil
}

func (s *CalendarService) fallbackSlots(day time.Time) []domain.Slot {
	slots := make([]domain.Slot, 0, len(FallbackSlotTimes))
	for _, label := range FallbackSlotTimes {
		t, err := time.ParseInLocation(domain.SlotLabelLayout, label, s.loc)
		if err != nil {
			continue
		}
		start := day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		if s.meetsNotice(start) {
			slots = append(slots, newSlot(start, s.slotLength))
		}
	}
	return slots
}

func (s *CalendarService) busyIntervals(ctx context.Context, events []calendardomain.Event) []domain.Interval {
	busy := make([]domain.Interval, 0, len(events))
	for _, event := range events {
		if !event.Blocks() {
			continue
		}
		start, err := event.Start.Resolve(s.loc)
		if err != nil {
			log.ForContext(ctx).WithError(err).Warnf("calendar: skipping event %s with unreadable start", event.ID)
			continue
		}
		end, err := event.End.Resolve(s.loc)
		if err != nil {
			log.ForContext(ctx).WithError(err).Warnf("calendar: skipping event %s with unreadable end", event.ID)
			continue
		}
		busy = append(busy, domain.Interval{Start: start, End: end})
	}
	return busy
}

func overlapsAny(slot domain.Slot, busy []domain.Interval) bool {
	for _, b := range busy {
		if domain.Overlaps(slot.Start, slot.End, b.Start, b.End) {
			return true
		}
	}
	return false
}

// CreateBooking mirrors a consultation as a calendar event and returns its id.
func (s *CalendarService) CreateBooking(ctx context.Context, consultation *domain.Consultation, client *domain.Client) (string, error) {
	var description strings.Builder
	fmt.Fprintf(&description, "Reference: %s\n", consultation.Reference)
	fmt.Fprintf(&description, "Client: %s\n", client.FullName())
	fmt.Fprintf(&description, "Email: %s\n", client.Email)
	fmt.Fprintf(&description, "Phone: %s\n", client.Phone)
	if client.Company != nil && *client.Company != "" {
		fmt.Fprintf(&description, "Company: %s\n", *client.Company)
	}
	fmt.Fprintf(&description, "Meeting: %s\n", consultation.MeetingType)
	if consultation.Notes != nil && *consultation.Notes != "" {
		fmt.Fprintf(&description, "\n%s\n", *consultation.Notes)
	}

	event := calendardomain.Event{
		Summary:     fmt.Sprintf("Consultation with %s", client.FullName()),
		Description: description.String(),
		Start:       calendardomain.NewEventTime(consultation.StartsAt.In(s.loc)),
		End:         calendardomain.NewEventTime(consultation.EndsAt.In(s.loc)),
		Attendees: []calendardomain.Attendee{
			{Email: client.Email, DisplayName: client.FullName()},
		},
	}

	created, err := s.client.InsertEvent(ctx, event)
	if err != nil {
		return "", err
	}

	return created.ID, nil
}
