package domain

import "time"

type ConsultationStatus string

const (
	ConsultationStatusScheduled ConsultationStatus = "scheduled"
	ConsultationStatusConfirmed ConsultationStatus = "confirmed"
	ConsultationStatusCompleted ConsultationStatus = "completed"
	ConsultationStatusCancelled ConsultationStatus = "cancelled"
	ConsultationStatusNoShow    ConsultationStatus = "no_show"
)

// ActiveConsultationStatuses are the statuses that keep a slot occupied.
var ActiveConsultationStatuses = []ConsultationStatus{
	ConsultationStatusScheduled,
	ConsultationStatusConfirmed,
}

func (s ConsultationStatus) Valid() bool {
	switch s {
	case ConsultationStatusScheduled, ConsultationStatusConfirmed, ConsultationStatusCompleted,
		ConsultationStatusCancelled, ConsultationStatusNoShow:
		return true
	}
	return false
}

func (s ConsultationStatus) Active() bool {
	return s == ConsultationStatusScheduled || s == ConsultationStatusConfirmed
}

// CanTransitionTo only allows moves out of an active status.
func (s ConsultationStatus) CanTransitionTo(next ConsultationStatus) bool {
	if !next.Valid() || !s.Active() {
		return false
	}
	if s == ConsultationStatusConfirmed && next == ConsultationStatusScheduled {
		return false
	}
	return s != next
}

type MeetingType string

const (
	MeetingTypeInPerson MeetingType = "in_person"
	MeetingTypeVideo    MeetingType = "video"
	MeetingTypePhone    MeetingType = "phone"
)

func (m MeetingType) Valid() bool {
	return m == MeetingTypeInPerson || m == MeetingTypeVideo || m == MeetingTypePhone
}

type Consultation struct {
	ID              int64              `json:"id"`
	Reference       string             `json:"reference"`
	ClientID        int64              `json:"client_id"`
	PropertyID      *int64             `json:"property_id"`
	StartsAt        time.Time          `json:"starts_at"`
	EndsAt          time.Time          `json:"ends_at"`
	DurationMinutes int                `json:"duration_minutes"`
	MeetingType     MeetingType        `json:"meeting_type"`
	Status          ConsultationStatus `json:"status"`
	CalendarEventID *string            `json:"calendar_event_id"`
	Notes           *string            `json:"notes"`
	ClientName      string             `json:"client_name,omitempty"`
	ClientEmail     string             `json:"client_email,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type BookingRequest struct {
	FirstName   string      `json:"first_name" validate:"required,max=100"`
	LastName    string      `json:"last_name" validate:"max=100"`
	Email       string      `json:"email" validate:"required,email"`
	Phone       string      `json:"phone" validate:"required,min=6,max=30"`
	Company     string      `json:"company" validate:"max=200"`
	Date        string      `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string      `json:"time" validate:"required,datetime=15:04"`
	MeetingType MeetingType `json:"meeting_type"`
	Notes       string      `json:"notes" validate:"max=2000"`
	PropertyID  *int64      `json:"property_id"`
	SessionID   string      `json:"session_id" validate:"omitempty,uuid"`
}

type ConsultationFilters struct {
	Status   *ConsultationStatus
	ClientID *int64
	From     *time.Time
	To       *time.Time
	Pagination
}

type UpdateConsultationStatusRequest struct {
	Status ConsultationStatus `json:"status" validate:"required"`
}
