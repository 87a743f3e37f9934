package calendardomain

import "time"

const (
	EventStatusCancelled    = "cancelled"
	TransparencyTransparent = "transparent"
)

// Event mirrors the Google Calendar v3 event resource, trimmed to what we read and write.
type Event struct {
	ID           string     `json:"id,omitempty"`
	Summary      string     `json:"summary"`
	Description  string     `json:"description,omitempty"`
	Location     string     `json:"location,omitempty"`
	Status       string     `json:"status,omitempty"`
	Transparency string     `json:"transparency,omitempty"`
	Start        EventTime  `json:"start"`
	End          EventTime  `json:"end"`
	Attendees    []Attendee `json:"attendees,omitempty"`
	HTMLLink     string     `json:"htmlLink,omitempty"`
}

type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type Attendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty"`
}

type EventList struct {
	Items         []Event `json:"items"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
	TimeZone      string  `json:"timeZone,omitempty"`
}

// Blocks reports whether the event makes its time range unavailable.
func (e Event) Blocks() bool {
	return e.Status != EventStatusCancelled && e.Transparency != TransparencyTransparent
}

// Resolve returns the event bounds. All-day events span whole days in loc.
func (t EventTime) Resolve(loc *time.Location) (time.Time, error) {
	if t.DateTime != "" {
		return time.Parse(time.RFC3339, t.DateTime)
	}
	return time.ParseInLocation(time.DateOnly, t.Date, loc)
}

func NewEventTime(t time.Time) EventTime {
	return EventTime{
		DateTime: t.Format(time.RFC3339),
		TimeZone: t.Location().String(),
	}
}
