package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/internal/domain"
)

var templates = template.Must(template.New("mail").Parse(`
{{define "booking_confirmation"}}
<p>Dear {{.Client.FirstName}},</p>
<p>Your consultation is confirmed for <strong>{{.When}}</strong> ({{.Timezone}}).</p>
<ul>
  <li>Reference: {{.Consultation.Reference}}</li>
  <li>Meeting: {{.Meeting}}</li>
  <li>Duration: {{.Consultation.DurationMinutes}} minutes</li>
</ul>
<p>If you need to reschedule, simply reply to this email quoting your reference.</p>
{{end}}
{{define "lead_notice"}}
<p>New lead from <strong>{{.Source}}</strong>.</p>
<ul>
  <li>Name: {{.Client.FullName}}</li>
  <li>Email: {{.Client.Email}}</li>
  <li>Phone: {{.Client.Phone}}</li>
  {{with .Client.Company}}<li>Company: {{.}}</li>{{end}}
  <li>Channel: {{.Client.Attribution.Channel}}</li>
</ul>
{{with .Message}}<p>{{.}}</p>{{end}}
{{end}}
`))

var meetingLabels = map[domain.MeetingType]string{
	domain.MeetingTypeInPerson: "In person at our office",
	domain.MeetingTypeVideo:    "Video call",
	domain.MeetingTypePhone:    "Phone call",
}

//go:generate mockgen -source=notifier.go -destination=mocks/notifier_mock.go -package=mocks
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, client *domain.Client, consultation *domain.Consultation) error
	SendLeadNotice(ctx context.Context, client *domain.Client, source, message string) error
}

type MailNotifier struct {
	sender      Sender
	teamAddress string
	loc         *time.Location
}

func NewNotifier(cfg *config.Config, sender Sender) Notifier {
	loc := cfg.App.Location
	if loc == nil {
		loc = time.UTC
	}
	return &MailNotifier{
		sender:      sender,
		teamAddress: cfg.Mailer.TeamAddress,
		loc:         loc,
	}
}

func (n *MailNotifier) SendBookingConfirmation(ctx context.Context, client *domain.Client, consultation *domain.Consultation) error {
	html, err := render("booking_confirmation", map[string]any{
		"Client":       client,
		"Consultation": consultation,
		"When":         consultation.StartsAt.In(n.loc).Format("Monday, 2 January 2006 at 15:04"),
		"Timezone":     n.loc.String(),
		"Meeting":      meetingLabels[consultation.MeetingType],
	})
	if err != nil {
		return err
	}

	_, err = n.sender.Send(ctx, SendRequest{
		To:      []string{client.Email},
		ReplyTo: n.teamAddress,
		Subject: fmt.Sprintf("Your consultation %s is confirmed", consultation.Reference),
		HTML:    html,
	})
	return err
}

// SendLeadNotice alerts the sales team. Skipped when no team address is set.
func (n *MailNotifier) SendLeadNotice(ctx context.Context, client *domain.Client, source, message string) error {
	if n.teamAddress == "" {
		return nil
	}

	html, err := render("lead_notice", map[string]any{
		"Client":  client,
		"Source":  source,
		"Message": message,
	})
	if err != nil {
		return err
	}

	_, err = n.sender.Send(ctx, SendRequest{
		To:      []string{n.teamAddress},
		ReplyTo: client.Email,
		Subject: fmt.Sprintf("New lead: %s", client.FullName()),
		HTML:    html,
	})
	return err
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
