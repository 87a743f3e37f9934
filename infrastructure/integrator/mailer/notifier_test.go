package mailer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/property-leads-api/infrastructure/integrator/mailer"
	"github.com/vfg2006/property-leads-api/infrastructure/integrator/mailer/mocks"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestSendBookingConfirmation(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)

	loc := time.FixedZone("GST", 4*60*60)
	cfg := &config.Config{
		App:    config.App{Location: loc},
		Mailer: config.Mailer{TeamAddress: "sales@example.ae"},
	}
	notifier := mailer.NewNotifier(cfg, sender)

	sender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req mailer.SendRequest) (mailer.SendResult, error) {
			assert.Equal(t, []string{"aisha@example.ae"}, req.To)
			assert.Equal(t, "sales@example.ae", req.ReplyTo)
			assert.Contains(t, req.Subject, "CNS-ABCDEFGH")
			assert.Contains(t, req.HTML, "Wednesday, 12 March 2025 at 10:00")
			assert.Contains(t, req.HTML, "Video call")
			return mailer.SendResult{MessageID: "m1"}, nil
		})

	err := notifier.SendBookingConfirmation(context.Background(),
		&domain.Client{FirstName: "Aisha", Email: "aisha@example.ae"},
		&domain.Consultation{
			Reference:       "CNS-ABCDEFGH",
			StartsAt:        time.Date(2025, 3, 12, 6, 0, 0, 0, time.UTC),
			DurationMinutes: 60,
			MeetingType:     domain.MeetingTypeVideo,
		},
	)
	require.NoError(t, err)
}

func TestSendLeadNotice_EscapesInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)

	notifier := mailer.NewNotifier(&config.Config{Mailer: config.Mailer{TeamAddress: "sales@example.ae"}}, sender)

	sender.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req mailer.SendRequest) (mailer.SendResult, error) {
			assert.Equal(t, []string{"sales@example.ae"}, req.To)
			assert.Equal(t, "omar@example.ae", req.ReplyTo)
			assert.NotContains(t, req.HTML, "<script>")
			assert.Contains(t, req.HTML, "&lt;script&gt;")
			assert.Contains(t, req.HTML, "landing-offices")
			return mailer.SendResult{}, nil
		})

	err := notifier.SendLeadNotice(context.Background(),
		&domain.Client{FirstName: "Omar", Email: "omar@example.ae"},
		"landing-offices",
		"<script>alert(1)</script>",
	)
	require.NoError(t, err)
}

func TestSendLeadNotice_NoTeamAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)

	notifier := mailer.NewNotifier(&config.Config{}, sender)

	require.NoError(t, notifier.SendLeadNotice(context.Background(), &domain.Client{}, "website", ""))
}

func TestNewSender(t *testing.T) {
	_, isNoop := mailer.NewSender(&config.Config{}).(*mailer.NoopSender)
	assert.True(t, isNoop)

	_, isResend := mailer.NewSender(&config.Config{Mailer: config.Mailer{ResendAPIKey: "re_test"}}).(*mailer.ResendSender)
	assert.True(t, isResend)
}
