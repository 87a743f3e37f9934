package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/property-leads-api/infrastructure/repository/mocks"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func newMaintenance(t *testing.T) (*MaintenanceService, *mocks.MockConsultationRepository, *mocks.MockAnalyticsRepository) {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	consultations := mocks.NewMockConsultationRepository(ctrl)
	analytics := mocks.NewMockAnalyticsRepository(ctrl)

	cfg := &config.Config{
		App:         config.App{Location: time.UTC},
		Maintenance: config.Maintenance{CronSchedule: "0 2 * * *", Enabled: true, RetentionDays: 365},
	}

	svc := NewMaintenanceService(consultations, analytics, cfg)
	return svc, consultations, analytics
}

func TestMaintenanceRun(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)

	t.Run("all jobs", func(t *testing.T) {
		svc, consultations, analytics := newMaintenance(t)
		svc.now = func() time.Time { return now }

		consultations.EXPECT().CompletePast(ctx, now).Return(int64(3), nil)
		analytics.EXPECT().DeleteSessionsBefore(ctx, time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)).Return(int64(120), nil)

		result := svc.Run(ctx, JobAll)
		require.NotNil(t, result)
		assert.Equal(t, int64(3), result.CompletedConsultations)
		assert.Equal(t, int64(120), result.PurgedSessions)
		assert.Empty(t, result.Errors)
		assert.False(t, svc.IsRunning())
		assert.Equal(t, result, svc.GetStatus()["last_run"])
	})

	t.Run("single job", func(t *testing.T) {
		svc, consultations, _ := newMaintenance(t)
		svc.now = func() time.Time { return now }
		consultations.EXPECT().CompletePast(ctx, now).Return(int64(1), nil)

		result := svc.Run(ctx, JobCompleteConsultations)
		require.NotNil(t, result)
		assert.Zero(t, result.PurgedSessions)
	})

	t.Run("failure in one job does not stop the other", func(t *testing.T) {
		svc, consultations, analytics := newMaintenance(t)
		svc.now = func() time.Time { return now }

		consultations.EXPECT().CompletePast(ctx, now).Return(int64(0), errors.New("lock timeout"))
		analytics.EXPECT().DeleteSessionsBefore(ctx, gomock.Any()).Return(int64(7), nil)

		result := svc.Run(ctx, JobAll)
		require.NotNil(t, result)
		assert.Equal(t, []string{"lock timeout"}, result.Errors)
		assert.Equal(t, int64(7), result.PurgedSessions)
	})

	t.Run("zero retention keeps analytics", func(t *testing.T) {
		svc, _, _ := newMaintenance(t)
		svc.config.RetentionDays = 0

		result := svc.Run(ctx, JobPurgeAnalytics)
		require.NotNil(t, result)
		assert.Zero(t, result.PurgedSessions)
	})

	t.Run("overlapping run is skipped", func(t *testing.T) {
		svc, _, _ := newMaintenance(t)
		svc.running = true

		assert.Nil(t, svc.Run(ctx, JobAll))
		assert.False(t, svc.TriggerManualSync(JobAll))
	})
}

func TestTriggerManualSync(t *testing.T) {
	svc, consultations, analytics := newMaintenance(t)

	done := make(chan struct{})
	consultations.EXPECT().CompletePast(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	analytics.EXPECT().DeleteSessionsBefore(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, time.Time) (int64, error) {
		close(done)
		return 0, nil
	})

	require.True(t, svc.TriggerManualSync(JobAll))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("manual maintenance did not run")
	}

	assert.Eventually(t, func() bool { return !svc.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestJobValid(t *testing.T) {
	assert.True(t, JobAll.Valid())
	assert.True(t, JobPurgeAnalytics.Valid())
	assert.False(t, Job("reindex").Valid())
}
