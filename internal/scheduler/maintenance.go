package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/property-leads-api/infrastructure/repository"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/pkg/log"
)

type Job string

const (
	JobAll                   Job = "all"
	JobCompleteConsultations Job = "consultations"
	JobPurgeAnalytics        Job = "analytics"
)

func (j Job) Valid() bool {
	return j == JobAll || j == JobCompleteConsultations || j == JobPurgeAnalytics
}

type MaintenanceConfig struct {
	CronSchedule  string
	Enabled       bool
	RetentionDays int
}

type MaintenanceResult struct {
	Job                    Job       `json:"job"`
	StartedAt              time.Time `json:"started_at"`
	CompletedAt            time.Time `json:"completed_at"`
	CompletedConsultations int64     `json:"completed_consultations"`
	PurgedSessions         int64     `json:"purged_sessions"`
	Errors                 []string  `json:"errors,omitempty"`
}

// MaintenanceService closes consultations that already ended and purges
// analytics sessions older than the retention window.
type MaintenanceService struct {
	scheduler        *gocron.Scheduler
	config           MaintenanceConfig
	consultationRepo repository.ConsultationRepository
	analyticsRepo    repository.AnalyticsRepository
	now              func() time.Time

	runMutex   sync.Mutex
	running    bool
	lastResult *MaintenanceResult
}

func NewMaintenanceService(
	consultationRepo repository.ConsultationRepository,
	analyticsRepo repository.AnalyticsRepository,
	appConfig *config.Config,
) *MaintenanceService {
	maintenanceConfig := MaintenanceConfig{
		CronSchedule:  appConfig.Maintenance.CronSchedule,
		Enabled:       appConfig.Maintenance.Enabled,
		RetentionDays: appConfig.Maintenance.RetentionDays,
	}

	loc := appConfig.App.Location
	if loc == nil {
		loc = time.Local
	}

	log.L.WithFields(log.Fields{
		"cron_schedule":  maintenanceConfig.CronSchedule,
		"enabled":        maintenanceConfig.Enabled,
		"retention_days": maintenanceConfig.RetentionDays,
	}).Info("maintenance scheduler configured")

	return &MaintenanceService{
		scheduler:        gocron.NewScheduler(loc),
		config:           maintenanceConfig,
		consultationRepo: consultationRepo,
		analyticsRepo:    analyticsRepo,
		now:              time.Now,
	}
}

func (s *MaintenanceService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("maintenance scheduler disabled by configuration")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.Run(context.Background(), JobAll)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("stopping maintenance scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *MaintenanceService) acquire() bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

// Run executes job synchronously. It returns nil when a run is already in
// progress.
func (s *MaintenanceService) Run(ctx context.Context, job Job) *MaintenanceResult {
	if !s.acquire() {
		log.L.WithField("job", job).Info("maintenance already running, skipping")
		return nil
	}

	result := &MaintenanceResult{Job: job, StartedAt: s.now()}
	defer func() {
		result.CompletedAt = s.now()
		s.runMutex.Lock()
		s.running = false
		s.lastResult = result
		s.runMutex.Unlock()
	}()

	logger := log.L.WithField("job", job)

	if job == JobAll || job == JobCompleteConsultations {
		n, err := s.consultationRepo.CompletePast(ctx, result.StartedAt)
		if err != nil {
			logger.WithError(err).Error("failed to complete past consultations")
			result.Errors = append(result.Errors, err.Error())
		}
		result.CompletedConsultations = n
	}

	if (job == JobAll || job == JobPurgeAnalytics) && s.config.RetentionDays > 0 {
		cutoff := result.StartedAt.AddDate(0, 0, -s.config.RetentionDays)
		n, err := s.analyticsRepo.DeleteSessionsBefore(ctx, cutoff)
		if err != nil {
			logger.WithError(err).Error("failed to purge analytics sessions")
			result.Errors = append(result.Errors, err.Error())
		}
		result.PurgedSessions = n
	}

	logger.WithFields(log.Fields{
		"completed_consultations": result.CompletedConsultations,
		"purged_sessions":         result.PurgedSessions,
		"duration_ms":             s.now().Sub(result.StartedAt).Milliseconds(),
	}).Info("maintenance finished")

	return result
}

// TriggerManualSync starts job in the background. It reports false when a
// run is already in progress.
func (s *MaintenanceService) TriggerManualSync(job Job) bool {
	if s.IsRunning() {
		return false
	}

	log.L.WithField("job", job).Info("manual maintenance requested")
	go s.Run(context.Background(), job)
	return true
}

func (s *MaintenanceService) IsRunning() bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()
	return s.running
}

func (s *MaintenanceService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"enabled":        s.config.Enabled,
		"cron":           s.config.CronSchedule,
		"retention_days": s.config.RetentionDays,
		"running":        s.running,
		"last_run":       s.lastResult,
	}
}
