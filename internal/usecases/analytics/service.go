package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/property-leads-api/infrastructure/repository"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/utils"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	MaxRangeDays = 731
)

// RangeQuery selects the reporting window: either a period shortcut
// (7d, 30d, 90d, 12m) or an explicit from/to pair of YYYY-MM-DD dates.
type RangeQuery struct {
	Period string
	From   string
	To     string
}

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type Analyzer interface {
	Dashboard(ctx context.Context, query RangeQuery) (*domain.DashboardStats, error)
	Timeseries(ctx context.Context, metric domain.Metric, query RangeQuery, granularity domain.Granularity) (*domain.Timeseries, error)
	TrafficSources(ctx context.Context, query RangeQuery, limit int) ([]domain.TrafficSource, error)
	TopPages(ctx context.Context, query RangeQuery, limit int) ([]domain.TopPage, error)
	Variants(ctx context.Context, query RangeQuery) ([]domain.VariantPerformance, error)
}

type Service struct {
	analyticsRepo    repository.AnalyticsRepository
	clientRepo       repository.ClientRepository
	consultationRepo repository.ConsultationRepository
	propertyRepo     repository.PropertyRepository
	loc              *time.Location
	now              func() time.Time
}

func NewService(
	cfg *config.Config,
	analyticsRepo repository.AnalyticsRepository,
	clientRepo repository.ClientRepository,
	consultationRepo repository.ConsultationRepository,
	propertyRepo repository.PropertyRepository,
) Analyzer {
	loc := cfg.App.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Service{
		analyticsRepo:    analyticsRepo,
		clientRepo:       clientRepo,
		consultationRepo: consultationRepo,
		propertyRepo:     propertyRepo,
		loc:              loc,
		now:              time.Now,
	}
}

func (s *Service) resolveRange(query RangeQuery) (domain.Range, error) {
	now := s.now().In(s.loc)
	if query.From == "" && query.To == "" {
		return domain.ResolvePeriod(query.Period, now), nil
	}

	from, err := utils.ParseDateIn(query.From, s.loc)
	if err != nil {
		return domain.Range{}, NewAnalyticsError(ErrInvalidRange, apiErrors.ErrInvalidFormat, "from")
	}

	to := now
	if query.To != "" {
		day, err := utils.ParseDateIn(query.To, s.loc)
		if err != nil {
			return domain.Range{}, NewAnalyticsError(ErrInvalidRange, apiErrors.ErrInvalidFormat, "to")
		}
		to = utils.EndOfDay(day)
	}

	r := domain.Range{From: from, To: to}
	if r.To.Before(r.From) {
		return domain.Range{}, NewAnalyticsError(ErrInvalidRange, apiErrors.ErrInvalidRequest, "from is after to")
	}
	if r.Days() > MaxRangeDays {
		return domain.Range{}, NewAnalyticsError(ErrInvalidRange, apiErrors.ErrInvalidRequest, "range too long")
	}

	return r, nil
}

// previousRange is the window of the same length that ends right before r.
func previousRange(r domain.Range) domain.Range {
	length := r.To.Sub(r.From)
	end := r.From.Add(-time.Microsecond)
	return domain.Range{From: end.Add(-length), To: end}
}

// Dashboard gathers the headline numbers. The queries are independent and
// run concurrently; the first failure is reported.
func (s *Service) Dashboard(ctx context.Context, query RangeQuery) (*domain.DashboardStats, error) {
	r, err := s.resolveRange(query)
	if err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{Range: r}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}()
	}

	count := func(metric domain.Metric, rng domain.Range, dst *int) {
		run(func() (err error) {
			*dst, err = s.analyticsRepo.CountMetric(ctx, metric, rng)
			return err
		})
	}

	count(domain.MetricSessions, r, &stats.Sessions)
	count(domain.MetricPageViews, r, &stats.PageViews)
	count(domain.MetricLeads, r, &stats.Leads)
	count(domain.MetricConsultations, r, &stats.Consultations)
	count(domain.MetricConversions, r, &stats.Conversions)
	count(domain.MetricSessions, previousRange(r), &stats.PreviousPeriodSessions)

	run(func() (err error) {
		stats.LeadsByStatus, err = s.clientRepo.CountByStatus(ctx)
		return err
	})
	run(func() (err error) {
		stats.ConsultationsByStatus, err = s.consultationRepo.CountByStatus(ctx)
		return err
	})
	run(func() (err error) {
		stats.PropertiesByStatus, err = s.propertyRepo.CountByStatus(ctx)
		return err
	})
	run(func() (err error) {
		stats.UpcomingConsultations, err = s.consultationRepo.CountUpcoming(ctx, s.now())
		return err
	})

	wg.Wait()
	if firstErr != nil {
		return nil, databaseError(firstErr)
	}

	stats.ConversionRate = domain.ConversionRate(stats.Conversions, stats.Sessions)
	stats.PageViewsPerSession = utils.Ratio(stats.PageViews, stats.Sessions)
	stats.SessionsChangePercent = domain.PercentChange(stats.Sessions, stats.PreviousPeriodSessions)

	return stats, nil
}

// Timeseries buckets a metric over the range. An empty granularity is
// derived from the range length.
func (s *Service) Timeseries(ctx context.Context, metric domain.Metric, query RangeQuery, granularity domain.Granularity) (*domain.Timeseries, error) {
	if !metric.Valid() {
		return nil, NewAnalyticsError(ErrInvalidMetric, apiErrors.ErrInvalidFormat, metric)
	}

	r, err := s.resolveRange(query)
	if err != nil {
		return nil, err
	}

	if granularity == "" {
		granularity = domain.GranularityFor(r)
	}
	if !granularity.Valid() {
		return nil, NewAnalyticsError(ErrInvalidGranularity, apiErrors.ErrInvalidFormat, granularity)
	}

	counts, err := s.analyticsRepo.CountGrouped(ctx, metric, r, granularity, s.loc.String())
	if err != nil {
		return nil, databaseError(err)
	}

	buckets := domain.BuildBuckets(r, granularity, counts)
	total := 0
	for _, b := range buckets {
		total += b.Count
	}

	return &domain.Timeseries{
		Metric:      metric,
		Granularity: granularity,
		Range:       r,
		Buckets:     buckets,
		Total:       total,
	}, nil
}

func (s *Service) TrafficSources(ctx context.Context, query RangeQuery, limit int) ([]domain.TrafficSource, error) {
	r, err := s.resolveRange(query)
	if err != nil {
		return nil, err
	}

	sources, err := s.analyticsRepo.TrafficSources(ctx, r, clampLimit(limit))
	if err != nil {
		return nil, databaseError(err)
	}

	return sources, nil
}

func (s *Service) TopPages(ctx context.Context, query RangeQuery, limit int) ([]domain.TopPage, error) {
	r, err := s.resolveRange(query)
	if err != nil {
		return nil, err
	}

	pages, err := s.analyticsRepo.TopPages(ctx, r, clampLimit(limit))
	if err != nil {
		return nil, databaseError(err)
	}

	return pages, nil
}

// Variants compares landing page variants by session to conversion rate.
func (s *Service) Variants(ctx context.Context, query RangeQuery) ([]domain.VariantPerformance, error) {
	r, err := s.resolveRange(query)
	if err != nil {
		return nil, err
	}

	variants, err := s.analyticsRepo.VariantPerformance(ctx, r)
	if err != nil {
		return nil, databaseError(err)
	}

	return variants, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
