package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/property-leads-api/infrastructure/database/postgres"
	"github.com/vfg2006/property-leads-api/internal/domain"
)

const (
	sessionsTable    = "sessions"
	pageViewsTable   = "page_views"
	eventsTable      = "events"
	conversionsTable = "conversions"
)

var sessionColumns = []string{
	"session_id", "landing_page", "variant", "referrer", "user_agent", "ip_address",
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"gclid", "fbclid", "msclkid",
	"page_views", "converted", "first_seen_at", "last_seen_at",
}

type metricSource struct {
	table      string
	timeColumn string
}

// metricSources whitelists the tables and timestamp columns a metric may be counted on.
var metricSources = map[domain.Metric]metricSource{
	domain.MetricSessions:      {table: sessionsTable, timeColumn: "first_seen_at"},
	domain.MetricPageViews:     {table: pageViewsTable, timeColumn: "viewed_at"},
	domain.MetricLeads:         {table: clientsTable, timeColumn: "created_at"},
	domain.MetricConsultations: {table: consultationsTable, timeColumn: "created_at"},
	domain.MetricConversions:   {table: conversionsTable, timeColumn: "created_at"},
}

var bucketFormats = map[domain.Granularity]string{
	domain.GranularityDay:   "YYYY-MM-DD",
	domain.GranularityWeek:  "YYYY-MM-DD",
	domain.GranularityMonth: "YYYY-MM",
}

//go:generate mockgen -source=analytics.go -destination=mocks/analytics_mock.go -package=mocks
type AnalyticsRepository interface {
	UpsertSession(ctx context.Context, session *domain.Session) (*domain.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	InsertPageView(ctx context.Context, view *domain.PageView) error
	InsertEvent(ctx context.Context, event *domain.Event) error
	InsertConversion(ctx context.Context, conversion *domain.Conversion) error
	CountMetric(ctx context.Context, metric domain.Metric, r domain.Range) (int, error)
	CountGrouped(ctx context.Context, metric domain.Metric, r domain.Range, g domain.Granularity, timezone string) (map[string]int, error)
	TrafficSources(ctx context.Context, r domain.Range, limit int) ([]domain.TrafficSource, error)
	TopPages(ctx context.Context, r domain.Range, limit int) ([]domain.TopPage, error)
	VariantPerformance(ctx context.Context, r domain.Range) ([]domain.VariantPerformance, error)
	DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type analyticsRepository struct {
	conn *postgres.Connection
}

func NewAnalyticsRepository(conn *postgres.Connection) AnalyticsRepository {
	return &analyticsRepository{
		conn: conn,
	}
}

// UpsertSession records a landing. A returning session only refreshes last_seen_at,
// the first-touch attribution is never overwritten.
func (r *analyticsRepository) UpsertSession(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	sqlQuery, args, err := psql.
		Insert(sessionsTable).
		Columns(
			"session_id", "landing_page", "variant", "referrer", "user_agent", "ip_address",
			"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
			"gclid", "fbclid", "msclkid", "first_seen_at", "last_seen_at",
		).
		Values(
			s.SessionID, s.LandingPage, s.Variant, s.Referrer, s.UserAgent, s.IPAddress,
			s.Attribution.UTMSource, s.Attribution.UTMMedium, s.Attribution.UTMCampaign,
			s.Attribution.UTMTerm, s.Attribution.UTMContent,
			s.Attribution.GCLID, s.Attribution.FBCLID, s.Attribution.MSCLKID,
			s.FirstSeenAt, s.LastSeenAt,
		).
		Suffix("ON CONFLICT (session_id) DO UPDATE SET last_seen_at = EXCLUDED.last_seen_at RETURNING " + joinColumns(sessionColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	saved, err := scanSession(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert session: %w", err)
	}

	return saved, nil
}

func (r *analyticsRepository) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	sqlQuery, args, err := psql.Select(sessionColumns...).From(sessionsTable).Where(squirrel.Eq{"session_id": sessionID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	s, err := scanSession(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return s, nil
}

// InsertPageView stores the view and bumps the owning session counters in one
// transaction. A view for an unknown session opens that session on the fly.
func (r *analyticsRepository) InsertPageView(ctx context.Context, v *domain.PageView) error {
	return r.conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		_, err := q.ExecContext(ctx, `
			INSERT INTO sessions (session_id, landing_page, variant, referrer, user_agent, ip_address, first_seen_at, last_seen_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			ON CONFLICT (session_id) DO NOTHING`,
			v.SessionID, v.Path, v.Variant, v.Referrer, v.UserAgent, v.IPAddress, v.ViewedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to ensure session: %w", err)
		}

		insertSQL, args, err := psql.
			Insert(pageViewsTable).
			Columns("session_id", "path", "title", "variant", "referrer", "time_on_page_sec", "viewed_at").
			Values(v.SessionID, v.Path, v.Title, v.Variant, v.Referrer, v.TimeOnPageSec, v.ViewedAt).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		if err := q.QueryRowContext(ctx, insertSQL, args...).Scan(&v.ID); err != nil {
			return fmt.Errorf("failed to insert page view: %w", err)
		}

		_, err = q.ExecContext(ctx,
			"UPDATE sessions SET page_views = page_views + 1, last_seen_at = GREATEST(last_seen_at, $2) WHERE session_id = $1",
			v.SessionID, v.ViewedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to touch session: %w", err)
		}

		return nil
	})
}

func (r *analyticsRepository) InsertEvent(ctx context.Context, e *domain.Event) error {
	var properties interface{}
	if len(e.Properties) > 0 {
		properties = []byte(e.Properties)
	}

	sqlQuery, args, err := psql.
		Insert(eventsTable).
		Columns("session_id", "name", "category", "label", "value", "properties", "occurred_at").
		Values(e.SessionID, e.Name, e.Category, e.Label, e.Value, properties, e.OccurredAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&e.ID)
	if postgres.IsForeignKeyViolation(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// InsertConversion stores the conversion and flags the session as converted.
func (r *analyticsRepository) InsertConversion(ctx context.Context, c *domain.Conversion) error {
	return r.conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		sqlQuery, args, err := psql.
			Insert(conversionsTable).
			Columns("session_id", "client_id", "type", "value").
			Values(c.SessionID, c.ClientID, c.Type, c.Value).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		if err := q.QueryRowContext(ctx, sqlQuery, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert conversion: %w", err)
		}

		if c.SessionID == nil {
			return nil
		}

		_, err = q.ExecContext(ctx, "UPDATE sessions SET converted = TRUE WHERE session_id = $1", *c.SessionID)
		if err != nil {
			return fmt.Errorf("failed to mark session converted: %w", err)
		}

		return nil
	})
}

func (r *analyticsRepository) CountMetric(ctx context.Context, metric domain.Metric, rng domain.Range) (int, error) {
	source, ok := metricSources[metric]
	if !ok {
		return 0, fmt.Errorf("unknown metric %q", metric)
	}

	sqlQuery, args, err := psql.
		Select("COUNT(*)").
		From(source.table).
		Where(squirrel.GtOrEq{source.timeColumn: rng.From}).
		Where(squirrel.LtOrEq{source.timeColumn: rng.To}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", metric, err)
	}

	return count, nil
}

// CountGrouped counts a metric per bucket. Bucket keys are rendered in the
// given timezone so they line up with domain.BucketLabel.
func (r *analyticsRepository) CountGrouped(
	ctx context.Context,
	metric domain.Metric,
	rng domain.Range,
	g domain.Granularity,
	timezone string,
) (map[string]int, error) {
	source, ok := metricSources[metric]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q", metric)
	}
	format, ok := bucketFormats[g]
	if !ok {
		return nil, fmt.Errorf("unknown granularity %q", g)
	}

	bucketExpr := fmt.Sprintf(
		"to_char(date_trunc('%s', %s AT TIME ZONE ?), '%s') AS bucket",
		g, source.timeColumn, format,
	)

	sqlQuery, args, err := psql.
		Select().
		Column(bucketExpr, timezone).
		Column("COUNT(*)").
		From(source.table).
		Where(squirrel.GtOrEq{source.timeColumn: rng.From}).
		Where(squirrel.LtOrEq{source.timeColumn: rng.To}).
		GroupBy("bucket").
		OrderBy("bucket").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group %s: %w", metric, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var bucket string
		var count int
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, err
		}
		counts[bucket] = count
	}

	return counts, rows.Err()
}

func (r *analyticsRepository) TrafficSources(ctx context.Context, rng domain.Range, limit int) ([]domain.TrafficSource, error) {
	sqlQuery, args, err := psql.
		Select(
			"COALESCE(NULLIF(utm_source, ''), CASE WHEN gclid <> '' THEN 'google' WHEN fbclid <> '' THEN 'facebook' ELSE 'direct' END) AS source",
			"COALESCE(NULLIF(utm_medium, ''), CASE WHEN gclid <> '' OR fbclid <> '' OR msclkid <> '' THEN 'cpc' ELSE 'none' END) AS medium",
			"COUNT(*) AS sessions",
			"COUNT(*) FILTER (WHERE converted) AS conversions",
		).
		From(sessionsTable).
		Where(squirrel.GtOrEq{"first_seen_at": rng.From}).
		Where(squirrel.LtOrEq{"first_seen_at": rng.To}).
		GroupBy("source", "medium").
		OrderBy("sessions DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load traffic sources: %w", err)
	}
	defer rows.Close()

	sources := make([]domain.TrafficSource, 0)
	for rows.Next() {
		var s domain.TrafficSource
		if err := rows.Scan(&s.Source, &s.Medium, &s.Sessions, &s.Conversions); err != nil {
			return nil, err
		}
		s.ConversionRate = domain.ConversionRate(s.Conversions, s.Sessions)
		sources = append(sources, s)
	}

	return sources, rows.Err()
}

func (r *analyticsRepository) TopPages(ctx context.Context, rng domain.Range, limit int) ([]domain.TopPage, error) {
	sqlQuery, args, err := psql.
		Select(
			"path",
			"COUNT(*) AS views",
			"COUNT(DISTINCT session_id) AS sessions",
			"COALESCE(AVG(NULLIF(time_on_page_sec, 0)), 0) AS avg_time",
		).
		From(pageViewsTable).
		Where(squirrel.GtOrEq{"viewed_at": rng.From}).
		Where(squirrel.LtOrEq{"viewed_at": rng.To}).
		GroupBy("path").
		OrderBy("views DESC", "path").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load top pages: %w", err)
	}
	defer rows.Close()

	pages := make([]domain.TopPage, 0)
	for rows.Next() {
		var p domain.TopPage
		if err := rows.Scan(&p.Path, &p.Views, &p.Sessions, &p.AvgTimeOnPage); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}

	return pages, rows.Err()
}

func (r *analyticsRepository) VariantPerformance(ctx context.Context, rng domain.Range) ([]domain.VariantPerformance, error) {
	sqlQuery, args, err := psql.
		Select(
			"landing_page",
			"COALESCE(NULLIF(variant, ''), 'control') AS variant_name",
			"COUNT(*) AS sessions",
			"COUNT(*) FILTER (WHERE converted) AS conversions",
		).
		From(sessionsTable).
		Where(squirrel.GtOrEq{"first_seen_at": rng.From}).
		Where(squirrel.LtOrEq{"first_seen_at": rng.To}).
		GroupBy("landing_page", "variant_name").
		OrderBy("landing_page", "variant_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load variant performance: %w", err)
	}
	defer rows.Close()

	variants := make([]domain.VariantPerformance, 0)
	for rows.Next() {
		var v domain.VariantPerformance
		if err := rows.Scan(&v.LandingPage, &v.Variant, &v.Sessions, &v.Conversions); err != nil {
			return nil, err
		}
		v.ConversionRate = domain.ConversionRate(v.Conversions, v.Sessions)
		variants = append(variants, v)
	}

	return variants, rows.Err()
}

// DeleteSessionsBefore purges sessions idle since cutoff. Page views and events
// cascade; conversions keep their row with a NULL session.
func (r *analyticsRepository) DeleteSessionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	sqlQuery, args, err := psql.Delete(sessionsTable).Where(squirrel.Lt{"last_seen_at": cutoff}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}

	return result.RowsAffected()
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(
		&s.SessionID,
		&s.LandingPage,
		&s.Variant,
		&s.Referrer,
		&s.UserAgent,
		&s.IPAddress,
		&s.Attribution.UTMSource,
		&s.Attribution.UTMMedium,
		&s.Attribution.UTMCampaign,
		&s.Attribution.UTMTerm,
		&s.Attribution.UTMContent,
		&s.Attribution.GCLID,
		&s.Attribution.FBCLID,
		&s.Attribution.MSCLKID,
		&s.PageViews,
		&s.Converted,
		&s.FirstSeenAt,
		&s.LastSeenAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
