package domain

import (
	"time"

	"github.com/vfg2006/property-leads-api/pkg/utils"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func (g Granularity) Valid() bool {
	return g == GranularityDay || g == GranularityWeek || g == GranularityMonth
}

type Metric string

const (
	MetricSessions      Metric = "sessions"
	MetricPageViews     Metric = "pageviews"
	MetricLeads         Metric = "leads"
	MetricConsultations Metric = "consultations"
	MetricConversions   Metric = "conversions"
)

func (m Metric) Valid() bool {
	switch m {
	case MetricSessions, MetricPageViews, MetricLeads, MetricConsultations, MetricConversions:
		return true
	}
	return false
}

const (
	Period7Days   = "7d"
	Period30Days  = "30d"
	Period90Days  = "90d"
	Period12Month = "12m"
)

// Range is an inclusive reporting window.
type Range struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (r Range) Days() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

// ResolvePeriod turns a dashboard period shortcut into a range ending now.
// Unknown periods fall back to the last 30 days.
func ResolvePeriod(period string, now time.Time) Range {
	today := TruncateTo(now, GranularityDay)
	switch period {
	case Period7Days:
		return Range{From: today.AddDate(0, 0, -6), To: now}
	case Period90Days:
		return Range{From: today.AddDate(0, 0, -89), To: now}
	case Period12Month:
		return Range{From: TruncateTo(now, GranularityMonth).AddDate(0, -11, 0), To: now}
	default:
		return Range{From: today.AddDate(0, 0, -29), To: now}
	}
}

// GranularityFor picks the chart resolution for a range.
func GranularityFor(r Range) Granularity {
	switch days := r.Days(); {
	case days <= 31:
		return GranularityDay
	case days <= 92:
		return GranularityWeek
	default:
		return GranularityMonth
	}
}

// TruncateTo returns the start of the bucket containing t, in t's location.
// Weeks start on Monday.
func TruncateTo(t time.Time, g Granularity) time.Time {
	y, m, d := t.Date()
	switch g {
	case GranularityMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	case GranularityWeek:
		day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
}

func BucketLabel(t time.Time, g Granularity) string {
	if g == GranularityMonth {
		return t.Format("2006-01")
	}
	return t.Format(time.DateOnly)
}

func nextBucket(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityMonth:
		return t.AddDate(0, 1, 0)
	case GranularityWeek:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 0, 1)
	}
}

type Bucket struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

// BuildBuckets lays out every bucket between r.From and r.To, filling the
// counts keyed by BucketLabel and leaving gaps at zero.
func BuildBuckets(r Range, g Granularity, counts map[string]int) []Bucket {
	buckets := make([]Bucket, 0)
	if r.To.Before(r.From) {
		return buckets
	}
	for start := TruncateTo(r.From, g); !start.After(r.To); start = nextBucket(start, g) {
		label := BucketLabel(start, g)
		buckets = append(buckets, Bucket{
			Label: label,
			Start: start,
			Count: counts[label],
		})
	}
	return buckets
}

// ConversionRate returns conversions/sessions as a percentage with two decimals.
func ConversionRate(conversions, sessions int) float64 {
	if sessions <= 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(float64(conversions) / float64(sessions) * 100)
}

type Timeseries struct {
	Metric      Metric      `json:"metric"`
	Granularity Granularity `json:"granularity"`
	Range       Range       `json:"range"`
	Buckets     []Bucket    `json:"buckets"`
	Total       int         `json:"total"`
}

// DashboardStats holds the counters of a range. The *ByStatus breakdowns and
// UpcomingConsultations describe the current pipeline and ignore the range.
type DashboardStats struct {
	Range                  Range                      `json:"range"`
	Sessions               int                        `json:"sessions"`
	PageViews              int                        `json:"page_views"`
	Leads                  int                        `json:"leads"`
	Consultations          int                        `json:"consultations"`
	Conversions            int                        `json:"conversions"`
	ConversionRate         float64                    `json:"conversion_rate"`
	LeadsByStatus          map[LeadStatus]int         `json:"leads_by_status"`
	ConsultationsByStatus  map[ConsultationStatus]int `json:"consultations_by_status"`
	PropertiesByStatus     map[PropertyStatus]int     `json:"properties_by_status"`
	UpcomingConsultations  int                        `json:"upcoming_consultations"`
	PageViewsPerSession    float64                    `json:"page_views_per_session"`
	PreviousPeriodSessions int                        `json:"previous_period_sessions"`
	SessionsChangePercent  float64                    `json:"sessions_change_percent"`
}

type TrafficSource struct {
	Source         string  `json:"source"`
	Medium         string  `json:"medium"`
	Sessions       int     `json:"sessions"`
	Conversions    int     `json:"conversions"`
	ConversionRate float64 `json:"conversion_rate"`
}

type TopPage struct {
	Path          string  `json:"path"`
	Views         int     `json:"views"`
	Sessions      int     `json:"sessions"`
	AvgTimeOnPage float64 `json:"avg_time_on_page"`
}

type VariantPerformance struct {
	LandingPage    string  `json:"landing_page"`
	Variant        string  `json:"variant"`
	Sessions       int     `json:"sessions"`
	Conversions    int     `json:"conversions"`
	ConversionRate float64 `json:"conversion_rate"`
}

// PercentChange compares current against previous; 0 when there is no baseline.
func PercentChange(current, previous int) float64 {
	if previous == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(float64(current-previous) / float64(previous) * 100)
}
