package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/property-leads-api/internal/domain"
)

func TestAnalyticsRepository_InsertPageView(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewAnalyticsRepository(conn)

	viewedAt := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	sessionID := "5b0f8a4e-4d5e-4bb3-9d4c-1c1b7b0c2f10"

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions")).
		WithArgs(sessionID, "/offices", "b", "", "Mozilla/5.0", "203.0.113.9", viewedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO page_views")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(15))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions SET page_views = page_views + 1")).
		WithArgs(sessionID, viewedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	view := &domain.PageView{
		SessionID: sessionID,
		Path:      "/offices",
		Variant:   "b",
		ViewedAt:  viewedAt,
		UserAgent: "Mozilla/5.0",
		IPAddress: "203.0.113.9",
	}
	require.NoError(t, repo.InsertPageView(context.Background(), view))
	assert.Equal(t, int64(15), view.ID)
}

func TestAnalyticsRepository_InsertPageView_RollsBack(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewAnalyticsRepository(conn)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO page_views")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.InsertPageView(context.Background(), &domain.PageView{SessionID: "s", Path: "/"})
	assert.ErrorContains(t, err, "disk full")
}

func TestAnalyticsRepository_InsertConversion_MarksSession(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewAnalyticsRepository(conn)

	sessionID := "5b0f8a4e-4d5e-4bb3-9d4c-1c1b7b0c2f10"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO conversions")).
		WithArgs(sessionID, int64(7), "lead", 0.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions SET converted = TRUE")).
		WithArgs(sessionID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.InsertConversion(context.Background(), &domain.Conversion{
		SessionID: &sessionID,
		ClientID:  7,
		Type:      domain.ConversionTypeLead,
	})
	require.NoError(t, err)
}

func TestAnalyticsRepository_CountGrouped(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewAnalyticsRepository(conn)

	rng := domain.Range{
		From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 7, 23, 59, 59, 0, time.UTC),
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT to_char(date_trunc('day', first_seen_at AT TIME ZONE $1), 'YYYY-MM-DD') AS bucket, COUNT(*) FROM sessions")).
		WithArgs("Asia/Dubai", rng.From, rng.To).
		WillReturnRows(sqlmock.NewRows([]string{"bucket", "count"}).
			AddRow("2025-03-01", 4).
			AddRow("2025-03-03", 9))

	counts, err := repo.CountGrouped(context.Background(), domain.MetricSessions, rng, domain.GranularityDay, "Asia/Dubai")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2025-03-01": 4, "2025-03-03": 9}, counts)
}

func TestAnalyticsRepository_CountMetric_UnknownMetric(t *testing.T) {
	conn, _ := newMockConn(t)
	repo := NewAnalyticsRepository(conn)

	_, err := repo.CountMetric(context.Background(), domain.Metric("revenue"), domain.Range{})
	assert.Error(t, err)
}

func TestAnalyticsRepository_TrafficSources(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewAnalyticsRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions")).
		WillReturnRows(sqlmock.NewRows([]string{"source", "medium", "sessions", "conversions"}).
			AddRow("google", "cpc", 200, 9).
			AddRow("direct", "none", 50, 0))

	sources, err := repo.TrafficSources(context.Background(), domain.Range{}, 10)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, 4.5, sources[0].ConversionRate)
	assert.Equal(t, 0.0, sources[1].ConversionRate)
}

func TestAnalyticsRepository_DeleteSessionsBefore(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewAnalyticsRepository(conn)

	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE last_seen_at < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 120))

	deleted, err := repo.DeleteSessionsBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(120), deleted)
}
