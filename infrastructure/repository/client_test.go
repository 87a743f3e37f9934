package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/property-leads-api/internal/domain"
)

func clientRow(id int64, email string, status domain.LeadStatus) []driver.Value {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return []driver.Value{
		id, "Aisha", "Rahman", email, "+971500000000", nil, nil,
		1500000.0, nil, `{"Business Bay",DIFC}`, "office", "website",
		string(status), nil, nil,
		"google", "cpc", "q1-offices", "", "",
		"abc", "", "",
		now, now,
	}
}

func TestClientRepository_UpsertByEmail(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewClientRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clients")).
		WithArgs(
			"Aisha", "Rahman", "aisha@example.ae", "+971500000000", nil, nil,
			1500000.0, nil, sqlmock.AnyArg(), nil, "website",
			"new", nil, nil,
			"google", "cpc", "q1-offices", "", "",
			"abc", "", "",
		).
		WillReturnRows(sqlmock.NewRows(clientColumns).AddRow(clientRow(7, "aisha@example.ae", domain.LeadStatusNew)...))

	budget := 1500000.0
	saved, err := repo.UpsertByEmail(context.Background(), &domain.Client{
		FirstName:      "Aisha",
		LastName:       "Rahman",
		Email:          "aisha@example.ae",
		Phone:          "+971500000000",
		BudgetMin:      &budget,
		PreferredAreas: []string{"Business Bay", "DIFC"},
		LeadSource:     "website",
		Status:         domain.LeadStatusNew,
		Attribution: domain.Attribution{
			UTMSource:   "google",
			UTMMedium:   "cpc",
			UTMCampaign: "q1-offices",
			GCLID:       "abc",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), saved.ID)
	assert.Equal(t, []string{"Business Bay", "DIFC"}, saved.PreferredAreas)
	require.NotNil(t, saved.PropertyType)
	assert.Equal(t, "office", *saved.PropertyType)
	assert.Equal(t, "google_ads", saved.Attribution.Channel())
}

func TestClientRepository_GetByID_NotFound(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewClientRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	client, err := repo.GetByID(context.Background(), 99)
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientRepository_GetByEmail_Normalizes(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewClientRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE email = $1")).
		WithArgs("aisha@example.ae").
		WillReturnRows(sqlmock.NewRows(clientColumns).AddRow(clientRow(7, "aisha@example.ae", domain.LeadStatusContacted)...))

	client, err := repo.GetByEmail(context.Background(), "  Aisha@Example.AE ")
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusContacted, client.Status)
}

func TestClientRepository_List(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewClientRepository(conn)

	status := domain.LeadStatusNew
	filters := domain.ClientFilters{
		Status:     &status,
		Search:     "rahman",
		Pagination: domain.Pagination{Page: 2, PageSize: 10},
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM clients WHERE (status = $1 AND (first_name ILIKE $2")).
		WithArgs("new", "%rahman%", "%rahman%", "%rahman%", "%rahman%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC LIMIT 10 OFFSET 10")).
		WillReturnRows(sqlmock.NewRows(clientColumns).AddRow(clientRow(3, "aisha@example.ae", domain.LeadStatusNew)...))

	clients, total, err := repo.List(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, clients, 1)
	assert.Equal(t, int64(3), clients[0].ID)
}

func TestClientRepository_Delete_NotFound(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewClientRepository(conn)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clients WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrNotFound)
}

func TestClientRepository_CountByStatus(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewClientRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) FROM clients GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("new", 4).
			AddRow("won", 1))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[domain.LeadStatus]int{domain.LeadStatusNew: 4, domain.LeadStatusWon: 1}, counts)
}
