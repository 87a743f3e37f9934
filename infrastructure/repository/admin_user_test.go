package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/property-leads-api/internal/domain"
)

func TestAdminUserRepository_GetByEmail(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewAdminUserRepository(conn)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM admin_users WHERE email = $1")).
		WithArgs("ops@example.ae").
		WillReturnRows(sqlmock.NewRows(adminUserColumns).
			AddRow(1, "Ops", "ops@example.ae", "$2a$10$hash", domain.RoleAdmin, true, nil, now, now))

	user, err := repo.GetByEmail(context.Background(), "OPS@example.ae")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.RoleID)
	assert.Nil(t, user.LastLoginAt)
}

func TestAdminUserRepository_Create_Duplicate(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewAdminUserRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO admin_users")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.AdminUser{Email: "ops@example.ae"})
	assert.ErrorIs(t, err, ErrConflict)
}
