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

const adminUsersTable = "admin_users"

var adminUserColumns = []string{
	"id", "name", "email", "password_hash", "role_id", "active", "last_login_at", "created_at", "updated_at",
}

//go:generate mockgen -source=admin_user.go -destination=mocks/admin_user_mock.go -package=mocks
type AdminUserRepository interface {
	Create(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	GetByID(ctx context.Context, id int64) (*domain.AdminUser, error)
	List(ctx context.Context) ([]*domain.AdminUser, error)
	Update(ctx context.Context, user *domain.AdminUser) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

type adminUserRepository struct {
	conn *postgres.Connection
}

func NewAdminUserRepository(conn *postgres.Connection) AdminUserRepository {
	return &adminUserRepository{
		conn: conn,
	}
}

func (r *adminUserRepository) Create(ctx context.Context, user *domain.AdminUser) (*domain.AdminUser, error) {
	sqlQuery, args, err := psql.
		Insert(adminUsersTable).
		Columns("name", "email", "password_hash", "role_id", "active").
		Values(user.Name, user.Email, user.PasswordHash, user.RoleID, user.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if postgres.IsUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert admin user: %w", err)
	}

	return user, nil
}

func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	return r.getOne(ctx, squirrel.Eq{"email": domain.NormalizeEmail(email)})
}

func (r *adminUserRepository) GetByID(ctx context.Context, id int64) (*domain.AdminUser, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *adminUserRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*domain.AdminUser, error) {
	sqlQuery, args, err := psql.Select(adminUserColumns...).From(adminUsersTable).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	user, err := scanAdminUser(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *adminUserRepository) List(ctx context.Context) ([]*domain.AdminUser, error) {
	sqlQuery, args, err := psql.Select(adminUserColumns...).From(adminUsersTable).OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.AdminUser, 0)
	for rows.Next() {
		user, err := scanAdminUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *adminUserRepository) Update(ctx context.Context, user *domain.AdminUser) error {
	sqlQuery, args, err := psql.
		Update(adminUsersTable).
		Set("name", user.Name).
		Set("role_id", user.RoleID).
		Set("active", user.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	return execAffectingOne(ctx, r.conn, sqlQuery, args...)
}

func (r *adminUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	sqlQuery, args, err := psql.
		Update(adminUsersTable).
		Set("password_hash", passwordHash).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	return execAffectingOne(ctx, r.conn, sqlQuery, args...)
}

func (r *adminUserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.conn.ExecContext(ctx, "UPDATE admin_users SET last_login_at = $1 WHERE id = $2", at, id)
	return err
}

func scanAdminUser(row rowScanner) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.RoleID,
		&u.Active,
		&u.LastLoginAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
