package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/property-leads-api/infrastructure/database/postgres"
	"github.com/vfg2006/property-leads-api/internal/domain"
)

const clientsTable = "clients"

var clientColumns = []string{
	"id", "first_name", "last_name", "email", "phone", "company", "nationality",
	"budget_min", "budget_max", "preferred_areas", "property_type", "lead_source",
	"status", "notes", "session_id",
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"gclid", "fbclid", "msclkid",
	"created_at", "updated_at",
}

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks
type ClientRepository interface {
	UpsertByEmail(ctx context.Context, client *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	List(ctx context.Context, filters domain.ClientFilters) ([]*domain.Client, int, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[domain.LeadStatus]int, error)
}

type clientRepository struct {
	conn *postgres.Connection
}

func NewClientRepository(conn *postgres.Connection) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

// UpsertByEmail inserts a lead or refreshes the contact details of an
// existing one. The original lead source, status and attribution are kept.
func (r *clientRepository) UpsertByEmail(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	query := psql.
		Insert(clientsTable).
		Columns(
			"first_name", "last_name", "email", "phone", "company", "nationality",
			"budget_min", "budget_max", "preferred_areas", "property_type", "lead_source",
			"status", "notes", "session_id",
			"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
			"gclid", "fbclid", "msclkid",
		).
		Values(
			client.FirstName, client.LastName, client.Email, client.Phone, client.Company, client.Nationality,
			client.BudgetMin, client.BudgetMax, pq.Array(client.PreferredAreas), client.PropertyType, client.LeadSource,
			client.Status, client.Notes, client.SessionID,
			client.Attribution.UTMSource, client.Attribution.UTMMedium, client.Attribution.UTMCampaign,
			client.Attribution.UTMTerm, client.Attribution.UTMContent,
			client.Attribution.GCLID, client.Attribution.FBCLID, client.Attribution.MSCLKID,
		).
		Suffix(`
			ON CONFLICT (email) DO UPDATE SET
				first_name = EXCLUDED.first_name,
				last_name = COALESCE(NULLIF(EXCLUDED.last_name, ''), clients.last_name),
				phone = COALESCE(NULLIF(EXCLUDED.phone, ''), clients.phone),
				company = COALESCE(EXCLUDED.company, clients.company),
				nationality = COALESCE(EXCLUDED.nationality, clients.nationality),
				budget_min = COALESCE(EXCLUDED.budget_min, clients.budget_min),
				budget_max = COALESCE(EXCLUDED.budget_max, clients.budget_max),
				property_type = COALESCE(EXCLUDED.property_type, clients.property_type),
				session_id = COALESCE(clients.session_id, EXCLUDED.session_id),
				updated_at = NOW()
			RETURNING ` + joinColumns(clientColumns))

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	saved, err := scanClient(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert client: %w", err)
	}

	return saved, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.getOne(ctx, squirrel.Eq{"email": domain.NormalizeEmail(email)})
}

func (r *clientRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*domain.Client, error) {
	sqlQuery, args, err := psql.Select(clientColumns...).From(clientsTable).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	client, err := scanClient(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return client, nil
}

func (r *clientRepository) List(ctx context.Context, filters domain.ClientFilters) ([]*domain.Client, int, error) {
	where := squirrel.And{}
	if filters.Status != nil {
		where = append(where, squirrel.Eq{"status": *filters.Status})
	}
	if filters.Source != "" {
		where = append(where, squirrel.Eq{"lead_source": filters.Source})
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"company": pattern},
		})
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From(clientsTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	sqlQuery, args, err := psql.
		Select(clientColumns...).
		From(clientsTable).
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(filters.Limit()).
		Offset(filters.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, client)
	}

	return clients, total, rows.Err()
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	sqlQuery, args, err := psql.
		Update(clientsTable).
		Set("first_name", client.FirstName).
		Set("last_name", client.LastName).
		Set("phone", client.Phone).
		Set("company", client.Company).
		Set("nationality", client.Nationality).
		Set("budget_min", client.BudgetMin).
		Set("budget_max", client.BudgetMax).
		Set("preferred_areas", pq.Array(client.PreferredAreas)).
		Set("property_type", client.PropertyType).
		Set("status", client.Status).
		Set("notes", client.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": client.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	return execAffectingOne(ctx, r.conn, sqlQuery, args...)
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	sqlQuery, args, err := psql.Delete(clientsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	err = execAffectingOne(ctx, r.conn, sqlQuery, args...)
	if postgres.IsForeignKeyViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *clientRepository) CountByStatus(ctx context.Context) (map[domain.LeadStatus]int, error) {
	rows, err := r.conn.QueryContext(ctx, "SELECT status, COUNT(*) FROM clients GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count clients by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.LeadStatus]int)
	for rows.Next() {
		var status domain.LeadStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.Company,
		&c.Nationality,
		&c.BudgetMin,
		&c.BudgetMax,
		pq.Array(&c.PreferredAreas),
		&c.PropertyType,
		&c.LeadSource,
		&c.Status,
		&c.Notes,
		&c.SessionID,
		&c.Attribution.UTMSource,
		&c.Attribution.UTMMedium,
		&c.Attribution.UTMCampaign,
		&c.Attribution.UTMTerm,
		&c.Attribution.UTMContent,
		&c.Attribution.GCLID,
		&c.Attribution.FBCLID,
		&c.Attribution.MSCLKID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// execAffectingOne runs a write and maps "no row touched" to ErrNotFound.
func execAffectingOne(ctx context.Context, q postgres.Queryer, sqlQuery string, args ...interface{}) error {
	result, err := q.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
