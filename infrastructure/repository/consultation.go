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
	consultationsTable = "consultations"

	// ActiveStartIndex is the partial unique index guarding double bookings.
	ActiveStartIndex = "consultations_active_start_idx"
)

var consultationColumns = []string{
	"c.id", "c.reference", "c.client_id", "c.property_id", "c.starts_at", "c.ends_at",
	"c.duration_minutes", "c.meeting_type", "c.status", "c.calendar_event_id", "c.notes",
	"TRIM(cl.first_name || ' ' || cl.last_name)", "cl.email",
	"c.created_at", "c.updated_at",
}

//go:generate mockgen -source=consultation.go -destination=mocks/consultation_mock.go -package=mocks
type ConsultationRepository interface {
	Create(ctx context.Context, consultation *domain.Consultation) (*domain.Consultation, error)
	GetByID(ctx context.Context, id int64) (*domain.Consultation, error)
	GetByReference(ctx context.Context, reference string) (*domain.Consultation, error)
	List(ctx context.Context, filters domain.ConsultationFilters) ([]*domain.Consultation, int, error)
	ExistsActiveAt(ctx context.Context, start time.Time) (bool, error)
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]*domain.Consultation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ConsultationStatus) error
	SetCalendarEventID(ctx context.Context, id int64, eventID string) error
	CompletePast(ctx context.Context, before time.Time) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.ConsultationStatus]int, error)
	CountUpcoming(ctx context.Context, from time.Time) (int, error)
}

type consultationRepository struct {
	conn *postgres.Connection
}

func NewConsultationRepository(conn *postgres.Connection) ConsultationRepository {
	return &consultationRepository{
		conn: conn,
	}
}

func (r *consultationRepository) Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	sqlQuery, args, err := psql.
		Insert(consultationsTable).
		Columns(
			"reference", "client_id", "property_id", "starts_at", "ends_at",
			"duration_minutes", "meeting_type", "status", "calendar_event_id", "notes",
		).
		Values(
			c.Reference, c.ClientID, c.PropertyID, c.StartsAt, c.EndsAt,
			c.DurationMinutes, c.MeetingType, c.Status, c.CalendarEventID, c.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if postgres.IsUniqueViolation(err, ActiveStartIndex) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert consultation: %w", err)
	}

	return c, nil
}

func (r *consultationRepository) selectBuilder() squirrel.SelectBuilder {
	return psql.
		Select(consultationColumns...).
		From(consultationsTable + " c").
		Join(clientsTable + " cl ON cl.id = c.client_id")
}

func (r *consultationRepository) GetByID(ctx context.Context, id int64) (*domain.Consultation, error) {
	return r.getOne(ctx, squirrel.Eq{"c.id": id})
}

func (r *consultationRepository) GetByReference(ctx context.Context, reference string) (*domain.Consultation, error) {
	return r.getOne(ctx, squirrel.Eq{"c.reference": reference})
}

func (r *consultationRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*domain.Consultation, error) {
	sqlQuery, args, err := r.selectBuilder().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	c, err := scanConsultation(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (r *consultationRepository) List(ctx context.Context, filters domain.ConsultationFilters) ([]*domain.Consultation, int, error) {
	where := squirrel.And{}
	if filters.Status != nil {
		where = append(where, squirrel.Eq{"c.status": *filters.Status})
	}
	if filters.ClientID != nil {
		where = append(where, squirrel.Eq{"c.client_id": *filters.ClientID})
	}
	if filters.From != nil {
		where = append(where, squirrel.GtOrEq{"c.starts_at": *filters.From})
	}
	if filters.To != nil {
		where = append(where, squirrel.LtOrEq{"c.starts_at": *filters.To})
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From(consultationsTable + " c").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count consultations: %w", err)
	}

	sqlQuery, args, err := r.selectBuilder().
		Where(where).
		OrderBy("c.starts_at DESC", "c.id DESC").
		Limit(filters.Limit()).
		Offset(filters.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	consultations, err := r.query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	return consultations, total, nil
}

func (r *consultationRepository) ExistsActiveAt(ctx context.Context, start time.Time) (bool, error) {
	sqlQuery, args, err := psql.
		Select("1").
		From(consultationsTable).
		Where(squirrel.Eq{"starts_at": start, "status": domain.ActiveConsultationStatuses}).
		Prefix("SELECT EXISTS(").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var exists bool
	if err := r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}

	return exists, nil
}

func (r *consultationRepository) ListActiveBetween(ctx context.Context, from, to time.Time) ([]*domain.Consultation, error) {
	sqlQuery, args, err := r.selectBuilder().
		Where(squirrel.Eq{"c.status": domain.ActiveConsultationStatuses}).
		Where(squirrel.Lt{"c.starts_at": to}).
		Where(squirrel.Gt{"c.ends_at": from}).
		OrderBy("c.starts_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.query(ctx, sqlQuery, args...)
}

func (r *consultationRepository) query(ctx context.Context, sqlQuery string, args ...interface{}) ([]*domain.Consultation, error) {
	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	defer rows.Close()

	consultations := make([]*domain.Consultation, 0)
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		consultations = append(consultations, c)
	}

	return consultations, rows.Err()
}

func (r *consultationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ConsultationStatus) error {
	sqlQuery, args, err := psql.
		Update(consultationsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	err = execAffectingOne(ctx, r.conn, sqlQuery, args...)
	if postgres.IsUniqueViolation(err, ActiveStartIndex) {
		return ErrConflict
	}
	return err
}

func (r *consultationRepository) SetCalendarEventID(ctx context.Context, id int64, eventID string) error {
	sqlQuery, args, err := psql.
		Update(consultationsTable).
		Set("calendar_event_id", eventID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	return execAffectingOne(ctx, r.conn, sqlQuery, args...)
}

// CompletePast marks every active consultation that ended before the cutoff as completed.
func (r *consultationRepository) CompletePast(ctx context.Context, before time.Time) (int64, error) {
	sqlQuery, args, err := psql.
		Update(consultationsTable).
		Set("status", domain.ConsultationStatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.ActiveConsultationStatuses}).
		Where(squirrel.Lt{"ends_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to complete past consultations: %w", err)
	}

	return result.RowsAffected()
}

func (r *consultationRepository) CountByStatus(ctx context.Context) (map[domain.ConsultationStatus]int, error) {
	rows, err := r.conn.QueryContext(ctx, "SELECT status, COUNT(*) FROM consultations GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count consultations by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.ConsultationStatus]int)
	for rows.Next() {
		var status domain.ConsultationStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func (r *consultationRepository) CountUpcoming(ctx context.Context, from time.Time) (int, error) {
	sqlQuery, args, err := psql.
		Select("COUNT(*)").
		From(consultationsTable).
		Where(squirrel.Eq{"status": domain.ActiveConsultationStatuses}).
		Where(squirrel.GtOrEq{"starts_at": from}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count upcoming consultations: %w", err)
	}

	return count, nil
}

func scanConsultation(row rowScanner) (*domain.Consultation, error) {
	var c domain.Consultation
	err := row.Scan(
		&c.ID,
		&c.Reference,
		&c.ClientID,
		&c.PropertyID,
		&c.StartsAt,
		&c.EndsAt,
		&c.DurationMinutes,
		&c.MeetingType,
		&c.Status,
		&c.CalendarEventID,
		&c.Notes,
		&c.ClientName,
		&c.ClientEmail,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
