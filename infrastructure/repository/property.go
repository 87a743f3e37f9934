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

const propertiesTable = "properties"

var propertyColumns = []string{
	"id", "reference_code", "title", "slug", "description", "description_html",
	"type", "listing", "status", "area", "address", "size_sqft", "price_aed",
	"latitude", "longitude", "amenities", "images", "featured",
	"created_at", "updated_at",
}

//go:generate mockgen -source=property.go -destination=mocks/property_mock.go -package=mocks
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Property, error)
	List(ctx context.Context, filters domain.PropertyFilters) ([]*domain.Property, int, error)
	ListAvailableWithLocation(ctx context.Context) ([]*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	CountByStatus(ctx context.Context) (map[domain.PropertyStatus]int, error)
}

type propertyRepository struct {
	conn *postgres.Connection
}

func NewPropertyRepository(conn *postgres.Connection) PropertyRepository {
	return &propertyRepository{
		conn: conn,
	}
}

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	sqlQuery, args, err := psql.
		Insert(propertiesTable).
		Columns(
			"reference_code", "title", "slug", "description", "description_html",
			"type", "listing", "status", "area", "address", "size_sqft", "price_aed",
			"latitude", "longitude", "amenities", "images", "featured",
		).
		Values(
			p.ReferenceCode, p.Title, p.Slug, p.Description, p.DescriptionHTML,
			p.Type, p.Listing, p.Status, p.Area, p.Address, p.SizeSqft, p.PriceAED,
			p.Latitude, p.Longitude, pq.Array(p.Amenities), pq.Array(p.Images), p.Featured,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if postgres.IsUniqueViolation(err) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}

	return p, nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *propertyRepository) GetBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

func (r *propertyRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*domain.Property, error) {
	sqlQuery, args, err := psql.Select(propertyColumns...).From(propertiesTable).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	p, err := scanProperty(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func propertyWhere(filters domain.PropertyFilters) squirrel.And {
	where := squirrel.And{}
	if filters.Type != nil {
		where = append(where, squirrel.Eq{"type": *filters.Type})
	}
	if filters.Listing != nil {
		where = append(where, squirrel.Eq{"listing": *filters.Listing})
	}
	if len(filters.Statuses) > 0 {
		where = append(where, squirrel.Eq{"status": filters.Statuses})
	}
	if filters.PublicOnly {
		where = append(where, squirrel.NotEq{"status": domain.PropertyStatusDraft})
	}
	if area := strings.TrimSpace(filters.Area); area != "" {
		where = append(where, squirrel.ILike{"area": "%" + area + "%"})
	}
	if filters.MinPrice != nil {
		where = append(where, squirrel.GtOrEq{"price_aed": *filters.MinPrice})
	}
	if filters.MaxPrice != nil {
		where = append(where, squirrel.LtOrEq{"price_aed": *filters.MaxPrice})
	}
	if filters.MinSize != nil {
		where = append(where, squirrel.GtOrEq{"size_sqft": *filters.MinSize})
	}
	if filters.MaxSize != nil {
		where = append(where, squirrel.LtOrEq{"size_sqft": *filters.MaxSize})
	}
	if filters.Featured != nil {
		where = append(where, squirrel.Eq{"featured": *filters.Featured})
	}
	return where
}

func (r *propertyRepository) List(ctx context.Context, filters domain.PropertyFilters) ([]*domain.Property, int, error) {
	where := propertyWhere(filters)

	countSQL, countArgs, err := psql.Select("COUNT(*)").From(propertiesTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	sqlQuery, args, err := psql.
		Select(propertyColumns...).
		From(propertiesTable).
		Where(where).
		OrderBy("featured DESC", "created_at DESC", "id DESC").
		Limit(filters.Limit()).
		Offset(filters.Offset()).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	properties, err := r.query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

func (r *propertyRepository) ListAvailableWithLocation(ctx context.Context) ([]*domain.Property, error) {
	sqlQuery, args, err := psql.
		Select(propertyColumns...).
		From(propertiesTable).
		Where(squirrel.Eq{"status": domain.PropertyStatusAvailable}).
		Where(squirrel.NotEq{"latitude": nil, "longitude": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.query(ctx, sqlQuery, args...)
}

func (r *propertyRepository) query(ctx context.Context, sqlQuery string, args ...interface{}) ([]*domain.Property, error) {
	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	properties := make([]*domain.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}

	return properties, rows.Err()
}

func (r *propertyRepository) Update(ctx context.Context, p *domain.Property) error {
	sqlQuery, args, err := psql.
		Update(propertiesTable).
		Set("title", p.Title).
		Set("slug", p.Slug).
		Set("description", p.Description).
		Set("description_html", p.DescriptionHTML).
		Set("type", p.Type).
		Set("listing", p.Listing).
		Set("status", p.Status).
		Set("area", p.Area).
		Set("address", p.Address).
		Set("size_sqft", p.SizeSqft).
		Set("price_aed", p.PriceAED).
		Set("latitude", p.Latitude).
		Set("longitude", p.Longitude).
		Set("amenities", pq.Array(p.Amenities)).
		Set("images", pq.Array(p.Images)).
		Set("featured", p.Featured).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	err = execAffectingOne(ctx, r.conn, sqlQuery, args...)
	if postgres.IsUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *propertyRepository) Delete(ctx context.Context, id int64) error {
	sqlQuery, args, err := psql.Delete(propertiesTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	err = execAffectingOne(ctx, r.conn, sqlQuery, args...)
	if postgres.IsForeignKeyViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *propertyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.conn.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM properties WHERE slug = $1)", slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func (r *propertyRepository) CountByStatus(ctx context.Context) (map[domain.PropertyStatus]int, error) {
	rows, err := r.conn.QueryContext(ctx, "SELECT status, COUNT(*) FROM properties GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count properties by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.PropertyStatus]int)
	for rows.Next() {
		var status domain.PropertyStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.ID,
		&p.ReferenceCode,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.DescriptionHTML,
		&p.Type,
		&p.Listing,
		&p.Status,
		&p.Area,
		&p.Address,
		&p.SizeSqft,
		&p.PriceAED,
		&p.Latitude,
		&p.Longitude,
		pq.Array(&p.Amenities),
		pq.Array(&p.Images),
		&p.Featured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
