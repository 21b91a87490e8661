package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rajivgeraev/deals-api/internal/models"
)

// ListingRepository хранит объявления и их расширения
type ListingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository создает новый экземпляр ListingRepository
func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

// CreateListing сохраняет объявление и его расширение в одной транзакции
func (r *ListingRepository) CreateListing(ctx context.Context, p *models.Property, ext models.Extension) error {
	if ext == nil || ext.PropertyType() != p.PropertyType {
		return models.ErrExtensionMismatch
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO properties (
			id, user_id, title, description, purpose, property_type, category, city, location,
			marla, total_price, from_price, to_price, contact_name, contact_number, is_notified, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, p.ID, p.UserID, p.Title, p.Description, string(p.Purpose), string(p.PropertyType), p.Category,
		p.City, p.Location, p.Marla, p.TotalPrice, p.FromPrice, p.ToPrice,
		p.ContactName, p.ContactNumber, p.IsNotified, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}

	switch e := ext.(type) {
	case models.HouseExtension:
		_, err = tx.Exec(ctx, `
			INSERT INTO property_houses (property_id, house, street, bedrooms, bathrooms)
			VALUES ($1, $2, $3, $4, $5)
		`, p.ID, e.House, e.Street, e.Bedrooms, e.Bathrooms)
	case models.PlotExtension:
		_, err = tx.Exec(ctx, `
			INSERT INTO property_plots (property_id, series_from, series_to)
			VALUES ($1, $2, $3)
		`, p.ID, e.SeriesFrom, e.SeriesTo)
	case models.CommercialExtension:
		_, err = tx.Exec(ctx, `
			INSERT INTO property_commercials (property_id, series_from, series_to, bedrooms, bathrooms)
			VALUES ($1, $2, $3, $4, $5)
		`, p.ID, e.SeriesFrom, e.SeriesTo, e.Bedrooms, e.Bathrooms)
	default:
		return models.ErrExtensionMismatch
	}
	if err != nil {
		return fmt.Errorf("insert %s extension: %w", p.PropertyType, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit listing: %w", err)
	}
	return nil
}

// GetProperty возвращает базовую запись объявления
func (r *ListingRepository) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties p WHERE p.id = $1`, id)

	p, err := scanProperty(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &p, nil
}

// PropertyExists проверяет наличие объявления
func (r *ListingRepository) PropertyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM properties WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check property: %w", err)
	}
	return exists, nil
}

// GetExtensions читает расширения одной категории по списку объявлений.
// Отсутствующие записи просто не попадают в результат.
func (r *ListingRepository) GetExtensions(ctx context.Context, t models.PropertyType, ids []uuid.UUID) (map[uuid.UUID]models.Extension, error) {
	result := make(map[uuid.UUID]models.Extension, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var query string
	switch t {
	case models.PropertyTypeHouse:
		query = `SELECT property_id, house, street, bedrooms, bathrooms FROM property_houses WHERE property_id = ANY($1)`
	case models.PropertyTypePlot:
		query = `SELECT property_id, series_from, series_to FROM property_plots WHERE property_id = ANY($1)`
	case models.PropertyTypeCommercial:
		query = `SELECT property_id, series_from, series_to, bedrooms, bathrooms FROM property_commercials WHERE property_id = ANY($1)`
	default:
		return nil, models.ErrInvalidCategory
	}

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("query %s extensions: %w", t, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var ext models.Extension

		switch t {
		case models.PropertyTypeHouse:
			var e models.HouseExtension
			err = rows.Scan(&id, &e.House, &e.Street, &e.Bedrooms, &e.Bathrooms)
			ext = e
		case models.PropertyTypePlot:
			var e models.PlotExtension
			err = rows.Scan(&id, &e.SeriesFrom, &e.SeriesTo)
			ext = e
		case models.PropertyTypeCommercial:
			var e models.CommercialExtension
			err = rows.Scan(&id, &e.SeriesFrom, &e.SeriesTo, &e.Bedrooms, &e.Bathrooms)
			ext = e
		}
		if err != nil {
			return nil, fmt.Errorf("scan %s extension: %w", t, err)
		}
		result[id] = ext
	}

	return result, rows.Err()
}

// FindProperties возвращает страницу объявлений и общее их количество
func (r *ListingRepository) FindProperties(ctx context.Context, q models.PropertyQuery) ([]models.Property, int, error) {
	join, where, args := applyPropertyQuery(q).build()
	return r.findPage(ctx, join, where, args, q.Limit, q.Offset)
}

// FindByPredicates возвращает страницу объявлений, удовлетворяющих фильтру
func (r *ListingRepository) FindByPredicates(ctx context.Context, set models.PredicateSet, limit, offset int) ([]models.Property, int, error) {
	qb, err := applyPredicates(set)
	if err != nil {
		return nil, 0, err
	}
	join, where, args := qb.build()
	return r.findPage(ctx, join, where, args, limit, offset)
}

func (r *ListingRepository) findPage(ctx context.Context, join, where string, args []interface{}, limit, offset int) ([]models.Property, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM properties p %s %s`, join, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM properties p %s %s ORDER BY p.created_at DESC, p.id LIMIT $%d OFFSET $%d`,
		propertyColumns, join, where, n+1, n+2)
	pageArgs := append(append(make([]interface{}, 0, n+2), args...), limit, offset)

	rows, err := r.pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	properties := make([]models.Property, 0, limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate properties: %w", err)
	}

	return properties, total, nil
}

// FindMatchingOwners возвращает владельцев встречных объявлений без повторов
func (r *ListingRepository) FindMatchingOwners(ctx context.Context, q models.MatchQuery) ([]uuid.UUID, error) {
	_, where, args := applyMatchQuery(q).build()

	rows, err := r.pool.Query(ctx, `SELECT DISTINCT p.user_id FROM properties p `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query matching owners: %w", err)
	}
	defer rows.Close()

	var owners []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		owners = append(owners, id)
	}
	return owners, rows.Err()
}

func scanProperty(row pgx.Row) (models.Property, error) {
	var p models.Property
	var purpose, propertyType string
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Description,
		&purpose,
		&propertyType,
		&p.Category,
		&p.City,
		&p.Location,
		&p.Marla,
		&p.TotalPrice,
		&p.FromPrice,
		&p.ToPrice,
		&p.ContactName,
		&p.ContactNumber,
		&p.IsNotified,
		&p.CreatedAt,
	)
	p.Purpose = models.Purpose(purpose)
	p.PropertyType = models.PropertyType(propertyType)
	return p, err
}
