package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rajivgeraev/deals-api/internal/models"
)

// WishlistRepository хранит избранные объявления пользователей
type WishlistRepository struct {
	pool *pgxpool.Pool
}

// NewWishlistRepository создает новый экземпляр WishlistRepository
func NewWishlistRepository(pool *pgxpool.Pool) *WishlistRepository {
	return &WishlistRepository{pool: pool}
}

// Upsert добавляет объявление в избранное.
// Повторное добавление не создает дубликат, а обновляет updated_at.
func (r *WishlistRepository) Upsert(ctx context.Context, userID, propertyID uuid.UUID) (*models.WishlistEntry, error) {
	var e models.WishlistEntry
	err := r.pool.QueryRow(ctx, `
		INSERT INTO wishlists (id, user_id, property_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id, property_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, user_id, property_id, created_at, updated_at
	`, uuid.New(), userID, propertyID).Scan(&e.ID, &e.UserID, &e.PropertyID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert wishlist entry: %w", err)
	}
	return &e, nil
}

// Delete удаляет объявление из избранного, отсутствие записи не ошибка
func (r *WishlistRepository) Delete(ctx context.Context, userID, propertyID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM wishlists WHERE user_id = $1 AND property_id = $2`, userID, propertyID)
	if err != nil {
		return fmt.Errorf("delete wishlist entry: %w", err)
	}
	return nil
}

// WishlistedIDs возвращает, какие из объявлений пользователь добавил в избранное
func (r *WishlistRepository) WishlistedIDs(ctx context.Context, userID uuid.UUID, propertyIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT property_id FROM wishlists WHERE user_id = $1 AND property_id = ANY($2)
	`, userID, propertyIDs)
	if err != nil {
		return nil, fmt.Errorf("query wishlist: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan wishlist entry: %w", err)
		}
		result[id] = true
	}
	return result, rows.Err()
}
