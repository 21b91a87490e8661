package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistEntry представляет запись избранного объявления
type WishlistEntry struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	PropertyID uuid.UUID `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
