package listing

import (
	"context"

	"github.com/google/uuid"

	"github.com/rajivgeraev/deals-api/internal/models"
)

// ExtensionStore читает расширения объявлений по категории
type ExtensionStore interface {
	GetExtensions(ctx context.Context, t models.PropertyType, ids []uuid.UUID) (map[uuid.UUID]models.Extension, error)
}

// WishlistLookup сообщает, какие объявления пользователь добавил в избранное
type WishlistLookup interface {
	WishlistedIDs(ctx context.Context, userID uuid.UUID, propertyIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

// Store хранилище объявлений
type Store interface {
	ExtensionStore
	CreateListing(ctx context.Context, p *models.Property, ext models.Extension) error
	GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)
	FindProperties(ctx context.Context, q models.PropertyQuery) ([]models.Property, int, error)
	FindByPredicates(ctx context.Context, set models.PredicateSet, limit, offset int) ([]models.Property, int, error)
}

// CreatedListener получает уведомление после сохранения нового объявления.
// Реализация не должна блокировать вызывающего и не должна использовать ctx
// после возврата: он отменяется вместе с запросом.
type CreatedListener interface {
	ListingCreated(ctx context.Context, p models.Property)
}
