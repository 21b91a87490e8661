package wishlist

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rajivgeraev/deals-api/internal/logger"
	"github.com/rajivgeraev/deals-api/internal/models"
	"github.com/rajivgeraev/deals-api/internal/services/listing"
	"github.com/rajivgeraev/deals-api/internal/utils"
)

// EntryStore хранит записи избранного
type EntryStore interface {
	Upsert(ctx context.Context, userID, propertyID uuid.UUID) (*models.WishlistEntry, error)
	Delete(ctx context.Context, userID, propertyID uuid.UUID) error
}

// PropertyStore нужен для проверки и выборки избранных объявлений
type PropertyStore interface {
	PropertyExists(ctx context.Context, id uuid.UUID) (bool, error)
	FindProperties(ctx context.Context, q models.PropertyQuery) ([]models.Property, int, error)
}

// WishlistService представляет сервис для работы с избранными объявлениями
type WishlistService struct {
	entries    EntryStore
	properties PropertyStore
	composer   *listing.Composer
	pageSize   int
}

// NewWishlistService создает новый экземпляр WishlistService
func NewWishlistService(entries EntryStore, properties PropertyStore, composer *listing.Composer) *WishlistService {
	return &WishlistService{
		entries:    entries,
		properties: properties,
		composer:   composer,
		pageSize:   utils.DefaultPageSize,
	}
}

// Add добавляет объявление в избранное, повторный вызов ничего не дублирует
func (s *WishlistService) Add(ctx context.Context, userID, propertyID uuid.UUID) (*models.WishlistEntry, error) {
	if err := s.ensureProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	entry, err := s.entries.Upsert(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("wishlist entry saved", logger.Fields{
		"user_id":     userID,
		"property_id": propertyID,
	})
	return entry, nil
}

// Remove удаляет объявление из избранного.
// Объявление, которого нет в избранном, удаляется без ошибки.
func (s *WishlistService) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	if err := s.ensureProperty(ctx, propertyID); err != nil {
		return err
	}
	return s.entries.Delete(ctx, userID, propertyID)
}

// List возвращает избранные объявления пользователя, по умолчанию с purpose=required
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID, q listing.ListQuery) (*listing.Page, error) {
	pq, err := q.PropertyQuery(models.PurposeRequired, s.pageSize)
	if err != nil {
		return nil, err
	}
	pq.WishlistedBy = &userID

	properties, total, err := s.properties.FindProperties(ctx, pq)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}

	views, err := s.composer.ComposeMany(ctx, userID, properties)
	if err != nil {
		return nil, err
	}
	return listing.NewPage(views, total, q.Page, s.pageSize), nil
}

func (s *WishlistService) ensureProperty(ctx context.Context, propertyID uuid.UUID) error {
	exists, err := s.properties.PropertyExists(ctx, propertyID)
	if err != nil {
		return fmt.Errorf("check property: %w", err)
	}
	if !exists {
		return models.ErrPropertyNotFound
	}
	return nil
}
