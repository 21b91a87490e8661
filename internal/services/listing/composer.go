package listing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rajivgeraev/deals-api/internal/models"
)

// Composer собирает ListingView из базовой записи, расширения и статуса избранного
type Composer struct {
	resolver *Resolver
	wishlist WishlistLookup
}

// NewComposer создает новый экземпляр Composer
func NewComposer(resolver *Resolver, wishlist WishlistLookup) *Composer {
	return &Composer{resolver: resolver, wishlist: wishlist}
}

// Compose собирает представление одного объявления для пользователя
func (c *Composer) Compose(ctx context.Context, userID uuid.UUID, p models.Property) (models.ListingView, error) {
	views, err := c.ComposeMany(ctx, userID, []models.Property{p})
	if err != nil {
		return models.ListingView{}, err
	}
	return views[0], nil
}

// ComposeMany собирает представления пачки объявлений для одного пользователя.
// Избранное проверяется одним запросом на всю пачку.
func (c *Composer) ComposeMany(ctx context.Context, userID uuid.UUID, properties []models.Property) ([]models.ListingView, error) {
	views := make([]models.ListingView, 0, len(properties))
	if len(properties) == 0 {
		return views, nil
	}

	exts, err := c.resolver.ResolveMany(ctx, properties)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.ID)
	}

	wishlisted, err := c.wishlist.WishlistedIDs(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("wishlist lookup: %w", err)
	}

	for _, p := range properties {
		views = append(views, models.ListingView{
			Property:     p,
			Extension:    exts[p.ID],
			IsWishlisted: wishlisted[p.ID],
		})
	}
	return views, nil
}
