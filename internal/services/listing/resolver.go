package listing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rajivgeraev/deals-api/internal/logger"
	"github.com/rajivgeraev/deals-api/internal/models"
)

// Resolver находит расширение объявления по его property_type
type Resolver struct {
	store ExtensionStore
}

// NewResolver создает новый экземпляр Resolver
func NewResolver(store ExtensionStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve возвращает расширение одного объявления.
// Если записи нет, возвращается models.ErrExtensionNotFound.
func (r *Resolver) Resolve(ctx context.Context, p models.Property) (models.Extension, error) {
	exts, err := r.ResolveMany(ctx, []models.Property{p})
	if err != nil {
		return nil, err
	}
	ext, ok := exts[p.ID]
	if !ok {
		return nil, models.ErrExtensionNotFound
	}
	return ext, nil
}

// ResolveMany находит расширения для набора объявлений, по одному запросу на категорию.
// Объявления без согласованного расширения в результат не попадают.
func (r *Resolver) ResolveMany(ctx context.Context, properties []models.Property) (map[uuid.UUID]models.Extension, error) {
	log := logger.FromContext(ctx)
	result := make(map[uuid.UUID]models.Extension, len(properties))

	byType := make(map[models.PropertyType][]uuid.UUID)
	for _, p := range properties {
		if !p.PropertyType.Valid() {
			log.Warn("listing has unknown property type", logger.Fields{
				"property_id":   p.ID,
				"property_type": p.PropertyType,
			})
			continue
		}
		byType[p.PropertyType] = append(byType[p.PropertyType], p.ID)
	}

	for _, t := range models.PropertyTypes {
		ids := byType[t]
		if len(ids) == 0 {
			continue
		}

		exts, err := r.store.GetExtensions(ctx, t, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve %s extensions: %w", t, err)
		}

		for _, id := range ids {
			ext, ok := exts[id]
			switch {
			case !ok || ext == nil:
				log.Warn("listing has no extension", logger.Fields{"property_id": id, "property_type": t})
			case ext.PropertyType() != t:
				log.Warn("listing extension type mismatch", logger.Fields{
					"property_id":    id,
					"property_type":  t,
					"extension_type": ext.PropertyType(),
				})
			default:
				result[id] = ext
			}
		}
	}

	return result, nil
}
