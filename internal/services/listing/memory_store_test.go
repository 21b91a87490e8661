package listing

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rajivgeraev/deals-api/internal/models"
)

// memoryStore хранилище в памяти для тестов сервиса и обработчиков
type memoryStore struct {
	mu         sync.Mutex
	properties []models.Property
	extensions map[uuid.UUID]models.Extension
	wishlist   map[uuid.UUID]map[uuid.UUID]bool
	clock      time.Time
	createErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		extensions: make(map[uuid.UUID]models.Extension),
		wishlist:   make(map[uuid.UUID]map[uuid.UUID]bool),
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryStore) CreateListing(_ context.Context, p *models.Property, ext models.Extension) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ext == nil || ext.PropertyType() != p.PropertyType {
		return models.ErrExtensionMismatch
	}
	if m.createErr != nil {
		return m.createErr
	}

	m.clock = m.clock.Add(time.Minute)
	p.ID = uuid.New()
	p.CreatedAt = m.clock
	m.properties = append(m.properties, *p)
	m.extensions[p.ID] = ext
	return nil
}

func (m *memoryStore) GetProperty(_ context.Context, id uuid.UUID) (*models.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.properties {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, models.ErrPropertyNotFound
}

func (m *memoryStore) GetExtensions(_ context.Context, t models.PropertyType, ids []uuid.UUID) (map[uuid.UUID]models.Extension, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[uuid.UUID]models.Extension)
	for _, id := range ids {
		if ext, ok := m.extensions[id]; ok && ext.PropertyType() == t {
			out[id] = ext
		}
	}
	return out, nil
}

func (m *memoryStore) FindProperties(_ context.Context, q models.PropertyQuery) ([]models.Property, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []models.Property
	for _, p := range m.properties {
		if q.WishlistedBy != nil && !m.wishlist[*q.WishlistedBy][p.ID] {
			continue
		}
		if q.OwnerID != nil && p.UserID != *q.OwnerID {
			continue
		}
		if q.ExcludeOwnerID != nil && p.UserID == *q.ExcludeOwnerID {
			continue
		}
		if q.Purpose != "" && p.Purpose != q.Purpose {
			continue
		}
		if q.PropertyType != "" && p.PropertyType != q.PropertyType {
			continue
		}
		if q.TitleContains != "" && !containsFold(p.Title, q.TitleContains) {
			continue
		}
		matched = append(matched, p)
	}
	return paginate(matched, q.Limit, q.Offset)
}

func (m *memoryStore) FindByPredicates(_ context.Context, set models.PredicateSet, limit, offset int) ([]models.Property, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []models.Property
	for _, p := range m.properties {
		ext, ok := m.extensions[p.ID]
		if !ok || ext.PropertyType() != set.PropertyType {
			continue
		}
		all := true
		for _, pr := range set.Predicates {
			if !evaluate(pr, fieldValue(p, ext, pr.Field)) {
				all = false
				break
			}
		}
		if all {
			matched = append(matched, p)
		}
	}
	return paginate(matched, limit, offset)
}

func (m *memoryStore) WishlistedIDs(_ context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if m.wishlist[userID][id] {
			out[id] = true
		}
	}
	return out, nil
}

func (m *memoryStore) addWishlist(userID, propertyID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.wishlist[userID] == nil {
		m.wishlist[userID] = make(map[uuid.UUID]bool)
	}
	m.wishlist[userID][propertyID] = true
}

func paginate(items []models.Property, limit, offset int) ([]models.Property, int, error) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })

	total := len(items)
	if offset >= total {
		return []models.Property{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return items[offset:end], total, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func fieldValue(p models.Property, ext models.Extension, f models.Field) interface{} {
	switch f {
	case models.FieldPropertyType:
		return string(p.PropertyType)
	case models.FieldPurpose:
		return string(p.Purpose)
	case models.FieldCategory:
		return p.Category
	case models.FieldCity:
		return p.City
	case models.FieldLocation:
		return p.Location
	case models.FieldMarla:
		return p.Marla
	case models.FieldFromPrice:
		return p.FromPrice
	case models.FieldToPrice:
		return p.ToPrice
	}

	switch e := ext.(type) {
	case models.HouseExtension:
		switch f {
		case models.FieldHouse:
			return e.House
		case models.FieldStreet:
			return e.Street
		case models.FieldBedrooms:
			return e.Bedrooms
		case models.FieldBathrooms:
			return e.Bathrooms
		}
	case models.PlotExtension:
		switch f {
		case models.FieldSeriesFrom:
			return e.SeriesFrom
		case models.FieldSeriesTo:
			return e.SeriesTo
		}
	case models.CommercialExtension:
		switch f {
		case models.FieldSeriesFrom:
			return e.SeriesFrom
		case models.FieldSeriesTo:
			return e.SeriesTo
		case models.FieldBedrooms:
			return e.Bedrooms
		case models.FieldBathrooms:
			return e.Bathrooms
		}
	}
	return nil
}

// evaluate повторяет семантику SQL: сравнение с NULL ложно
func evaluate(pr models.Predicate, actual interface{}) bool {
	if pr.Op == models.OpContains {
		s, ok := actual.(string)
		return ok && containsFold(s, pr.Value.(string))
	}

	cmp, ok := compare(actual, pr.Value)
	if !ok {
		return false
	}
	switch pr.Op {
	case models.OpEqual:
		return cmp == 0
	case models.OpGTE:
		return cmp >= 0
	case models.OpLTE:
		return cmp <= 0
	}
	return false
}

func compare(actual, want interface{}) (int, bool) {
	switch a := actual.(type) {
	case *float64:
		if a == nil {
			return 0, false
		}
		return compare(*a, want)
	case *int:
		if a == nil {
			return 0, false
		}
		return compare(*a, want)
	case int:
		w, ok := want.(int)
		if !ok {
			return 0, false
		}
		return a - w, true
	case float64:
		w, ok := want.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case a < w:
			return -1, true
		case a > w:
			return 1, true
		}
		return 0, true
	case string:
		w, ok := want.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(a, w), true
	}
	return 0, false
}
