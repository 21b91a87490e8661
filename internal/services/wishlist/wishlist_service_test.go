package wishlist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rajivgeraev/deals-api/internal/models"
	"github.com/rajivgeraev/deals-api/internal/services/listing"
)

// fakeStore объявления и избранное в памяти
type fakeStore struct {
	properties map[uuid.UUID]models.Property
	entries    map[[2]uuid.UUID]*models.WishlistEntry
}

func newFakeStore(props ...models.Property) *fakeStore {
	s := &fakeStore{
		properties: make(map[uuid.UUID]models.Property),
		entries:    make(map[[2]uuid.UUID]*models.WishlistEntry),
	}
	for _, p := range props {
		s.properties[p.ID] = p
	}
	return s
}

func (s *fakeStore) Upsert(_ context.Context, userID, propertyID uuid.UUID) (*models.WishlistEntry, error) {
	key := [2]uuid.UUID{userID, propertyID}
	if e, ok := s.entries[key]; ok {
		e.UpdatedAt = e.UpdatedAt.Add(time.Second)
		return e, nil
	}
	now := time.Now()
	e := &models.WishlistEntry{ID: uuid.New(), UserID: userID, PropertyID: propertyID, CreatedAt: now, UpdatedAt: now}
	s.entries[key] = e
	return e, nil
}

func (s *fakeStore) Delete(_ context.Context, userID, propertyID uuid.UUID) error {
	delete(s.entries, [2]uuid.UUID{userID, propertyID})
	return nil
}

func (s *fakeStore) PropertyExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := s.properties[id]
	return ok, nil
}

func (s *fakeStore) FindProperties(_ context.Context, q models.PropertyQuery) ([]models.Property, int, error) {
	var out []models.Property
	for _, p := range s.properties {
		if q.WishlistedBy != nil && s.entries[[2]uuid.UUID{*q.WishlistedBy, p.ID}] == nil {
			continue
		}
		if q.ExcludeOwnerID != nil && p.UserID == *q.ExcludeOwnerID {
			continue
		}
		if q.Purpose != "" && p.Purpose != q.Purpose {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (s *fakeStore) GetExtensions(_ context.Context, t models.PropertyType, ids []uuid.UUID) (map[uuid.UUID]models.Extension, error) {
	out := make(map[uuid.UUID]models.Extension)
	for _, id := range ids {
		if t == models.PropertyTypePlot {
			out[id] = models.PlotExtension{SeriesFrom: "A", SeriesTo: "C"}
		}
	}
	return out, nil
}

func (s *fakeStore) WishlistedIDs(_ context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if s.entries[[2]uuid.UUID{userID, id}] != nil {
			out[id] = true
		}
	}
	return out, nil
}

func newService(store *fakeStore) *WishlistService {
	return NewWishlistService(store, store, listing.NewComposer(listing.NewResolver(store), store))
}

func plot(owner uuid.UUID, purpose models.Purpose) models.Property {
	return models.Property{
		ID:           uuid.New(),
		UserID:       owner,
		Title:        "Plot in Bahria",
		Purpose:      purpose,
		PropertyType: models.PropertyTypePlot,
	}
}

func TestWishlistService_AddIsIdempotent(t *testing.T) {
	user := uuid.New()
	p := plot(uuid.New(), models.PurposeSale)
	store := newFakeStore(p)
	svc := newService(store)

	first, err := svc.Add(context.Background(), user, p.ID)
	require.NoError(t, err)
	second, err := svc.Add(context.Background(), user, p.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.entries, 1)
}

func TestWishlistService_UnknownProperty(t *testing.T) {
	svc := newService(newFakeStore())

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, models.ErrPropertyNotFound)

	err = svc.Remove(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, models.ErrPropertyNotFound)
}

func TestWishlistService_RemoveNotWishlisted(t *testing.T) {
	p := plot(uuid.New(), models.PurposeSale)
	svc := newService(newFakeStore(p))

	assert.NoError(t, svc.Remove(context.Background(), uuid.New(), p.ID))
}

func TestWishlistService_AddListRemove(t *testing.T) {
	user, owner, other := uuid.New(), uuid.New(), uuid.New()
	p := plot(owner, models.PurposeSale)
	store := newFakeStore(p)
	svc := newService(store)
	ctx := context.Background()

	_, err := svc.Add(ctx, user, p.ID)
	require.NoError(t, err)

	page, err := svc.List(ctx, user, listing.ListQuery{Purpose: "sale", Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, p.ID, page.Data[0].ID)
	assert.True(t, page.Data[0].IsWishlisted)
	assert.Equal(t, models.PlotExtension{SeriesFrom: "A", SeriesTo: "C"}, page.Data[0].Extension)

	// по умолчанию показываются только required
	page, err = svc.List(ctx, user, listing.ListQuery{Page: 1})
	require.NoError(t, err)
	assert.Empty(t, page.Data)

	require.NoError(t, svc.Remove(ctx, user, p.ID))

	page, err = svc.List(ctx, user, listing.ListQuery{Purpose: "sale", Page: 1})
	require.NoError(t, err)
	assert.Empty(t, page.Data)

	views, err := listing.NewComposer(listing.NewResolver(store), store).ComposeMany(ctx, other, []models.Property{p})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].IsWishlisted)
}

func TestWishlistService_ListRejectsBadPurpose(t *testing.T) {
	svc := newService(newFakeStore())

	_, err := svc.List(context.Background(), uuid.New(), listing.ListQuery{Purpose: "swap", Page: 1})
	var ve *models.ValidationError
	assert.ErrorAs(t, err, &ve)
}

type mockProperties struct {
	mock.Mock
}

func (m *mockProperties) PropertyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockProperties) FindProperties(ctx context.Context, q models.PropertyQuery) ([]models.Property, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Property), args.Int(1), args.Error(2)
}

func TestWishlistService_StoreFailures(t *testing.T) {
	store := newFakeStore()
	props := new(mockProperties)
	props.On("PropertyExists", mock.Anything, mock.Anything).Return(false, errors.New("conn refused"))
	props.On("FindProperties", mock.Anything, mock.Anything).Return(nil, 0, errors.New("conn refused"))

	svc := NewWishlistService(store, props, listing.NewComposer(listing.NewResolver(store), store))

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrPropertyNotFound)

	_, err = svc.List(context.Background(), uuid.New(), listing.ListQuery{Page: 1})
	assert.Error(t, err)
	props.AssertExpectations(t)
}

func TestWishlistHandlers(t *testing.T) {
	user := uuid.New()
	p := plot(uuid.New(), models.PurposeRequired)
	store := newFakeStore(p)

	app := fiber.New()
	newService(store).SetupRoutes(app, func(c fiber.Ctx) error {
		c.Locals("userID", user)
		return c.Next()
	})

	do := func(method, target string) int {
		resp, err := app.Test(httptest.NewRequest(method, target, nil))
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, do(http.MethodPost, "/api/wishlist/"+p.ID.String()))
	assert.Equal(t, fiber.StatusOK, do(http.MethodPost, "/api/wishlist/"+p.ID.String()))
	assert.Len(t, store.entries, 1)

	assert.Equal(t, fiber.StatusOK, do(http.MethodGet, "/api/wishlist"))
	assert.Equal(t, fiber.StatusNotFound, do(http.MethodPost, "/api/wishlist/"+uuid.NewString()))
	assert.Equal(t, fiber.StatusBadRequest, do(http.MethodDelete, "/api/wishlist/abc"))

	assert.Equal(t, fiber.StatusOK, do(http.MethodDelete, "/api/wishlist/"+p.ID.String()))
	assert.Empty(t, store.entries)
}
