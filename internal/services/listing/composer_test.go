package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rajivgeraev/deals-api/internal/models"
)

type mockExtensionStore struct {
	mock.Mock
}

func (m *mockExtensionStore) GetExtensions(ctx context.Context, t models.PropertyType, ids []uuid.UUID) (map[uuid.UUID]models.Extension, error) {
	args := m.Called(ctx, t, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]models.Extension), args.Error(1)
}

type mockWishlist struct {
	mock.Mock
}

func (m *mockWishlist) WishlistedIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, userID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

func property(t models.PropertyType) models.Property {
	return models.Property{ID: uuid.New(), PropertyType: t, Title: string(t)}
}

func TestResolver_KeyedLookup(t *testing.T) {
	house := property(models.PropertyTypeHouse)
	store := new(mockExtensionStore)
	store.On("GetExtensions", mock.Anything, models.PropertyTypeHouse, []uuid.UUID{house.ID}).
		Return(map[uuid.UUID]models.Extension{house.ID: models.HouseExtension{House: "A1"}}, nil).Once()

	ext, err := NewResolver(store).Resolve(context.Background(), house)
	require.NoError(t, err)
	assert.Equal(t, models.HouseExtension{House: "A1"}, ext)

	// другие таблицы не опрашиваются
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "GetExtensions", mock.Anything, models.PropertyTypePlot, mock.Anything)
}

func TestResolver_MissingExtensionIsNotFound(t *testing.T) {
	plot := property(models.PropertyTypePlot)
	store := new(mockExtensionStore)
	store.On("GetExtensions", mock.Anything, models.PropertyTypePlot, []uuid.UUID{plot.ID}).
		Return(map[uuid.UUID]models.Extension{}, nil)

	_, err := NewResolver(store).Resolve(context.Background(), plot)
	assert.ErrorIs(t, err, models.ErrExtensionNotFound)
}

func TestResolver_DropsMismatchedExtension(t *testing.T) {
	plot := property(models.PropertyTypePlot)
	store := new(mockExtensionStore)
	store.On("GetExtensions", mock.Anything, models.PropertyTypePlot, []uuid.UUID{plot.ID}).
		Return(map[uuid.UUID]models.Extension{plot.ID: models.HouseExtension{House: "A1"}}, nil)

	_, err := NewResolver(store).Resolve(context.Background(), plot)
	assert.ErrorIs(t, err, models.ErrExtensionNotFound)
}

func TestResolver_StoreFailure(t *testing.T) {
	house := property(models.PropertyTypeHouse)
	store := new(mockExtensionStore)
	store.On("GetExtensions", mock.Anything, models.PropertyTypeHouse, mock.Anything).
		Return(nil, errors.New("connection reset"))

	_, err := NewResolver(store).Resolve(context.Background(), house)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrExtensionNotFound)
}

func TestResolver_ResolveManyGroupsByType(t *testing.T) {
	h1 := property(models.PropertyTypeHouse)
	h2 := property(models.PropertyTypeHouse)
	c1 := property(models.PropertyTypeCommercial)
	unknown := property("apartment")

	store := new(mockExtensionStore)
	store.On("GetExtensions", mock.Anything, models.PropertyTypeHouse, []uuid.UUID{h1.ID, h2.ID}).
		Return(map[uuid.UUID]models.Extension{h1.ID: models.HouseExtension{House: "1"}, h2.ID: models.HouseExtension{House: "2"}}, nil).Once()
	store.On("GetExtensions", mock.Anything, models.PropertyTypeCommercial, []uuid.UUID{c1.ID}).
		Return(map[uuid.UUID]models.Extension{c1.ID: models.CommercialExtension{SeriesFrom: "A"}}, nil).Once()

	exts, err := NewResolver(store).ResolveMany(context.Background(), []models.Property{h1, c1, unknown, h2})
	require.NoError(t, err)

	assert.Len(t, exts, 3)
	assert.Equal(t, models.CommercialExtension{SeriesFrom: "A"}, exts[c1.ID])
	assert.NotContains(t, exts, unknown.ID)
	store.AssertExpectations(t)
}

func TestComposer_ComposeMany(t *testing.T) {
	userID := uuid.New()
	house := property(models.PropertyTypeHouse)
	plot := property(models.PropertyTypePlot)

	store := new(mockExtensionStore)
	store.On("GetExtensions", mock.Anything, models.PropertyTypeHouse, []uuid.UUID{house.ID}).
		Return(map[uuid.UUID]models.Extension{house.ID: models.HouseExtension{House: "A1"}}, nil)
	store.On("GetExtensions", mock.Anything, models.PropertyTypePlot, []uuid.UUID{plot.ID}).
		Return(map[uuid.UUID]models.Extension{}, nil)

	wishlist := new(mockWishlist)
	wishlist.On("WishlistedIDs", mock.Anything, userID, []uuid.UUID{house.ID, plot.ID}).
		Return(map[uuid.UUID]bool{plot.ID: true}, nil).Once()

	views, err := NewComposer(NewResolver(store), wishlist).ComposeMany(context.Background(), userID, []models.Property{house, plot})
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, house.ID, views[0].ID)
	assert.Equal(t, models.HouseExtension{House: "A1"}, views[0].Extension)
	assert.False(t, views[0].IsWishlisted)

	assert.Equal(t, plot.ID, views[1].ID)
	assert.Nil(t, views[1].Extension)
	assert.True(t, views[1].IsWishlisted)

	wishlist.AssertExpectations(t)
}

func TestComposer_EmptyBatch(t *testing.T) {
	store := new(mockExtensionStore)
	wishlist := new(mockWishlist)

	views, err := NewComposer(NewResolver(store), wishlist).ComposeMany(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, views)
	wishlist.AssertNotCalled(t, "WishlistedIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestComposer_WishlistFailure(t *testing.T) {
	house := property(models.PropertyTypeHouse)

	store := new(mockExtensionStore)
	store.On("GetExtensions", mock.Anything, models.PropertyTypeHouse, mock.Anything).
		Return(map[uuid.UUID]models.Extension{}, nil)
	wishlist := new(mockWishlist)
	wishlist.On("WishlistedIDs", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := NewComposer(NewResolver(store), wishlist).Compose(context.Background(), uuid.New(), house)
	assert.Error(t, err)
}
