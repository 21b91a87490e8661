package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rajivgeraev/deals-api/internal/logger"
	"github.com/rajivgeraev/deals-api/internal/models"
	"github.com/rajivgeraev/deals-api/internal/utils"
)

// noFilter значение параметра, означающее отсутствие фильтра
const noFilter = "default"

// Page страница объявлений с метаданными пагинации
type Page struct {
	Data       []models.ListingView `json:"data"`
	Pagination utils.Pagination     `json:"pagination"`
}

// NewPage собирает страницу выдачи
func NewPage(views []models.ListingView, total, page, perPage int) *Page {
	return &Page{Data: views, Pagination: utils.NewPagination(total, page, perPage)}
}

// ListQuery параметры ленты, инвентаря и избранного
type ListQuery struct {
	Purpose      string
	PropertyType string
	Title        string
	Page         int
}

// PropertyQuery проверяет параметры и переводит их в запрос к хранилищу.
// Пустой purpose заменяется на defaultPurpose, если он задан.
func (q ListQuery) PropertyQuery(defaultPurpose models.Purpose, perPage int) (models.PropertyQuery, error) {
	var pq models.PropertyQuery

	purpose := strings.TrimSpace(q.Purpose)
	if purpose == "" || purpose == noFilter {
		pq.Purpose = defaultPurpose
	} else {
		pq.Purpose = models.Purpose(purpose)
		if !pq.Purpose.Valid() {
			return pq, models.NewValidationError("purpose: invalid value")
		}
	}

	if t := strings.TrimSpace(q.PropertyType); t != "" && t != noFilter {
		pq.PropertyType = models.PropertyType(t)
		if !pq.PropertyType.Valid() {
			return pq, models.ErrInvalidCategory
		}
	}

	if title := strings.TrimSpace(q.Title); title != noFilter {
		pq.TitleContains = title
	}

	pq.Limit = perPage
	pq.Offset = utils.Offset(q.Page, perPage)
	return pq, nil
}

// ListingService представляет сервис для работы с объявлениями
type ListingService struct {
	store     Store
	composer  *Composer
	validator *Validator
	listener  CreatedListener
	pageSize  int
}

// NewListingService создает новый экземпляр ListingService.
// listener может быть nil, тогда уведомления не рассылаются.
func NewListingService(store Store, wishlist WishlistLookup, validator *Validator, listener CreatedListener) *ListingService {
	return &ListingService{
		store:     store,
		composer:  NewComposer(NewResolver(store), wishlist),
		validator: validator,
		listener:  listener,
		pageSize:  utils.DefaultPageSize,
	}
}

// Composer возвращает сборщик представлений, общий для сервисов
func (s *ListingService) Composer() *Composer {
	return s.composer
}

// CreateListing проверяет тело запроса и атомарно сохраняет объявление категории t
func (s *ListingService) CreateListing(ctx context.Context, owner uuid.UUID, t models.PropertyType, body []byte) (*models.ListingView, error) {
	req, err := s.validator.decode(t, body)
	if err != nil {
		return nil, err
	}

	created := req.toListing(owner, t)
	if err := s.store.CreateListing(ctx, &created.Property, created.Extension); err != nil {
		return nil, fmt.Errorf("create %s listing: %w", t, err)
	}

	logger.FromContext(ctx).Info("listing created", logger.Fields{
		"property_id":   created.Property.ID,
		"property_type": created.Property.PropertyType,
		"purpose":       created.Property.Purpose,
	})

	if s.listener != nil {
		s.listener.ListingCreated(ctx, created.Property)
	}

	return &models.ListingView{Property: created.Property, Extension: created.Extension}, nil
}

// GetListing возвращает одно объявление
func (s *ListingService) GetListing(ctx context.Context, userID, id uuid.UUID) (*models.ListingView, error) {
	p, err := s.store.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	view, err := s.composer.Compose(ctx, userID, *p)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Browse возвращает чужие объявления, новые первыми
func (s *ListingService) Browse(ctx context.Context, userID uuid.UUID, q ListQuery) (*Page, error) {
	pq, err := q.PropertyQuery("", s.pageSize)
	if err != nil {
		return nil, err
	}
	pq.ExcludeOwnerID = &userID
	return s.list(ctx, userID, pq, q.Page)
}

// Inventory возвращает объявления самого пользователя
func (s *ListingService) Inventory(ctx context.Context, userID uuid.UUID, q ListQuery) (*Page, error) {
	pq, err := q.PropertyQuery(models.PurposeRequired, s.pageSize)
	if err != nil {
		return nil, err
	}
	pq.OwnerID = &userID
	return s.list(ctx, userID, pq, q.Page)
}

// Filter возвращает объявления категории, подходящие под параметры фильтра
func (s *ListingService) Filter(ctx context.Context, userID uuid.UUID, propertyType string, params map[string]string, page int) (*Page, error) {
	set, err := BuildFilter(propertyType, params)
	if err != nil {
		return nil, err
	}

	properties, total, err := s.store.FindByPredicates(ctx, set, s.pageSize, utils.Offset(page, s.pageSize))
	if err != nil {
		return nil, fmt.Errorf("filter listings: %w", err)
	}

	views, err := s.composer.ComposeMany(ctx, userID, properties)
	if err != nil {
		return nil, err
	}
	return NewPage(views, total, page, s.pageSize), nil
}

func (s *ListingService) list(ctx context.Context, userID uuid.UUID, pq models.PropertyQuery, page int) (*Page, error) {
	properties, total, err := s.store.FindProperties(ctx, pq)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	views, err := s.composer.ComposeMany(ctx, userID, properties)
	if err != nil {
		return nil, err
	}
	return NewPage(views, total, page, s.pageSize), nil
}
