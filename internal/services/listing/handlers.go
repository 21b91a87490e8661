package listing

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rajivgeraev/deals-api/internal/middleware"
	"github.com/rajivgeraev/deals-api/internal/models"
	"github.com/rajivgeraev/deals-api/internal/utils"
)

// CreateHouseDeal создает объявление о доме
func (s *ListingService) CreateHouseDeal(c fiber.Ctx) error {
	return s.createDeal(c, models.PropertyTypeHouse)
}

// CreatePlotDeal создает объявление об участке
func (s *ListingService) CreatePlotDeal(c fiber.Ctx) error {
	return s.createDeal(c, models.PropertyTypePlot)
}

// CreateCommercialDeal создает объявление о коммерческой недвижимости
func (s *ListingService) CreateCommercialDeal(c fiber.Ctx) error {
	return s.createDeal(c, models.PropertyTypeCommercial)
}

func (s *ListingService) createDeal(c fiber.Ctx, t models.PropertyType) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.Failure(c, fiber.StatusUnauthorized, utils.MessageUnauthorized)
	}

	ctx, cancel := middleware.RequestContext(c)
	defer cancel()

	view, err := s.CreateListing(ctx, userID, t, c.Body())
	if err != nil {
		return utils.RespondError(c, middleware.RequestLogger(c), err)
	}

	return utils.Success(c, fiber.StatusCreated, view, utils.MessageTicketCreated)
}

// GetDeal возвращает одно объявление по ID
func (s *ListingService) GetDeal(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.Failure(c, fiber.StatusUnauthorized, utils.MessageUnauthorized)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.Failure(c, fiber.StatusBadRequest, utils.MessageInvalidPropertyID)
	}

	ctx, cancel := middleware.RequestContext(c)
	defer cancel()

	view, err := s.GetListing(ctx, userID, id)
	if err != nil {
		return utils.RespondError(c, middleware.RequestLogger(c), err)
	}

	return utils.Success(c, fiber.StatusOK, view, utils.MessageSuccess)
}

// GetPublicDeals возвращает ленту чужих объявлений
func (s *ListingService) GetPublicDeals(c fiber.Ctx) error {
	return s.listDeals(c, s.Browse)
}

// GetInventory возвращает объявления текущего пользователя
func (s *ListingService) GetInventory(c fiber.Ctx) error {
	return s.listDeals(c, s.Inventory)
}

// FilterDeals фильтрует объявления по параметрам категории
func (s *ListingService) FilterDeals(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.Failure(c, fiber.StatusUnauthorized, utils.MessageUnauthorized)
	}

	params := c.Queries()

	ctx, cancel := middleware.RequestContext(c)
	defer cancel()

	page, err := s.Filter(ctx, userID, params["property_type"], params, utils.ParsePage(params["page"]))
	if err != nil {
		return utils.RespondError(c, middleware.RequestLogger(c), err)
	}

	return SendPage(c, page)
}

type listFunc func(ctx context.Context, userID uuid.UUID, q ListQuery) (*Page, error)

func (s *ListingService) listDeals(c fiber.Ctx, list listFunc) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.Failure(c, fiber.StatusUnauthorized, utils.MessageUnauthorized)
	}

	ctx, cancel := middleware.RequestContext(c)
	defer cancel()

	page, err := list(ctx, userID, QueryFromRequest(c))
	if err != nil {
		return utils.RespondError(c, middleware.RequestLogger(c), err)
	}

	return SendPage(c, page)
}

// QueryFromRequest читает общие параметры списка из строки запроса
func QueryFromRequest(c fiber.Ctx) ListQuery {
	return ListQuery{
		Purpose:      c.Query("purpose"),
		PropertyType: c.Query("property_type"),
		Title:        c.Query("title"),
		Page:         utils.ParsePage(c.Query("page")),
	}
}

// SendPage отправляет страницу объявлений в общем конверте
func SendPage(c fiber.Ctx, page *Page) error {
	message := utils.MessageSuccess
	if len(page.Data) == 0 {
		message = utils.MessageNotFound
	}
	return utils.Success(c, fiber.StatusOK, page, message)
}
