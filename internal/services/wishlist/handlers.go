package wishlist

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rajivgeraev/deals-api/internal/middleware"
	"github.com/rajivgeraev/deals-api/internal/services/listing"
	"github.com/rajivgeraev/deals-api/internal/utils"
)

// AddToWishlist добавляет объявление в избранное
func (s *WishlistService) AddToWishlist(c fiber.Ctx) error {
	userID, propertyID, ok := s.parseRequest(c)
	if !ok {
		return nil
	}

	ctx, cancel := middleware.RequestContext(c)
	defer cancel()

	entry, err := s.Add(ctx, userID, propertyID)
	if err != nil {
		return utils.RespondError(c, middleware.RequestLogger(c), err)
	}

	return utils.Success(c, fiber.StatusOK, entry, utils.MessageSuccess)
}

// RemoveFromWishlist удаляет объявление из избранного
func (s *WishlistService) RemoveFromWishlist(c fiber.Ctx) error {
	userID, propertyID, ok := s.parseRequest(c)
	if !ok {
		return nil
	}

	ctx, cancel := middleware.RequestContext(c)
	defer cancel()

	if err := s.Remove(ctx, userID, propertyID); err != nil {
		return utils.RespondError(c, middleware.RequestLogger(c), err)
	}

	return utils.Success(c, fiber.StatusOK, nil, utils.MessageSuccess)
}

// GetWishlist возвращает избранные объявления текущего пользователя
func (s *WishlistService) GetWishlist(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.Failure(c, fiber.StatusUnauthorized, utils.MessageUnauthorized)
	}

	ctx, cancel := middleware.RequestContext(c)
	defer cancel()

	page, err := s.List(ctx, userID, listing.QueryFromRequest(c))
	if err != nil {
		return utils.RespondError(c, middleware.RequestLogger(c), err)
	}

	return listing.SendPage(c, page)
}

// parseRequest достает пользователя и ID объявления; при ошибке ответ уже отправлен
func (s *WishlistService) parseRequest(c fiber.Ctx) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		_ = utils.Failure(c, fiber.StatusUnauthorized, utils.MessageUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = utils.Failure(c, fiber.StatusBadRequest, utils.MessageInvalidPropertyID)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, propertyID, true
}
