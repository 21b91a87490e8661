package wishlist

import (
	"github.com/gofiber/fiber/v3"
)

// SetupRoutes настраивает маршруты для API избранного
func (s *WishlistService) SetupRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	// Группа для API избранного
	api := app.Group("/api/wishlist")

	// Защищенные маршруты (требуют авторизации)
	api.Use(authMiddleware)

	// Маршрут для получения списка избранных объявлений
	api.Get("/", s.GetWishlist)

	// Добавление и удаление по ID объявления
	api.Post("/:id", s.AddToWishlist)
	api.Delete("/:id", s.RemoveFromWishlist)
}
