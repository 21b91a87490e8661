package listing

import (
	"github.com/gofiber/fiber/v3"
)

// SetupRoutes настраивает маршруты для API объявлений
func (s *ListingService) SetupRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	// Группа для API объявлений
	api := app.Group("/api/deals")

	// Защищенные маршруты (требуют авторизации)
	api.Use(authMiddleware)

	// Создание объявлений по категориям
	api.Post("/house", s.CreateHouseDeal)
	api.Post("/plot", s.CreatePlotDeal)
	api.Post("/commercial", s.CreateCommercialDeal)

	// Лента, фильтр и инвентарь
	api.Get("/public", s.GetPublicDeals)
	api.Get("/filter", s.FilterDeals)
	api.Get("/inventory", s.GetInventory)

	// Маршрут для получения одного объявления по ID
	api.Get("/:id", s.GetDeal)
}
