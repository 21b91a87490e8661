package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rajivgeraev/deals-api/internal/utils"
)

// UserLookup проверяет существование пользователя
type UserLookup interface {
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}

// AuthMiddleware создаёт middleware для проверки JWT
func AuthMiddleware(jwtService *utils.JWTService, users UserLookup) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.Failure(c, fiber.StatusUnauthorized, utils.MessageUnauthorized)
		}

		// Проверяем Bearer токен
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return utils.Failure(c, fiber.StatusUnauthorized, "Invalid authorization header format")
		}

		userID, err := jwtService.ExtractUserID(parts[1])
		if err != nil {
			return utils.Failure(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		// Проверяем, что userID является валидным UUID
		userUUID, err := uuid.Parse(userID)
		if err != nil {
			return utils.Failure(c, fiber.StatusUnauthorized, "Invalid user ID")
		}

		ctx, cancel := RequestContext(c)
		defer cancel()

		exists, err := users.Exists(ctx, userUUID)
		if err != nil {
			RequestLogger(c).Error("user lookup failed", err, nil)
			return utils.Failure(c, fiber.StatusInternalServerError, utils.MessageInternalError)
		}
		if !exists {
			return utils.Failure(c, fiber.StatusUnauthorized, "User not found")
		}

		// Добавляем userID в контекст
		c.Locals("userID", userUUID)

		return c.Next()
	}
}

// UserID возвращает идентификатор пользователя, сохранённый AuthMiddleware
func UserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals("userID").(uuid.UUID)
	return id, ok
}
