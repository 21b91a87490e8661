package utils

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/deals-api/internal/logger"
	"github.com/rajivgeraev/deals-api/internal/models"
)

// Сообщения ответов API
const (
	MessageSuccess           = "Success."
	MessageTicketCreated     = "Ticket created successfully."
	MessageNotFound          = "Not found."
	MessageInvalidPropertyID = "Invalid property id."
	MessageUnauthorized      = "Authentication credentials were not provided."
	MessageInternalError     = "Something went wrong."
)

// Success отправляет успешный ответ в общем конверте
func Success(c fiber.Ctx, status int, payload interface{}, message string) error {
	if payload == nil {
		payload = fiber.Map{}
	}
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"payload": payload,
		"message": message,
	})
}

// Failure отправляет ответ с ошибкой в общем конверте
func Failure(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"payload": fiber.Map{},
		"message": message,
	})
}

// RespondError переводит ошибку сервиса в HTTP-ответ
func RespondError(c fiber.Ctx, log logger.Logger, err error) error {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return Failure(c, fiber.StatusBadRequest, ve.Message)
	case errors.Is(err, models.ErrPropertyNotFound):
		return Failure(c, fiber.StatusNotFound, MessageInvalidPropertyID)
	default:
		log.Error("request failed", err, nil)
		return Failure(c, fiber.StatusInternalServerError, MessageInternalError)
	}
}
