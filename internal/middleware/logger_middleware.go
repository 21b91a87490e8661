package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/rajivgeraev/deals-api/internal/logger"
)

// RequestTimeout ограничивает время обработки запроса к хранилищу
const RequestTimeout = 5 * time.Second

const loggerLocalKey = "logger"

// LoggerMiddleware создает контекстный логгер для каждого запроса
func LoggerMiddleware(base logger.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		// trace_id приходит от gateway, иначе генерируем свой
		traceID := c.Get("X-Trace-ID")
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}
		c.Set("X-Trace-ID", traceID)

		reqLogger := base.WithFields(logger.Fields{"trace_id": traceID})
		c.Locals(loggerLocalKey, reqLogger)

		httpLogger := reqLogger.WithFields(logger.Fields{
			"http_method": c.Method(),
			"http_path":   c.Path(),
			"remote_addr": c.IP(),
		})

		start := time.Now()
		httpLogger.Debug("Request started", nil)

		err := c.Next()

		httpLogger.Info("Request finished", logger.Fields{
			"status_code": c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return err
	}
}

// RequestLogger возвращает логгер текущего запроса
func RequestLogger(c fiber.Ctx) logger.Logger {
	if l, ok := c.Locals(loggerLocalKey).(logger.Logger); ok {
		return l
	}
	return logger.Nop()
}

// RequestContext возвращает контекст с таймаутом и логгером запроса
func RequestContext(c fiber.Ctx) (context.Context, context.CancelFunc) {
	ctx := logger.ContextWithLogger(context.Background(), RequestLogger(c))
	return context.WithTimeout(ctx, RequestTimeout)
}
