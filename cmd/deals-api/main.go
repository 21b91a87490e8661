package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"

	"github.com/rajivgeraev/deals-api/internal/config"
	"github.com/rajivgeraev/deals-api/internal/logger"
	"github.com/rajivgeraev/deals-api/internal/utils"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "deals-api",
		Short:         "Deals API: объявления о недвижимости",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newTokenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

// newLogger собирает логгер приложения: slog в stdout и, если включен, fluentd
func newLogger(cfg *config.Config) (logger.Logger, func(), error) {
	base := logger.NewSlogAdapter(logger.SlogConfig{
		Level:    logger.ParseLevel(cfg.LogConfig.Level),
		IsJSON:   cfg.LogConfig.JSON,
		UseColor: cfg.IsDevelopment(),
	}).WithFields(logger.Fields{"app": cfg.AppName, "env": cfg.AppEnv})

	if !cfg.FluentConfig.Enabled {
		return base, func() {}, nil
	}

	client, err := logger.NewFluentClient(cfg.FluentConfig.Host, cfg.FluentConfig.Port, cfg.AppName)
	if err != nil {
		return nil, nil, fmt.Errorf("fluentd: %w", err)
	}
	fluentLogger, err := logger.NewFluentAdapter(client, logger.ParseLevel(cfg.FluentConfig.Level))
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("fluentd: %w", err)
	}

	closeFn := func() {
		if err := fluentLogger.Close(); err != nil {
			base.Warn("failed to close fluentd client", logger.Fields{"error": err.Error()})
		}
	}
	return logger.NewMultiLogger(base, fluentLogger), closeFn, nil
}

// errorHandler обрабатывает ошибки Fiber в общем конверте ответа
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := utils.MessageInternalError

	// Проверяем, является ли ошибка из Fiber
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return utils.Failure(c, code, message)
}
