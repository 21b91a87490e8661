package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/rajivgeraev/deals-api/internal/config"
	"github.com/rajivgeraev/deals-api/internal/db"
	"github.com/rajivgeraev/deals-api/internal/logger"
	natspub "github.com/rajivgeraev/deals-api/internal/messaging/nats"
	"github.com/rajivgeraev/deals-api/internal/middleware"
	"github.com/rajivgeraev/deals-api/internal/services/listing"
	"github.com/rajivgeraev/deals-api/internal/services/notification"
	"github.com/rajivgeraev/deals-api/internal/services/wishlist"
	"github.com/rajivgeraev/deals-api/internal/utils"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем базу данных
	pool, err := db.InitDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	listings := db.NewListingRepository(pool)
	wishlists := db.NewWishlistRepository(pool)
	users := db.NewUserRepository(pool)

	validator, err := listing.NewValidator()
	if err != nil {
		return fmt.Errorf("init validator: %w", err)
	}

	// Уведомления включаются только при заданном NATS_URL
	var (
		listener   listing.CreatedListener
		dispatcher *notification.Dispatcher
	)
	if cfg.NATSConfig.URL != "" {
		publisher, err := natspub.NewPublisher(cfg.NATSConfig, cfg.AppName, log)
		if err != nil {
			return err
		}
		defer publisher.Close()

		dispatcher = notification.NewDispatcher(listings, users, publisher, cfg.NATSConfig.PushSubject, cfg.NotifyTimeout, log)
		listener = dispatcher
		log.Info("✅ Уведомления через NATS включены", logger.Fields{"subject": cfg.NATSConfig.PushSubject})
	} else {
		log.Warn("NATS_URL не задан, уведомления отключены", nil)
	}

	// Создаём экземпляр Fiber
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: errorHandler,
	})

	// Добавляем middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Trace-ID"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowCredentials: false,
	}))
	app.Use(middleware.LoggerMiddleware(log))

	app.Get("/health", func(c fiber.Ctx) error {
		return utils.Success(c, fiber.StatusOK, nil, utils.MessageSuccess)
	})

	// Настраиваем middleware для аутентификации
	authMiddleware := middleware.AuthMiddleware(utils.NewJWTService(cfg.JWTSecret), users)

	// Регистрируем маршруты
	listingService := listing.NewListingService(listings, wishlists, validator, listener)
	listingService.SetupRoutes(app, authMiddleware)

	wishlistService := wishlist.NewWishlistService(wishlists, listings, listingService.Composer())
	wishlistService.SetupRoutes(app, authMiddleware)

	listenErr := make(chan error, 1)
	go func() {
		log.Info("✅ Deals API запущен", logger.Fields{"port": cfg.Port})
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("Остановка сервера", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", err, nil)
	}
	if dispatcher != nil {
		dispatcher.Wait()
	}
	return nil
}
