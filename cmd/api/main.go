package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/storefront-service/internal/api/http"
	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/cache"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/observability"
	"github.com/spec-kit/storefront-service/internal/persistence"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/seed"
	"github.com/spec-kit/storefront-service/internal/service"
	"github.com/spec-kit/storefront-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	productRepo := repository.NewProductRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	credentials := auth.NewCredentialPolicy(cfg.Auth)
	seeder := seed.NewSeeder(cfg.Seed, seed.Dependencies{
		ProductRepo: productRepo,
		AccountRepo: accountRepo,
		Credentials: credentials,
	}, logger)
	if err := seeder.Run(ctx); err != nil {
		logger.Fatal("failed to seed store", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	notifications := worker.NewNotificationWorker(events.NewInMemoryDispatcher(), 256, logger)
	service.NewNotificationService(notifications, logger).RegisterHandlers()
	notifications.Start()
	defer notifications.Stop()

	catalogCache := cache.NewCatalogCache(redis.Client, cfg.Catalog.CacheTTL())

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		AccountRepo: accountRepo,
		Credentials: credentials,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		ProductRepo: productRepo,
		Cache:       catalogCache,
		Logger:      logger,
		Metrics:     metrics,
	})
	productService := service.NewProductService(service.ProductDependencies{
		ProductRepo: productRepo,
		Cache:       catalogCache,
		Dispatcher:  notifications,
		Logger:      logger,
	})
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:  orderRepo,
		Confirmer:  service.NewConfirmationService(cfg.Confirmation, nil),
		Dispatcher: notifications,
		Logger:     logger,
		Metrics:    metrics,
	})
	statsService := service.NewStatsService(service.StatsDependencies{
		ProductRepo: productRepo,
		OrderRepo:   orderRepo,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:           handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:             handlers.NewAuthHandler(authService),
		Catalog:          handlers.NewCatalogHandler(catalogService),
		Products:         handlers.NewProductsHandler(productService),
		Orders:           handlers.NewOrdersHandler(orderService),
		Stats:            handlers.NewStatsHandler(statsService),
		AuthMiddleware:   auth.NewAuthMiddleware(authService.TokenManager()),
		EnforceAdminRole: authService.EnforcesAdminRole(),
		AuthRateLimit:    httptransport.RateLimit(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst),
		Metrics:          metrics.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
