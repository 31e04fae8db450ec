package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/agrimart/agri-storefront/internal/api/http"
	"github.com/agrimart/agri-storefront/internal/api/http/handlers"
	"github.com/agrimart/agri-storefront/internal/auth"
	"github.com/agrimart/agri-storefront/internal/config"
	"github.com/agrimart/agri-storefront/internal/notify"
	"github.com/agrimart/agri-storefront/internal/observability"
	"github.com/agrimart/agri-storefront/internal/persistence"
	"github.com/agrimart/agri-storefront/internal/repository"
	"github.com/agrimart/agri-storefront/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	historyRepo := repository.NewOrderHistoryRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	sessionRepo := repository.NewSessionRepository(redis.Client)

	metrics := observability.NewMetrics()

	sessionService := service.NewSessionService(*cfg, service.SessionDependencies{
		AccountRepo: accountRepo,
		SessionRepo: sessionRepo,
	})
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:        orderRepo,
		HistoryRepo:      historyRepo,
		NotificationRepo: notificationRepo,
	})
	workflow := service.NewOrderWorkflow(*cfg, service.WorkflowDependencies{
		OrderRepo:        orderRepo,
		HistoryRepo:      historyRepo,
		NotificationRepo: notificationRepo,
		Dispatcher:       newDispatcher(cfg.Notification, logger),
		Metrics:          metrics,
		Logger:           logger,
	})
	catalogService := service.NewCatalogService(productRepo)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Sessions:       handlers.NewSessionHandler(sessionService),
		Orders:         handlers.NewOrdersHandler(orderService),
		AdminOrders:    handlers.NewAdminOrdersHandler(orderService, workflow),
		Products:       handlers.NewProductsHandler(catalogService),
		AuthMiddleware: auth.NewAuthMiddleware(sessionService),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("transition_policy", string(cfg.Workflow.Policy)))
		return app.Listen(cfg.App.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}

func newDispatcher(cfg config.NotificationConfig, logger *zap.Logger) notify.Dispatcher {
	if cfg.WebhookURL == "" {
		logger.Info("no notification webhook configured, logging status messages only")
		return notify.NewLogDispatcher(logger)
	}
	policy := notify.DefaultRetryPolicy()
	if cfg.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.BaseBackoffMs > 0 {
		policy.BaseDelay = time.Duration(cfg.BaseBackoffMs) * time.Millisecond
	}
	return notify.NewWebhookDispatcher(cfg.WebhookURL, cfg.RequestTimeout, policy, logger)
}
