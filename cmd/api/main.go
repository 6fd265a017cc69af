package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/samadhi-app/record-service/internal/api/http"
	"github.com/samadhi-app/record-service/internal/api/http/handlers"
	"github.com/samadhi-app/record-service/internal/auth"
	"github.com/samadhi-app/record-service/internal/config"
	"github.com/samadhi-app/record-service/internal/events"
	"github.com/samadhi-app/record-service/internal/observability"
	"github.com/samadhi-app/record-service/internal/persistence"
	"github.com/samadhi-app/record-service/internal/repository"
	"github.com/samadhi-app/record-service/internal/service"
	"github.com/samadhi-app/record-service/internal/storage"
	"github.com/samadhi-app/record-service/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	recordRepo := repository.NewRecordRepository(pool)

	transport, err := auth.NewTransport(cfg.Auth.TokenTransport, cfg.App.IsProd())
	if err != nil {
		logger.Fatal("failed to build token transport", zap.Error(err))
	}
	limiter := auth.NewLoginLimiter(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginCooldown())

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Files:      storage.NewProfileStore(cfg.S3),
		Limiter:    limiter,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	recordService := service.NewRecordService(recordRepo, userRepo, dispatcher, logger)
	sessionMiddleware := auth.NewSessionMiddleware(authService.TokenManager(), transport, userRepo)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(authService, transport),
		Records: handlers.NewRecordsHandler(recordService),
		Session: sessionMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
