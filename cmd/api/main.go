package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/message-board/internal/api/http"
	"github.com/spec-kit/message-board/internal/api/http/handlers"
	"github.com/spec-kit/message-board/internal/auth"
	"github.com/spec-kit/message-board/internal/config"
	"github.com/spec-kit/message-board/internal/events"
	"github.com/spec-kit/message-board/internal/observability"
	"github.com/spec-kit/message-board/internal/persistence"
	"github.com/spec-kit/message-board/internal/repository"
	"github.com/spec-kit/message-board/internal/seed"
	"github.com/spec-kit/message-board/internal/service"
	"github.com/spec-kit/message-board/internal/worker"
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

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = generateSecret()
		logger.Warn("AUTH_JWT_SECRET not set; generated a random secret, tokens will not survive restarts")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.PoolHandle() != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var userRepo repository.UserRepository
	var messageRepo repository.MessageRepository
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewUserRepository(pool)
		messageRepo = repository.NewMessageRepository(pool)
	} else {
		userRepo = repository.NewMemoryUserRepository()
		messageRepo = repository.NewMemoryMessageRepository()
	}

	if err := seed.EnsureAccounts(ctx, userRepo, cfg.Seed, cfg.Auth.BcryptCost, logger); err != nil {
		logger.Fatal("failed to seed accounts", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	messageService := service.NewMessageService(messageRepo, redis, cfg.Redis.CacheTTL, dispatcher, logger)
	authMiddleware := auth.NewMiddleware(authService.TokenManager())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Messages:       handlers.NewMessagesHandler(messageService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func generateSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("failed to generate signing secret: %v", err)
	}
	return hex.EncodeToString(buf)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
