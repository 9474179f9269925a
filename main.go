package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"feedbackboard/internal/config"
	"feedbackboard/internal/database"
	"feedbackboard/internal/handlers"
	"feedbackboard/internal/logger"
	"feedbackboard/internal/repositories"
	"feedbackboard/internal/services"
	"feedbackboard/internal/sessions"
	"feedbackboard/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	app, cleanup, err := NewApp(cfg)
	if err != nil {
		logger.Log.Fatalw("failed to build app", "error", err)
	}
	defer cleanup()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Log.Infow("starting server", "addr", cfg.AppPort, "db", cfg.DBDriver, "sessions", cfg.SessionBackend)
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Log.Fatalw("server failed to start", "error", err)
		}
	}()

	<-quit
	logger.Log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Log.Errorw("error during shutdown", "error", err)
	}
	logger.Log.Info("server gracefully stopped")
}

// NewApp wires storage, sessions, events and routes for cfg. The returned
// cleanup releases every connection that was opened.
func NewApp(cfg *config.Config) (*fiber.App, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Log.Warnw("cleanup failed", "error", err)
			}
		}
	}
	fail := func(err error) (*fiber.App, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	var (
		userRepo     repositories.UserRepository
		feedbackRepo repositories.FeedbackRepository
	)
	if cfg.DBDriver == "memory" {
		userRepo, feedbackRepo = repositories.NewMemoryRepositories()
	} else {
		db, err := database.Open(database.Options{
			Driver:   cfg.DBDriver,
			DSN:      cfg.DatabaseDSN,
			LogLevel: cfg.DBLogLevel,
		})
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() error { return database.Close(db) })
		userRepo = repositories.NewGORMUserRepository(db)
		feedbackRepo = repositories.NewGORMFeedbackRepository(db)
	}

	var sessionStorage, csrfStorage fiber.Storage
	if cfg.RedisURL != "" {
		client, err := sessions.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, client.Close)
		sessionStorage = sessions.NewRedisStorage(client, "feedbackboard:session:")
		csrfStorage = sessions.NewRedisStorage(client, "feedbackboard:csrf:")
	}

	var store sessions.Store
	switch cfg.SessionBackend {
	case "token":
		store = sessions.NewTokenStore(cfg.SessionSecret, cfg.SessionTTL)
	default:
		store = sessions.NewServerStore(sessionStorage, cfg.SessionTTL)
	}

	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return fail(err)
		}
		closers = append(closers, mq.Close)
		if err := mq.ConsumeEvents(rabbitmq.AuditEvent); err != nil {
			return fail(fmt.Errorf("failed to start audit consumer: %w", err))
		}
		events = mq
	}

	deps := handlers.Deps{
		Auth:        services.NewAuthService(userRepo, events, cfg.BcryptCost),
		Users:       services.NewUserService(userRepo, feedbackRepo, events),
		Feedback:    services.NewFeedbackService(feedbackRepo, events),
		Sessions:    store,
		CSRFStorage: csrfStorage,
	}

	app := fiber.New(handlers.Config())
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	prom := fiberprometheus.NewWithRegistry(prometheus.NewRegistry(), "feedbackboard", "http", "", nil)
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"db":       cfg.DBDriver,
			"sessions": cfg.SessionBackend,
			"events":   events != nil,
		})
	})

	handlers.SetupRoutes(app, deps)
	return app, cleanup, nil
}
