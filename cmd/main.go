package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/app"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/config"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/habits"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/handler"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/notify"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/registry"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/infra/storage"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/observability/logging"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/observability/metrics"
	"github.com/pirat-dev/habitloop-reminder-scheduling/internal/observability/middleware"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.Log)

	ctx := context.Background()

	kv, err := initStorage(cfg.Database)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		return 1
	}

	publisher, err := initPublisher(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize publisher", "error", err)
		return 1
	}

	delivery := notify.NewTimerDelivery(publisher)
	defer func() {
		if err := delivery.Close(); err != nil {
			slog.Warn("failed to close delivery", "error", err)
		}
	}()

	notificationRegistry := registry.NewNotificationRegistry(kv)
	habitStore := habits.NewStore(kv)

	useCase := app.NewReminderUseCase(notificationRegistry, delivery, habitStore)

	granted, err := delivery.RequestPermission(ctx)
	if err != nil {
		slog.Error("failed to request notification permission", "error", err)
		return 1
	}

	if granted {
		// Armed timers do not survive a restart; rebuild them from the
		// persisted habits before taking traffic.
		output, err := useCase.RescheduleAllReminders(ctx)
		if err != nil {
			slog.Error("failed to restore reminders", "error", err)
			return 1
		}

		slog.Info("reminders restored",
			"scheduled", output.Scheduled,
			"skipped", output.Skipped,
		)
	}

	reminderHandler := handler.NewReminderHandler(useCase)

	router, err := setupRouter(reminderHandler)
	if err != nil {
		slog.Error("failed to set up router", "error", err)
		return 1
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", cfg.Server.Address())
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", "error", err)
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}

		slog.Error("server exited with error", "error", err)
		return 1
	}
}

// initStorage opens the postgres-backed KV store, or falls back to in-memory
// storage when no DSN is configured. The in-memory fallback loses registry
// and habit state on restart.
func initStorage(cfg config.DatabaseConfig) (storage.KV, error) {
	if cfg.DSN == "" {
		slog.Warn("POSTGRES_DSN not set, using in-memory storage")
		return storage.NewMemoryKV(), nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logging.NewGormLogger(200 * time.Millisecond),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.AutoMigrate(&storage.KVModel{}); err != nil {
		return nil, err
	}

	return storage.NewKVStore(db), nil
}

func initPublisher(ctx context.Context, cfg *config.Config) (notify.Publisher, error) {
	if cfg.PubSub.NatsURL == "" {
		slog.Warn("NATS_URL not set, notification delivery disabled")
		return nil, nil
	}

	publisher, err := notify.NewNATSPublisherWithStream(ctx, notify.NATSPublisherConfig{
		URL: cfg.PubSub.NatsURL,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("NATS publisher initialized", "url", cfg.PubSub.NatsURL)
	return publisher, nil
}

func setupRouter(reminderHandler *handler.ReminderHandler) (*gin.Engine, error) {
	httpMetrics, err := metrics.NewHTTPMetrics("reminder-scheduling")
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.PanicRecoveryGin())
	router.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/ping"},
		Module:      logging.Module("reminder"),
		TracerName:  "reminder-scheduling",
		HTTPMetrics: httpMetrics,
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")
	reminderHandler.RegisterRoutes(v1)

	return router, nil
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level

	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	inner := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(logging.NewContextHandler(inner)))
}
