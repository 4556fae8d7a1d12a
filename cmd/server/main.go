package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/babcock-cleaning/internal/app"
	"github.com/iliyamo/babcock-cleaning/internal/config"
	"github.com/iliyamo/babcock-cleaning/internal/database"
	"github.com/iliyamo/babcock-cleaning/internal/handler"
	"github.com/iliyamo/babcock-cleaning/internal/intake"
	"github.com/iliyamo/babcock-cleaning/internal/monitoring"
	"github.com/iliyamo/babcock-cleaning/internal/queue"
	"github.com/iliyamo/babcock-cleaning/internal/repository"
	"github.com/iliyamo/babcock-cleaning/internal/router"
	"github.com/iliyamo/babcock-cleaning/internal/service"
)

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	flush, err := monitoring.InitSentry(cfg.SentryDSN, cfg.Env, cfg.Version)
	if err != nil {
		logger.Warn("sentry disabled", zap.Error(err))
	}
	defer flush()
	monitoring.Init()

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Fatal("failed to open database", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DB.AutoMigrate {
		version, err := database.Migrate(ctx, db, cfg.DB.Driver)
		if err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		logger.Info("database migrated", zap.Int64("version", version))
	}

	reporter := monitoring.SentryReporter{}
	svc := intake.NewService(repository.NewBookingRequestRepo(db), nil)
	booking := handler.NewBookingHandler(cfg, svc, logger)
	booking.Reporter = reporter
	if cfg.Events.Enabled {
		booking.Events = service.NewPublisher(cfg.RabbitMQURL, logger)
	}

	if cfg.Events.ConsumerEnabled {
		go func() {
			err := queue.StartBookingConsumer(ctx, cfg.RabbitMQURL, cfg.Events.LogDir, logger)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("booking consumer stopped", zap.Error(err))
			}
		}()
	}

	e := router.New(booking, db, router.Options{
		Log:       logger,
		Reporter:  reporter,
		BodyLimit: cfg.BodyLimit,
	})

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
