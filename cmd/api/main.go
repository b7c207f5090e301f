// Command api is the MileageHawk Data API server.
//
// Usage:
//
//	mileagehawk-api
//	API_PORT=8080 mileagehawk-api

// @title MileageHawk Data API
// @version 1.0.0
// @description Award-flight price tracking API: reference data, deal scoring, and cron-triggered ingestion, aggregation and alert pipelines.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name MileageHawk
// @license.name MIT
// @securityDefinitions.apikey CronAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/mileagehawk/mileagehawk-data/docs" // swagger docs
	"github.com/mileagehawk/mileagehawk-data/internal/aggregate"
	"github.com/mileagehawk/mileagehawk-data/internal/alerts"
	"github.com/mileagehawk/mileagehawk-data/internal/api"
	"github.com/mileagehawk/mileagehawk-data/internal/api/handler"
	"github.com/mileagehawk/mileagehawk-data/internal/cache"
	"github.com/mileagehawk/mileagehawk-data/internal/config"
	"github.com/mileagehawk/mileagehawk-data/internal/db"
	"github.com/mileagehawk/mileagehawk-data/internal/notify"
	"github.com/mileagehawk/mileagehawk-data/internal/provider/seatsaero"
	"github.com/mileagehawk/mileagehawk-data/internal/scrape"
	"github.com/mileagehawk/mileagehawk-data/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	st := store.New(pool)
	pipelines := buildPipelines(cfg, st, logger)

	h := handler.New(pool, st, appCache, cfg, logger, pipelines)
	router := api.NewRouter(h, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute, // cron runs are synchronous
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting MileageHawk Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

// buildPipelines wires the three cron-triggered stages against the shared
// store.
func buildPipelines(cfg *config.Config, st *store.Store, logger *slog.Logger) handler.Pipelines {
	client := seatsaero.NewClient(seatsaero.BaseURL, cfg.SeatsAeroAPIKey, cfg.SeatsAeroRequestsMin)
	runner := &scrape.Runner{Client: client, Store: st, Logger: logger}

	dispatcher := &notify.Dispatcher{
		Email:  emailOrNil(notify.NewResendSender(cfg.ResendAPIKey, cfg.ResendFromEmail, cfg.AppURL)),
		SMS:    smsOrNil(notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)),
		Quiet:  &notify.QuietHours{Logger: logger},
		Logger: logger,
	}
	evaluator := &alerts.Evaluator{Store: st, Notifier: dispatcher, Logger: logger}

	return handler.Pipelines{
		Scrape: runner.Run,
		Aggregate: func(ctx context.Context) (aggregate.Result, error) {
			return aggregate.Run(ctx, st, logger)
		},
		Alerts: evaluator.Run,
	}
}

// emailOrNil keeps a typed-nil *ResendSender from sneaking into the
// EmailSender interface.
func emailOrNil(s *notify.ResendSender) notify.EmailSender {
	if s == nil {
		return nil
	}
	return s
}

func smsOrNil(s *notify.TwilioSender) notify.SMSSender {
	if s == nil {
		return nil
	}
	return s
}
