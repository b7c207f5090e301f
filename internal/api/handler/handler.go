// Package handler provides HTTP handlers for all API endpoints. Read
// endpoints serve reference data and deal scoring; the cron endpoints
// trigger the three pipeline stages.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mileagehawk/mileagehawk-data/internal/aggregate"
	"github.com/mileagehawk/mileagehawk-data/internal/alerts"
	"github.com/mileagehawk/mileagehawk-data/internal/api/respond"
	"github.com/mileagehawk/mileagehawk-data/internal/cache"
	"github.com/mileagehawk/mileagehawk-data/internal/config"
	"github.com/mileagehawk/mileagehawk-data/internal/db"
	"github.com/mileagehawk/mileagehawk-data/internal/model"
	"github.com/mileagehawk/mileagehawk-data/internal/scrape"
)

// Store is the read surface the handlers need beyond the pipelines.
type Store interface {
	AllAirlines(ctx context.Context) ([]model.Airline, error)
	ThirtyDayAverage(ctx context.Context, routeID, airlineID string, cabin model.CabinClass) (*int, error)
}

// Pipelines bundles the three cron-triggered stages.
type Pipelines struct {
	Scrape    func(ctx context.Context) (scrape.Result, error)
	Aggregate func(ctx context.Context) (aggregate.Result, error)
	Alerts    func(ctx context.Context) (*alerts.Result, error)
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool      *db.Pool
	store     Store
	cache     *cache.Cache
	cfg       *config.Config
	logger    *slog.Logger
	pipelines Pipelines
}

// New creates a Handler with shared dependencies.
func New(pool *db.Pool, store Store, c *cache.Cache, cfg *config.Config, logger *slog.Logger, pipelines Pipelines) *Handler {
	return &Handler{
		pool:      pool,
		store:     store,
		cache:     c,
		cfg:       cfg,
		logger:    logger,
		pipelines: pipelines,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "MileageHawk Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
