package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/mileagehawk/mileagehawk-data/internal/api/handler"
	"github.com/mileagehawk/mileagehawk-data/internal/config"
	"github.com/mileagehawk/mileagehawk-data/internal/ratelimit"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(h *handler.Handler, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Authorization", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag", "X-RateLimit-Remaining"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	var limiter *ratelimit.Limiter
	if cfg.RateLimitEnabled {
		limiter = ratelimit.NewLimiter()
		r.Use(RateLimitMiddleware(limiter, "api", cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/airlines", h.GetAirlines)
		r.Get("/score", h.GetDealScore)
	})

	// Cron triggers, guarded by the shared secret. The scheduler calls each
	// job once a day; anything past a handful per hour is a misbehaving
	// caller.
	r.Route("/api/cron", func(r chi.Router) {
		if limiter != nil {
			r.Use(RateLimitMiddleware(limiter, "cron", 5, time.Hour))
		}
		r.Use(CronAuthMiddleware(cfg.CronSecret))
		r.Post("/scrape-prices", h.CronScrapePrices)
		r.Post("/aggregate-prices", h.CronAggregatePrices)
		r.Post("/check-alerts", h.CronCheckAlerts)
	})

	return r
}
