package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/chainledger/chainledger/internal/adapter/http/handler"
	"github.com/chainledger/chainledger/internal/adapter/http/middleware"
	"github.com/chainledger/chainledger/internal/infrastructure/auth"
	"github.com/chainledger/chainledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LedgerHandler    *handler.LedgerHandler
	EntryHandler     *handler.EntryHandler
	VerifyHandler    *handler.VerifyHandler
	AuditHandler     *handler.AuditHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	JWTManager       *auth.JWTManager
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Ledger writes
		r.Route("/ledger/transactions", func(r chi.Router) {
			r.Post("/", cfg.LedgerHandler.Create)
			r.Post("/{id}/reverse", cfg.LedgerHandler.Reverse)
			r.Get("/{id}/entries", cfg.LedgerHandler.GetEntries)
		})

		// Reads
		r.Get("/entries", cfg.EntryHandler.List)
		r.Get("/accounts/{id}/balance", cfg.EntryHandler.GetBalance)
		r.Get("/verify", cfg.VerifyHandler.Verify)
		r.Get("/audit", cfg.AuditHandler.List)
	})

	return r
}
