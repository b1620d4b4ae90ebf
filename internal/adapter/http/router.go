package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moneybook-app/moneybook/internal/adapter/http/handler"
	"github.com/moneybook-app/moneybook/internal/adapter/http/middleware"
	"github.com/moneybook-app/moneybook/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	SettlementHandler *handler.SettlementHandler
	TemplateHandler   *handler.TemplateHandler
	EntryHandler      *handler.EntryHandler
	AssetHandler      *handler.AssetHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Settlements
		r.Route("/settlements/{ledgerType}", func(r chi.Router) {
			r.Get("/status", cfg.SettlementHandler.Status)
			r.Post("/settle", cfg.SettlementHandler.Settle)
			r.Post("/rollback", cfg.SettlementHandler.Rollback)
		})

		// Recurring templates
		r.Route("/templates", func(r chi.Router) {
			r.Post("/", cfg.TemplateHandler.Create)
			r.Get("/", cfg.TemplateHandler.List)
			r.Get("/{id}", cfg.TemplateHandler.Get)
			r.Put("/{id}", cfg.TemplateHandler.Update)
			r.Delete("/{id}", cfg.TemplateHandler.Delete)
		})

		// Ledger entries
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Create)
			r.Get("/", cfg.EntryHandler.ListByMonth)
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.Delete("/{id}", cfg.EntryHandler.Delete)
		})

		// Assets
		r.Route("/assets", func(r chi.Router) {
			r.Get("/", cfg.AssetHandler.List)
			r.Get("/{id}", cfg.AssetHandler.Get)
		})
	})

	return r
}
