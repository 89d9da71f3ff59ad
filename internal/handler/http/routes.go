package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/go-api-starter/internal/apperr"
)

// Init assembles the router. Middleware order matters: RealIP first so the
// rate limiter keys on the true client IP, correlation before logging so
// every line carries the ID, and the rate limiter last so rejected requests
// are still logged and counted.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	if h.cfg.Server.TrustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(h.withCorrelationID)
	if h.cfg.Server.SecurityHeaders {
		router.Use(securityHeaders)
	}
	router.Use(cors.Handler(corsOptions(h.cfg.CORS)))
	router.Use(middleware.Compress(5))
	router.Use(h.withLogging)
	router.Use(h.withRecover)
	if h.metrics != nil {
		router.Use(h.withMetrics)
	}
	router.Use(h.withRateLimit(h.limiter))

	router.Route(h.cfg.Health.Path, func(r chi.Router) {
		r.Get("/", h.handle(h.basicHealth))
		r.Get("/detailed", h.handle(h.detailedHealth))
		r.Get("/ready", h.handle(h.readyHealth))
		r.Get("/live", h.handle(h.liveHealth))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", h.handle(h.listItems))
			r.Post("/", h.handle(h.createItem))
			r.Get("/error/test", h.handle(h.triggerError))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handle(h.getItem))
				r.Put("/", h.handle(h.updateItem))
				r.Delete("/", h.handle(h.deleteItem))
			})
		})

		r.Route("/session", func(r chi.Router) {
			r.Use(h.withRateLimit(h.strictLimiter))
			r.With(h.requireSession).Get("/me", h.handle(h.sessionMe))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.requireSession)
			r.Use(h.requireAdmin)
			r.Get("/items/stats", h.handle(h.itemStats))
		})
	})

	// the auth provider's own surface; only the session lookup is consumed
	router.Route("/api/auth", func(r chi.Router) {
		r.Use(h.withRateLimit(h.strictLimiter))
		r.With(h.requireSession).Get("/session/me", h.handle(h.sessionMe))
	})

	router.Get("/api-docs", h.docsPage)
	router.Get("/api-docs.json", h.handle(h.docsJSON))

	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.metrics.registry, promhttp.HandlerOpts{}))
	}

	// unmatched routes and mismatched methods render the same NOT_FOUND
	// envelope, matching the catch-all behaviour of the public API
	router.NotFound(h.handle(h.routeNotFound))
	router.MethodNotAllowed(h.handle(h.routeNotFound))

	return router
}

func (h *Handler) routeNotFound(_ http.ResponseWriter, r *http.Request) error {
	return apperr.NotFound(fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path))
}
