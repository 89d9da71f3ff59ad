package http

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-api-starter/internal/config"
	"github.com/MKhiriev/go-api-starter/internal/health"
	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/internal/service"
	"github.com/MKhiriev/go-api-starter/models"
)

// HealthChecker is the aggregator behind the health endpoints, satisfied by
// [health.Checker].
type HealthChecker interface {
	Basic() models.HealthCheckResponse
	Detailed(ctx context.Context) models.HealthCheckResponse
	Comprehensive(ctx context.Context, probes map[string]health.Probe) models.HealthCheckResponse
}

type Handler struct {
	services *service.Services
	cfg      *config.StructuredConfig
	checker  HealthChecker
	probes   map[string]health.Probe

	validate      *validator.Validate
	limiter       *rateLimiter
	strictLimiter *rateLimiter
	metrics       *httpMetrics
	doc           *openapi3.T

	logger *logger.Logger
}

// NewHandler wires the HTTP layer: validators, rate limiters and, when
// metrics are enabled, the Prometheus instrumentation. probes are the
// dependency checks surfaced by the detailed health endpoint.
func NewHandler(services *service.Services, cfg *config.StructuredConfig, checker HealthChecker, probes map[string]health.Probe, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		cfg:      cfg,
		checker:  checker,
		probes:   probes,
		validate: newValidator(),
		logger:   logger,
	}

	h.limiter = newRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	h.limiter.skipSuccessful = cfg.RateLimit.SkipSuccessful
	h.limiter.skipFailed = cfg.RateLimit.SkipFailed

	// the strict budget counts every attempt regardless of outcome
	h.strictLimiter = newRateLimiter(strictMaxRequests, strictWindow)

	if cfg.Health.MetricsEnabled {
		h.metrics = newHTTPMetrics()
	}

	h.doc = buildOpenAPIDocument(cfg)

	logger.Info().Msg("http handler created")
	return h
}
