package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-api-starter/internal/config"
	"github.com/MKhiriev/go-api-starter/internal/health"
	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/internal/service"
	"github.com/MKhiriev/go-api-starter/internal/store"
	"github.com/MKhiriev/go-api-starter/models"
)

const testSignKey = "test-sign-key"

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			Name:    "go-api-starter",
			Version: "1.0.0",
			Env:     config.EnvTest,
		},
		Server: config.Server{
			Port:            3000,
			SecurityHeaders: true,
		},
		CORS: config.CORS{
			Origin:      "*",
			Credentials: false,
		},
		RateLimit: config.RateLimit{
			WindowMS:    900000,
			MaxRequests: 100,
		},
		Health: config.Health{
			Path:           "/health",
			MetricsEnabled: false,
		},
		Storage: config.Storage{Driver: config.DriverMemory},
		Auth: config.Auth{
			TokenSignKey: testSignKey,
			TokenIssuer:  "go-api-starter",
		},
	}
}

// newTestRouter assembles a full handler over the seeded in-memory store.
// mutate tweaks the config before wiring.
func newTestRouter(t *testing.T, mutate ...func(*config.StructuredConfig)) *chi.Mux {
	t.Helper()

	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	log := logger.Nop()
	storages := &store.Storages{Items: store.NewMemoryRepository(log)}
	services := service.NewServices(storages, cfg, log)
	checker := health.NewChecker(cfg, log)

	return NewHandler(services, cfg, checker, nil, log).Init()
}

// envelope mirrors models.ApiResponse with raw Data for per-test decoding.
type envelope struct {
	Success       bool                   `json:"success"`
	Message       string                 `json:"message"`
	Data          json.RawMessage        `json:"data"`
	Error         *models.ApiError       `json:"error"`
	Meta          *models.PaginationMeta `json:"meta"`
	Timestamp     string                 `json:"timestamp"`
	Path          string                 `json:"path"`
	CorrelationID string                 `json:"correlationId"`
}

func doRequest(t *testing.T, router http.Handler, method, target string, body io.Reader) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
			"response is not a valid envelope: %s", rec.Body.String())
	}

	return rec, env
}

func newRecordedRequest(method, target string) (*http.Request, *httptest.ResponseRecorder) {
	return httptest.NewRequest(method, target, nil), httptest.NewRecorder()
}

// doRawRequest performs a request without decoding the body as an envelope,
// for endpoints serving HTML, raw JSON documents or Prometheus text.
func doRawRequest(t *testing.T, router http.Handler, method, target string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	req, rec := newRecordedRequest(method, target)
	router.ServeHTTP(rec, req)
	return req, rec
}

func signedTestToken(t *testing.T, subject, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": subject,
		"iss": "go-api-starter",
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	if role != "" {
		claims["role"] = role
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	require.NoError(t, err)
	return token
}
