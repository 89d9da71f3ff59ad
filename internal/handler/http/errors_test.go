package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-api-starter/internal/apperr"
	"github.com/MKhiriev/go-api-starter/internal/config"
	"github.com/MKhiriev/go-api-starter/internal/health"
	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/internal/service"
	"github.com/MKhiriev/go-api-starter/internal/store"
)

// newBareHandler builds a Handler without a router, for unit-testing the
// error renderer directly.
func newBareHandler(t *testing.T, mutate ...func(*config.StructuredConfig)) *Handler {
	t.Helper()

	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	log := logger.Nop()
	storages := &store.Storages{Items: store.NewEmptyMemoryRepository(log)}
	services := service.NewServices(storages, cfg, log)

	return NewHandler(services, cfg, health.NewChecker(cfg, log), nil, log)
}

func TestRenderError_Dispatch_TableTest(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "bad request",
			err:         apperr.BadRequest("bad input", nil),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "BAD_REQUEST",
			wantMessage: "bad input",
		},
		{
			name:        "not found",
			err:         apperr.NotFound("missing"),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "missing",
		},
		{
			name:        "unauthorized",
			err:         apperr.Unauthorized("no session"),
			wantStatus:  http.StatusUnauthorized,
			wantCode:    "UNAUTHORIZED",
			wantMessage: "no session",
		},
		{
			name:        "forbidden",
			err:         apperr.Forbidden("not allowed"),
			wantStatus:  http.StatusForbidden,
			wantCode:    "FORBIDDEN",
			wantMessage: "not allowed",
		},
		{
			name:        "conflict",
			err:         apperr.Conflict("duplicate"),
			wantStatus:  http.StatusConflict,
			wantCode:    "CONFLICT",
			wantMessage: "duplicate",
		},
		{
			name:        "too many requests",
			err:         apperr.TooManyRequests("slow down"),
			wantStatus:  http.StatusTooManyRequests,
			wantCode:    "TOO_MANY_REQUESTS",
			wantMessage: "slow down",
		},
		{
			name:        "service unavailable",
			err:         apperr.ServiceUnavailable("backend gone"),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    "SERVICE_UNAVAILABLE",
			wantMessage: "backend gone",
		},
		{
			name:        "wrapped app error keeps its classification",
			err:         fmt.Errorf("operation failed: %w", apperr.NotFound("inner gone")),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "inner gone",
		},
		{
			name:        "unclassified error is internal",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newBareHandler(t)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rec := httptest.NewRecorder()
			h.renderError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var env envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, tt.wantMessage, env.Error.Message)
			assert.Equal(t, "/test", env.Path)
			assert.NotEmpty(t, env.Timestamp)
		})
	}
}

func TestRenderError_ProductionRedactsInternals(t *testing.T) {
	h := newBareHandler(t, func(cfg *config.StructuredConfig) {
		cfg.App.Env = config.EnvProduction
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	h.renderError(rec, req, errors.New("secret database password leaked"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, redactedInternalMessage, env.Error.Message)
	assert.Nil(t, env.Error.Details)
	assert.NotContains(t, rec.Body.String(), "secret database password")
}

func TestRenderError_ProductionKeepsOperationalMessages(t *testing.T) {
	h := newBareHandler(t, func(cfg *config.StructuredConfig) {
		cfg.App.Env = config.EnvProduction
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	h.renderError(rec, req, apperr.NotFound("Item with ID 7 not found"))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "Item with ID 7 not found", env.Error.Message)
}

func TestWithRecover_PanicBecomesInternalEnvelope(t *testing.T) {
	h := newBareHandler(t)

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("handler exploded")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	h.withRecover(panicking).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
}
