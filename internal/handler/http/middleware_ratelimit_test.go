package http

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-api-starter/internal/config"
)

func TestRateLimiter_Take(t *testing.T) {
	rl := newRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		res := rl.take("10.0.0.1")
		assert.True(t, res.allowed, "request %d within budget must pass", i+1)
	}

	res := rl.take("10.0.0.1")
	assert.False(t, res.allowed, "request over budget must be rejected")
	assert.Equal(t, 0, res.remaining)
	assert.Nil(t, res.refund, "rejected requests have nothing to refund")

	// a different client has its own bucket
	assert.True(t, rl.take("10.0.0.2").allowed)
}

func TestRateLimiter_RefundRestoresBudget(t *testing.T) {
	rl := newRateLimiter(1, time.Hour)

	first := rl.take("10.0.0.1")
	require.True(t, first.allowed)
	require.False(t, rl.take("10.0.0.1").allowed, "budget exhausted")

	first.refund()
	assert.True(t, rl.take("10.0.0.1").allowed, "refunded token is spendable again")
}

func TestRateLimiter_ResetReflectsTokenDeficit(t *testing.T) {
	rl := newRateLimiter(4, time.Hour)
	now := time.Now()

	first := rl.take("10.0.0.1")
	require.True(t, first.allowed)
	assert.True(t, first.reset.After(now))
	assert.True(t, first.reset.Before(now.Add(time.Hour)),
		"a single consumed token refills well before a full window")

	var last takeResult
	for i := 0; i < 3; i++ {
		last = rl.take("10.0.0.1")
	}
	assert.True(t, last.reset.After(first.reset), "reset moves out as tokens are consumed")
	assert.WithinDuration(t, now.Add(time.Hour), last.reset, time.Minute,
		"an empty bucket refills in one full window")
}

func TestRateLimiter_SweepDropsStaleBuckets(t *testing.T) {
	rl := newRateLimiter(3, time.Millisecond)

	rl.take("10.0.0.1")
	require.Len(t, rl.clients, 1)

	// age the bucket past the stale horizon, then trigger a sweep
	rl.clients["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	rl.lastSweep = time.Now().Add(-time.Hour)

	rl.take("10.0.0.2")
	_, stale := rl.clients["10.0.0.1"]
	assert.False(t, stale, "idle bucket must be pruned")
}

func TestRateLimit_RejectsOverBudgetWith429(t *testing.T) {
	router := newTestRouter(t, func(cfg *config.StructuredConfig) {
		cfg.RateLimit.MaxRequests = 3
	})

	for i := 0; i < 3; i++ {
		rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/items", nil)
		require.Equal(t, http.StatusOK, rec.Code, "request %d within budget", i+1)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
	}

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/items", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "TOO_MANY_REQUESTS", env.Error.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	reset, err := strconv.ParseInt(rec.Header().Get("X-RateLimit-Reset"), 10, 64)
	require.NoError(t, err)
	assert.Greater(t, reset, time.Now().Unix())
}

func TestRateLimit_RemainingDecreases(t *testing.T) {
	router := newTestRouter(t, func(cfg *config.StructuredConfig) {
		cfg.RateLimit.MaxRequests = 10
	})

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/items", nil)
	first, err := strconv.Atoi(rec.Header().Get("X-RateLimit-Remaining"))
	require.NoError(t, err)

	rec, _ = doRequest(t, router, http.MethodGet, "/api/v1/items", nil)
	second, err := strconv.Atoi(rec.Header().Get("X-RateLimit-Remaining"))
	require.NoError(t, err)

	assert.Less(t, second, first)
}

func TestRateLimit_HealthPathIsExempt(t *testing.T) {
	router := newTestRouter(t, func(cfg *config.StructuredConfig) {
		cfg.RateLimit.MaxRequests = 2
	})

	for i := 0; i < 20; i++ {
		rec, _ := doRequest(t, router, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, rec.Code, "health request %d must never be limited", i+1)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"), "health responses carry no limiter headers")
	}

	// the API budget is untouched by health traffic
	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/items", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_SkipSuccessfulExcludesSuccessesFromBudget(t *testing.T) {
	router := newTestRouter(t, func(cfg *config.StructuredConfig) {
		cfg.RateLimit.MaxRequests = 2
		cfg.RateLimit.SkipSuccessful = true
	})

	// far more successes than the budget allows; each one is refunded
	for i := 0; i < 8; i++ {
		rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/items", nil)
		require.Equal(t, http.StatusOK, rec.Code, "successful request %d must not consume budget", i+1)
	}

	// failed responses still count
	for i := 0; i < 2; i++ {
		rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/items/999", nil)
		require.Equal(t, http.StatusNotFound, rec.Code, "failed request %d within budget", i+1)
	}

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/items/999", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimit_SkipFailedExcludesFailuresFromBudget(t *testing.T) {
	router := newTestRouter(t, func(cfg *config.StructuredConfig) {
		cfg.RateLimit.MaxRequests = 2
		cfg.RateLimit.SkipFailed = true
	})

	for i := 0; i < 8; i++ {
		rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/items/999", nil)
		require.Equal(t, http.StatusNotFound, rec.Code, "failed request %d must not consume budget", i+1)
	}

	for i := 0; i < 2; i++ {
		rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/items", nil)
		require.Equal(t, http.StatusOK, rec.Code, "successful request %d within budget", i+1)
	}

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/items", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimit_StrictBudgetOnSessionEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// the strict limiter allows 5 per window, independent of the default one
	for i := 0; i < strictMaxRequests; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/session/me", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "unauthenticated request %d still consumes budget", i+1)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestClientKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.7:51234"
	assert.Equal(t, "192.0.2.7", clientKey(r))

	r.RemoteAddr = "192.0.2.7"
	assert.Equal(t, "192.0.2.7", clientKey(r))
}
