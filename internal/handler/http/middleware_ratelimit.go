// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-api-starter/internal/apperr"
)

// Strict limiter budget applied to sensitive endpoints (session lookup).
const (
	strictMaxRequests = 5
	strictWindow      = 15 * time.Minute
)

// staleAfterWindows is the number of windows of inactivity after which a
// per-client bucket is pruned.
const staleAfterWindows = 3

// rateLimiter keeps one token bucket per client key. The bucket refills max
// tokens per window with burst == max, so a silent client can immediately
// spend its full budget. Stale buckets are swept lazily on access.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket

	limit     rate.Limit
	max       int
	window    time.Duration
	lastSweep time.Time

	// skipSuccessful and skipFailed exclude a response status class from
	// counting: the consumed token is refunded after the response is
	// written. Rejected (429) requests never consumed a token.
	skipSuccessful bool
	skipFailed     bool
}

type clientBucket struct {
	limiter *rate.Limiter

	// credits are refunded tokens not yet re-spent. They are consumed
	// before the bucket proper and never exceed the request budget.
	credits  int
	lastSeen time.Time
}

// takeResult is the outcome of one budget check.
type takeResult struct {
	allowed   bool
	remaining int

	// reset is when the bucket refills back to its full budget, given the
	// current token deficit.
	reset time.Time

	// refund returns the consumed token. Nil when the request was rejected.
	refund func()
}

func newRateLimiter(maxRequests int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		clients:   make(map[string]*clientBucket),
		limit:     rate.Limit(float64(maxRequests) / window.Seconds()),
		max:       maxRequests,
		window:    window,
		lastSweep: time.Now(),
	}
}

// take consumes one token from key's bucket, spending refunded credits
// first. It reports whether the request is allowed, the tokens remaining
// afterwards and when the bucket is back to full.
func (rl *rateLimiter) take(key string) takeResult {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.sweep(now)

	bucket, ok := rl.clients[key]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(rl.limit, rl.max)}
		rl.clients[key] = bucket
	}
	bucket.lastSeen = now

	var res takeResult
	if bucket.credits > 0 {
		bucket.credits--
		res.allowed = true
	} else {
		res.allowed = bucket.limiter.AllowN(now, 1)
	}
	if res.allowed {
		res.refund = func() { rl.refund(bucket) }
	}

	available := bucket.limiter.TokensAt(now) + float64(bucket.credits)
	if available < 0 {
		available = 0
	}
	res.remaining = int(available)
	res.reset = now.Add(rl.refillDelay(available))

	return res
}

// refund returns one token to the bucket as a credit.
func (rl *rateLimiter) refund(bucket *clientBucket) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if bucket.credits < rl.max {
		bucket.credits++
	}
}

// refillDelay is how long until a bucket holding available tokens is back to
// the full budget.
func (rl *rateLimiter) refillDelay(available float64) time.Duration {
	deficit := float64(rl.max) - available
	if deficit <= 0 {
		return 0
	}
	return time.Duration(deficit / float64(rl.limit) * float64(time.Second))
}

// sweep drops buckets idle for several windows. Called under rl.mu at most
// once per window.
func (rl *rateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now

	for key, bucket := range rl.clients {
		if now.Sub(bucket.lastSeen) > staleAfterWindows*rl.window {
			delete(rl.clients, key)
		}
	}
}

// withRateLimit enforces rl per client IP. Every limited response carries
// the X-RateLimit-* headers; requests under the health prefix bypass the
// limiter entirely and are never counted.
func (h *Handler) withRateLimit(rl *rateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, h.cfg.Health.Path) {
				next.ServeHTTP(w, r)
				return
			}

			res := rl.take(clientKey(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.max))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.reset.Unix(), 10))

			if !res.allowed {
				h.renderError(w, r, apperr.TooManyRequests("Too many requests, please try again later"))
				return
			}

			if !rl.skipSuccessful && !rl.skipFailed {
				next.ServeHTTP(w, r)
				return
			}

			rw := &responseWriter{ResponseWriter: w}
			next.ServeHTTP(rw, r)

			status := rw.status
			if status == 0 {
				status = http.StatusOK
			}
			if (rl.skipSuccessful && status < http.StatusBadRequest) ||
				(rl.skipFailed && status >= http.StatusBadRequest) {
				res.refund()
			}
		})
	}
}

// clientKey identifies the client by IP. When TRUST_PROXY is on, the RealIP
// middleware has already rewritten RemoteAddr from the forwarding headers.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
