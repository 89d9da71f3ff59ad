package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const correlationIDHeader = "X-Correlation-ID"

// withCorrelationID reuses the inbound X-Correlation-ID header or generates
// a fresh UUID, stores the value in the request context and in a child
// logger, and echoes it on the response. Runs before logging and rate
// limiting so every log line and every envelope carries the ID.
func (h *Handler) withCorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		correlationID := r.Header.Get(correlationIDHeader)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}
		ctx = context.WithValue(ctx, ctxKeyCorrelationID, correlationID)

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("correlation_id", correlationID)
		})
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(correlationIDHeader, correlationID)
		next.ServeHTTP(w, r)
	})
}
