package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-api-starter/internal/apperr"
)

// requireSession validates the request credential through the configured
// session provider and stores the resulting session in the request context.
// A missing or invalid credential terminates the request with a 401
// envelope before the handler runs.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := h.services.SessionProvider.Validate(r.Context(), r.Header)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeySession, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects authenticated sessions without the admin role.
// Must be mounted after requireSession.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			h.renderError(w, r, apperr.Unauthorized("Authentication required"))
			return
		}

		if !session.IsAdmin() {
			h.renderError(w, r, apperr.Forbidden("Admin privileges required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
