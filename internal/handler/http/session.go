package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-starter/internal/apperr"
)

// sessionMe echoes the authenticated session back to the caller. The
// session guard has already validated the credential; the missing-session
// branch only fires if the route is ever mounted without it.
func (h *Handler) sessionMe(w http.ResponseWriter, r *http.Request) error {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		return apperr.Unauthorized("Authentication required")
	}

	h.respondSuccess(w, r, session, "Session retrieved successfully")
	return nil
}
