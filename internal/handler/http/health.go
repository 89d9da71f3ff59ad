package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-starter/models"
)

func (h *Handler) basicHealth(w http.ResponseWriter, r *http.Request) error {
	h.respondSuccess(w, r, h.checker.Basic(), "Service is healthy")
	return nil
}

// detailedHealth runs the comprehensive check: system snapshot plus all
// configured dependency probes.
func (h *Handler) detailedHealth(w http.ResponseWriter, r *http.Request) error {
	resp := h.checker.Comprehensive(r.Context(), h.probes)
	h.respondSuccess(w, r, resp, "Detailed health check completed")
	return nil
}

// readyHealth reports readiness for traffic: 200 only while the system
// snapshot is healthy, 503 for any other status. A degraded node must stop
// receiving traffic just like an unhealthy one.
func (h *Handler) readyHealth(w http.ResponseWriter, r *http.Request) error {
	resp := h.checker.Detailed(r.Context())
	if resp.Status != models.StatusHealthy {
		h.writeJSON(w, r, http.StatusServiceUnavailable, models.ApiResponse{
			Success: false,
			Message: "Service is not ready",
			Data:    resp,
		})
		return nil
	}

	h.respondSuccess(w, r, resp, "Service is ready")
	return nil
}

// liveHealth is the unconditional liveness probe: the process answering at
// all is the signal.
func (h *Handler) liveHealth(w http.ResponseWriter, r *http.Request) error {
	h.respondSuccess(w, r, map[string]bool{"alive": true}, "Service is alive")
	return nil
}
