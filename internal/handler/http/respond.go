// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/models"
)

// writeJSON stamps the envelope with the response timestamp, the request
// path and the correlation ID, then writes it with the given status. Every
// response of the application, success or error, goes through here.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, resp models.ApiResponse) {
	resp.Timestamp = time.Now().UTC().Format(time.RFC3339)
	resp.Path = r.URL.Path
	resp.CorrelationID = CorrelationID(r.Context())

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("error writing response body")
	}
}

// respondSuccess writes a 200 success envelope.
func (h *Handler) respondSuccess(w http.ResponseWriter, r *http.Request, data any, message string) {
	h.respondSuccessStatus(w, r, http.StatusOK, data, message)
}

// respondSuccessStatus writes a success envelope with an explicit status,
// e.g. 201 for creations.
func (h *Handler) respondSuccessStatus(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	h.writeJSON(w, r, status, models.ApiResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondNoContent writes a 204 with an empty body. The one writer that
// bypasses the envelope, since 204 responses carry no content.
func (h *Handler) respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// respondPaginated writes a 200 success envelope carrying a list slice plus
// the pagination meta derived from page/limit/total.
func (h *Handler) respondPaginated(w http.ResponseWriter, r *http.Request, data any, page, limit int, total int64, message string) {
	meta := models.NewPaginationMeta(page, limit, total)
	h.writeJSON(w, r, http.StatusOK, models.ApiResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    &meta,
	})
}

// respondError writes a failure envelope. code is the stable symbolic
// identifier ("NOT_FOUND"), status the HTTP status it maps to.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	h.writeJSON(w, r, status, models.ApiResponse{
		Success: false,
		Error: &models.ApiError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
