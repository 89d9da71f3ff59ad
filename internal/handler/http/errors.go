// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-api-starter/internal/apperr"
	"github.com/MKhiriev/go-api-starter/internal/logger"
)

// redactedInternalMessage replaces 500-level error messages in production so
// internals never leak to clients.
const redactedInternalMessage = "An internal error occurred"

// handlerFunc is the signature of every route handler: errors are returned,
// not written, and the handle adapter funnels them into renderError so the
// whole API shares one error rendering path.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (h *Handler) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.renderError(w, r, err)
		}
	}
}

// renderError classifies err and writes the failure envelope.
//
// Dispatch order: *apperr.Error anywhere in the chain wins and is rendered
// verbatim; raw validator.ValidationErrors become a 422 with one FieldError
// per violation; everything else is an unclassified bug and renders as 500.
// Operational failures log at warn, bugs at error. In production a resolved
// 500 has its message redacted and its details dropped.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	message := err.Error()
	var details any
	operational := false

	var vErrs validator.ValidationErrors
	switch appErr, ok := apperr.FromError(err); {
	case ok:
		status = appErr.StatusCode()
		code = appErr.Code()
		message = appErr.Message
		details = appErr.Details
		operational = appErr.IsOperational()

	case errors.As(err, &vErrs):
		status = http.StatusUnprocessableEntity
		code = "VALIDATION_ERROR"
		message = "Validation failed"
		details = fieldErrorsFrom(vErrs)
		operational = true
	}

	if operational {
		log.Warn().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Error().Err(err).Int("status", status).Bytes("stack", debug.Stack()).Msg("unexpected error")
	}

	if status == http.StatusInternalServerError && h.cfg.IsProduction() {
		message = redactedInternalMessage
		details = nil
	}

	h.respondError(w, r, status, code, message, details)
}

// withRecover converts handler panics into the same envelope a returned
// internal error would produce, instead of chi's plain-text recoverer.
func (h *Handler) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			h.renderError(w, r, apperr.Internal(fmt.Sprintf("panic: %v", rec)))
		}()

		next.ServeHTTP(w, r)
	})
}
