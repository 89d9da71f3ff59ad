// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package apperr defines the operational error taxonomy shared by every
// layer of the application.
//
// Each error carries a [Kind] with a fixed mapping to an HTTP status code, a
// stable symbolic code (e.g. "NOT_FOUND") and an operational flag. Operational
// errors are expected failure modes (bad input, missing resource, rate limit)
// and are logged at warn level; non-operational errors mark programming bugs,
// are logged at error level, and have their message redacted from clients in
// production.
//
// The central HTTP error handler matches errors with [errors.As], so any
// layer may wrap an *Error with fmt.Errorf("...: %w", err) without losing
// the classification.
package apperr

import (
	"errors"
	"net/http"
)

// Kind enumerates the operational error kinds of the application.
type Kind int

const (
	// KindInternal is the zero value: an unexpected failure, a bug.
	KindInternal Kind = iota
	// KindBadRequest marks a malformed or semantically invalid request.
	KindBadRequest
	// KindUnauthorized marks a missing or invalid session/credential.
	KindUnauthorized
	// KindForbidden marks a valid session with insufficient privileges.
	KindForbidden
	// KindNotFound marks an absent resource.
	KindNotFound
	// KindConflict marks a state conflict (e.g. duplicate identity).
	KindConflict
	// KindValidation marks a failed request schema validation.
	KindValidation
	// KindTooManyRequests marks an exceeded rate limit.
	KindTooManyRequests
	// KindServiceUnavailable marks a temporarily unavailable dependency.
	KindServiceUnavailable
)

// kindInfo is the fixed per-kind record: HTTP status, symbolic code and
// operational flag. The table is the single source of truth for the
// error-to-HTTP mapping.
type kindInfo struct {
	status        int
	code          string
	isOperational bool
}

var kinds = map[Kind]kindInfo{
	KindBadRequest:         {http.StatusBadRequest, "BAD_REQUEST", true},
	KindUnauthorized:       {http.StatusUnauthorized, "UNAUTHORIZED", true},
	KindForbidden:          {http.StatusForbidden, "FORBIDDEN", true},
	KindNotFound:           {http.StatusNotFound, "NOT_FOUND", true},
	KindConflict:           {http.StatusConflict, "CONFLICT", true},
	KindValidation:         {http.StatusUnprocessableEntity, "VALIDATION_ERROR", true},
	KindTooManyRequests:    {http.StatusTooManyRequests, "TOO_MANY_REQUESTS", true},
	KindInternal:           {http.StatusInternalServerError, "INTERNAL_ERROR", false},
	KindServiceUnavailable: {http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", true},
}

// FieldError describes one violated field of a failed request validation.
// Field is a dot-path into the request section ("name", "meta.tag").
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error is the application error type. Construct values via the factory
// functions below rather than directly, so the kind mapping stays fixed.
type Error struct {
	Kind    Kind
	Message string
	// Details carries optional structured context returned to the client
	// (e.g. []FieldError for validation failures).
	Details any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status associated with the error kind.
func (e *Error) StatusCode() int {
	return kinds[e.Kind].status
}

// Code returns the stable symbolic identifier associated with the error
// kind, distinct from the numeric HTTP status.
func (e *Error) Code() string {
	return kinds[e.Kind].code
}

// IsOperational reports whether the error is an expected failure mode
// rather than a programming defect.
func (e *Error) IsOperational() bool {
	return kinds[e.Kind].isOperational
}

// New constructs an *Error of an arbitrary kind. Prefer the per-kind
// factories.
func New(kind Kind, message string, details any) *Error {
	return &Error{Kind: kind, Message: message, Details: details}
}

// BadRequest constructs a 400 BAD_REQUEST error.
func BadRequest(message string, details any) *Error {
	return New(KindBadRequest, message, details)
}

// Unauthorized constructs a 401 UNAUTHORIZED error.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message, nil)
}

// Forbidden constructs a 403 FORBIDDEN error.
func Forbidden(message string) *Error {
	return New(KindForbidden, message, nil)
}

// NotFound constructs a 404 NOT_FOUND error.
func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

// Conflict constructs a 409 CONFLICT error.
func Conflict(message string) *Error {
	return New(KindConflict, message, nil)
}

// Validation constructs a 422 VALIDATION_ERROR error carrying one
// [FieldError] per violated field.
func Validation(message string, fields []FieldError) *Error {
	return New(KindValidation, message, fields)
}

// TooManyRequests constructs a 429 TOO_MANY_REQUESTS error.
func TooManyRequests(message string) *Error {
	return New(KindTooManyRequests, message, nil)
}

// Internal constructs a 500 INTERNAL_ERROR error. It is the only
// non-operational kind.
func Internal(message string) *Error {
	return New(KindInternal, message, nil)
}

// ServiceUnavailable constructs a 503 SERVICE_UNAVAILABLE error.
func ServiceUnavailable(message string) *Error {
	return New(KindServiceUnavailable, message, nil)
}

// FromError extracts an *Error from err's chain. ok is false when the chain
// contains no *Error, i.e. the failure is unclassified and must be treated
// as internal.
func FromError(err error) (appErr *Error, ok bool) {
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
