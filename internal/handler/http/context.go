// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"

	"github.com/MKhiriev/go-api-starter/models"
)

// ctxKey is an unexported type for request context keys, so no other
// package can collide with values stored by this one.
type ctxKey int

const (
	ctxKeyCorrelationID ctxKey = iota
	ctxKeySession
)

// CorrelationID returns the correlation ID attached to ctx by
// withCorrelationID, or "" when the middleware did not run.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyCorrelationID).(string)
	return id
}

// SessionFromContext returns the session attached to ctx by requireSession.
// ok is false on routes that never passed the session guard.
func SessionFromContext(ctx context.Context) (models.Session, bool) {
	session, ok := ctx.Value(ctxKeySession).(models.Session)
	return session, ok
}
