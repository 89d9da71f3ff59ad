// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http is the inbound HTTP transport: the chi router, the
// middleware chain (correlation IDs, security headers, CORS, compression,
// request logging, Prometheus metrics, per-client rate limiting), request
// validation, and the uniform response envelope.
//
// Handlers return errors instead of writing them; a single renderer
// translates the apperr taxonomy, validator violations and unclassified
// failures into the envelope, redacting internals in production.
package http
