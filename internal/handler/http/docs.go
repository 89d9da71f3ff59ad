// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/MKhiriev/go-api-starter/internal/config"
	"github.com/MKhiriev/go-api-starter/internal/logger"
)

// docsPage serves a minimal HTML shell pointing at the machine-readable
// document. Rendering a full Swagger UI is deliberately out of scope.
const docsPageHTML = `<!DOCTYPE html>
<html>
<head><title>API Documentation</title></head>
<body>
<h1>API Documentation</h1>
<p>The OpenAPI document is served at <a href="/api-docs.json">/api-docs.json</a>.</p>
</body>
</html>
`

func (h *Handler) docsPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(docsPageHTML)); err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("error writing docs page")
	}
}

func (h *Handler) docsJSON(w http.ResponseWriter, r *http.Request) error {
	body, err := h.doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("error marshaling openapi document: %w", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if _, err := w.Write(body); err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("error writing openapi document")
	}
	return nil
}

// buildOpenAPIDocument assembles the OpenAPI 3 description of the public
// surface. The document is built once at startup and served verbatim.
func buildOpenAPIDocument(cfg *config.StructuredConfig) *openapi3.T {
	itemSchema := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("name", openapi3.NewStringSchema().WithMaxLength(100)).
		WithProperty("description", openapi3.NewStringSchema().WithMaxLength(500)).
		WithProperty("createdAt", openapi3.NewDateTimeSchema())

	envelopeSchema := openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("timestamp", openapi3.NewDateTimeSchema()).
		WithProperty("path", openapi3.NewStringSchema()).
		WithProperty("correlationId", openapi3.NewStringSchema())

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       cfg.App.Name,
			Version:     cfg.App.Version,
			Description: "REST API starter with health checks, pagination and a uniform response envelope.",
		},
		Servers: openapi3.Servers{
			{URL: fmt.Sprintf("http://localhost:%d", cfg.Server.Port)},
		},
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"Item":        openapi3.NewSchemaRef("", itemSchema),
				"ApiResponse": openapi3.NewSchemaRef("", envelopeSchema),
			},
		},
		Paths: openapi3.NewPaths(),
	}

	addOperation(doc.Paths, "/api/v1/items", http.MethodGet, "List items with pagination")
	addOperation(doc.Paths, "/api/v1/items", http.MethodPost, "Create an item")
	addOperation(doc.Paths, "/api/v1/items/{id}", http.MethodGet, "Get an item by ID")
	addOperation(doc.Paths, "/api/v1/items/{id}", http.MethodPut, "Update an item")
	addOperation(doc.Paths, "/api/v1/items/{id}", http.MethodDelete, "Delete an item")
	addOperation(doc.Paths, "/api/v1/items/error/test", http.MethodGet, "Trigger a demonstration error")
	addOperation(doc.Paths, "/api/v1/session/me", http.MethodGet, "Get the authenticated session")
	addOperation(doc.Paths, "/api/v1/admin/items/stats", http.MethodGet, "Get item statistics (admin only)")
	addOperation(doc.Paths, cfg.Health.Path, http.MethodGet, "Basic health check")
	addOperation(doc.Paths, cfg.Health.Path+"/detailed", http.MethodGet, "Detailed health check with dependency probes")
	addOperation(doc.Paths, cfg.Health.Path+"/ready", http.MethodGet, "Readiness probe")
	addOperation(doc.Paths, cfg.Health.Path+"/live", http.MethodGet, "Liveness probe")

	return doc
}

func addOperation(paths *openapi3.Paths, path, method, summary string) {
	op := openapi3.NewOperation()
	op.Summary = summary
	op.Responses = openapi3.NewResponses()

	item := paths.Value(path)
	if item == nil {
		item = &openapi3.PathItem{}
		paths.Set(path, item)
	}
	item.SetOperation(method, op)
}
