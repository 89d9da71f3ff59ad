// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the application's business operations on top
// of the store layer: item CRUD with pagination and session validation.
// Services translate store sentinels into the apperr taxonomy so the HTTP
// layer only ever renders classified errors.
package service

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-api-starter/models"
)

// ItemService exposes the item resource operations consumed by the HTTP
// handlers.
type ItemService interface {
	// List returns the page slice [(page-1)*limit, page*limit) and the true
	// total of the underlying collection. page >= 1 and 1 <= limit <= 100
	// are enforced upstream by query validation.
	List(ctx context.Context, page, limit int) ([]models.Item, int64, error)

	// Count returns the total number of stored items.
	Count(ctx context.Context) (int64, error)

	// Get returns the item with the exact id.
	Get(ctx context.Context, id string) (models.Item, error)

	// Create stores a new item with a freshly assigned id.
	Create(ctx context.Context, name, description string) (models.Item, error)

	// Update merges the provided fields over the stored record.
	Update(ctx context.Context, id string, upd models.ItemUpdate) (models.Item, error)

	// Delete removes the item.
	Delete(ctx context.Context, id string) error
}

// SessionProvider is the capability-style seam to the external auth
// provider: the core only consumes a binary "authenticated or not" result
// plus the user's role. Any compliant provider satisfies the contract.
type SessionProvider interface {
	// Validate inspects the request headers and returns the session they
	// carry. A missing, malformed or expired credential yields an
	// apperr.Unauthorized error.
	Validate(ctx context.Context, headers http.Header) (models.Session, error)
}
