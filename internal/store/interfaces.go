// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store provides the item persistence layer behind a single
// repository interface, with in-memory (default), Redis and PostgreSQL
// implementations selected by configuration. The interface is the seam for
// swapping in a real persistent store without touching the service or
// handler contracts.
package store

import (
	"context"

	"github.com/MKhiriev/go-api-starter/models"
)

// ItemRepository is the persistence contract for the item resource.
//
// Implementations must serialize mutating access so that ID assignment and
// indexed mutation are atomic per operation; IDs are monotonic and never
// reused after deletions.
type ItemRepository interface {
	// List returns the slice [offset, offset+limit) of the ordered
	// collection plus the true total count of the underlying collection.
	List(ctx context.Context, offset, limit int) ([]models.Item, int64, error)

	// Get returns the item with the exact id, or [ErrItemNotFound].
	Get(ctx context.Context, id string) (models.Item, error)

	// Create assigns the next ID and CreatedAt, appends the item and
	// returns the stored record.
	Create(ctx context.Context, name, description string) (models.Item, error)

	// Update merges the provided fields over the stored record, preserving
	// unspecified fields and the original ID/CreatedAt.
	// Returns [ErrItemNotFound] when the id is absent.
	Update(ctx context.Context, id string, upd models.ItemUpdate) (models.Item, error)

	// Delete removes the item, or returns [ErrItemNotFound].
	Delete(ctx context.Context, id string) error

	// Ping reports whether the backing store is reachable. Used by the
	// health check aggregator as a dependency probe.
	Ping(ctx context.Context) error

	// Close releases any held connections.
	Close() error
}
