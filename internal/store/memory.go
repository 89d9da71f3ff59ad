// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/models"
)

// memoryRepository is the in-memory implementation of [ItemRepository]: an
// ordered slice guarded by a mutex, owned exclusively by the repository.
//
// IDs come from a monotonic counter that is never reused after deletions,
// so deleting id "3" and creating a new item can never produce a collision
// with a surviving record.
type memoryRepository struct {
	logger *logger.Logger

	mu     sync.Mutex
	items  []models.Item
	nextID int64
}

// NewMemoryRepository constructs the default in-memory [ItemRepository],
// seeded with a handful of demonstration items.
func NewMemoryRepository(log *logger.Logger) ItemRepository {
	log.Debug().Msg("creating in-memory item repository")

	r := &memoryRepository{logger: log}
	r.seed(5)
	return r
}

// NewEmptyMemoryRepository constructs an in-memory [ItemRepository] with no
// seed data. Intended for tests.
func NewEmptyMemoryRepository(log *logger.Logger) ItemRepository {
	return &memoryRepository{logger: log}
}

// seed fills the repository with n demonstration items.
func (r *memoryRepository) seed(n int) {
	ordinals := []string{"First", "Second", "Third", "Fourth", "Fifth",
		"Sixth", "Seventh", "Eighth", "Ninth", "Tenth"}

	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		r.nextID++
		ordinal := "Another"
		if i < len(ordinals) {
			ordinal = ordinals[i]
		}
		r.items = append(r.items, models.Item{
			ID:          strconv.FormatInt(r.nextID, 10),
			Name:        fmt.Sprintf("Item %d", r.nextID),
			Description: ordinal + " item",
			CreatedAt:   now,
		})
	}
}

func (r *memoryRepository) List(_ context.Context, offset, limit int) ([]models.Item, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := int64(len(r.items))

	if offset >= len(r.items) || offset < 0 {
		return []models.Item{}, total, nil
	}

	end := offset + limit
	if end > len(r.items) {
		end = len(r.items)
	}

	// copy so callers never observe later mutations
	page := make([]models.Item, end-offset)
	copy(page, r.items[offset:end])

	return page, total, nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}

	return models.Item{}, ErrItemNotFound
}

func (r *memoryRepository) Create(_ context.Context, name, description string) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item := models.Item{
		ID:          strconv.FormatInt(r.nextID, 10),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}

	r.items = append(r.items, item)

	return item, nil
}

func (r *memoryRepository) Update(_ context.Context, id string, upd models.ItemUpdate) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}

		if upd.Name != nil {
			r.items[i].Name = strings.TrimSpace(*upd.Name)
		}
		if upd.Description != nil {
			r.items[i].Description = strings.TrimSpace(*upd.Description)
		}

		return r.items[i], nil
	}

	return models.Item{}, ErrItemNotFound
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}

	return ErrItemNotFound
}

// Ping always succeeds: process memory needs no connectivity.
func (r *memoryRepository) Ping(_ context.Context) error {
	return nil
}

func (r *memoryRepository) Close() error {
	return nil
}
