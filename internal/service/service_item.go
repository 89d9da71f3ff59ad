// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-api-starter/internal/apperr"
	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/internal/store"
	"github.com/MKhiriev/go-api-starter/models"
)

// itemService is the concrete implementation of [ItemService]. It owns no
// state beyond the repository reference; all synchronization lives in the
// repository.
type itemService struct {
	items  store.ItemRepository
	logger *logger.Logger
}

// NewItemService constructs an [ItemService] backed by the given repository.
func NewItemService(items store.ItemRepository, logger *logger.Logger) ItemService {
	logger.Debug().Msg("item service created")
	return &itemService{
		items:  items,
		logger: logger,
	}
}

func (s *itemService) List(ctx context.Context, page, limit int) ([]models.Item, int64, error) {
	offset := (page - 1) * limit

	items, total, err := s.items.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}

	return items, total, nil
}

func (s *itemService) Count(ctx context.Context) (int64, error) {
	// the repository reports the true total alongside any slice
	_, total, err := s.items.List(ctx, 0, 1)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}

	return total, nil
}

func (s *itemService) Get(ctx context.Context, id string) (models.Item, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return models.Item{}, classifyItemError(err, id)
	}

	return item, nil
}

func (s *itemService) Create(ctx context.Context, name, description string) (models.Item, error) {
	item, err := s.items.Create(ctx, name, description)
	if err != nil {
		if errors.Is(err, store.ErrItemAlreadyExists) {
			return models.Item{}, apperr.Conflict("item already exists")
		}
		return models.Item{}, fmt.Errorf("create item: %w", err)
	}

	return item, nil
}

func (s *itemService) Update(ctx context.Context, id string, upd models.ItemUpdate) (models.Item, error) {
	item, err := s.items.Update(ctx, id, upd)
	if err != nil {
		return models.Item{}, classifyItemError(err, id)
	}

	return item, nil
}

func (s *itemService) Delete(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return classifyItemError(err, id)
	}

	return nil
}

// classifyItemError maps store sentinels to the operational taxonomy;
// anything unrecognized stays wrapped and is rendered as internal upstream.
func classifyItemError(err error, id string) error {
	switch {
	case errors.Is(err, store.ErrItemNotFound):
		return apperr.NotFound(fmt.Sprintf("Item with ID %s not found", id))
	case errors.Is(err, store.ErrItemAlreadyExists):
		return apperr.Conflict(fmt.Sprintf("Item with ID %s already exists", id))
	default:
		return fmt.Errorf("item operation: %w", err)
	}
}
