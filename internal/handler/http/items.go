// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-starter/internal/apperr"
	"github.com/MKhiriev/go-api-starter/models"
)

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) error {
	q, err := h.paginationFromQuery(r)
	if err != nil {
		return err
	}

	items, total, err := h.services.ItemService.List(r.Context(), q.Page, q.Limit)
	if err != nil {
		return err
	}

	h.respondPaginated(w, r, items, q.Page, q.Limit, total, "Items retrieved successfully")
	return nil
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) error {
	id, err := itemIDFromRequest(r, "id")
	if err != nil {
		return err
	}

	item, err := h.services.ItemService.Get(r.Context(), id)
	if err != nil {
		return err
	}

	h.respondSuccess(w, r, item, "Item retrieved successfully")
	return nil
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) error {
	var req createItemRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		return err
	}

	item, err := h.services.ItemService.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		return err
	}

	h.respondSuccessStatus(w, r, http.StatusCreated, item, "Item created successfully")
	return nil
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) error {
	id, err := itemIDFromRequest(r, "id")
	if err != nil {
		return err
	}

	var req updateItemRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		return err
	}

	item, err := h.services.ItemService.Update(r.Context(), id, models.ItemUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	h.respondSuccess(w, r, item, "Item updated successfully")
	return nil
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) error {
	id, err := itemIDFromRequest(r, "id")
	if err != nil {
		return err
	}

	if err := h.services.ItemService.Delete(r.Context(), id); err != nil {
		return err
	}

	h.respondSuccess(w, r, nil, "Item deleted successfully")
	return nil
}

// triggerError exists to demonstrate the error envelope end to end.
func (h *Handler) triggerError(http.ResponseWriter, *http.Request) error {
	return apperr.BadRequest("This is a test error", map[string]any{"test": true})
}

// itemStats is the admin-only aggregate view over the item collection.
func (h *Handler) itemStats(w http.ResponseWriter, r *http.Request) error {
	total, err := h.services.ItemService.Count(r.Context())
	if err != nil {
		return err
	}

	h.respondSuccess(w, r, map[string]any{"totalItems": total}, "Item statistics retrieved successfully")
	return nil
}
