// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Item is the demonstration resource served by the /api/v1/items endpoints.
// Identity is the string ID assigned by the repository at creation time.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ItemUpdate carries the optional fields of an item update. Nil pointers
// mean "leave unchanged"; ID and CreatedAt are never touched by an update.
type ItemUpdate struct {
	Name        *string
	Description *string
}
