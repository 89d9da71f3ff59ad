// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ApiError is the error payload embedded in a failed [ApiResponse].
// Code is a stable symbolic identifier (e.g. "NOT_FOUND"), distinct from
// the numeric HTTP status of the response.
type ApiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ApiResponse is the uniform JSON envelope applied to every response,
// success or error. Exactly one of Data/Error is populated depending on
// Success. Meta is present only on paginated list responses.
type ApiResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message,omitempty"`
	Data          any             `json:"data,omitempty"`
	Error         *ApiError       `json:"error,omitempty"`
	Meta          *PaginationMeta `json:"meta,omitempty"`
	Timestamp     string          `json:"timestamp"`
	Path          string          `json:"path"`
	CorrelationID string          `json:"correlationId,omitempty"`
}

// PaginationMeta describes the position of a list slice within the full
// collection. All derived fields are computed at response time from
// page/limit/total and are never stored.
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPaginationMeta computes the derived pagination fields.
// The caller guarantees limit > 0 (enforced upstream by query validation).
// A zero total yields zero totalPages and hasNext == false.
func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
