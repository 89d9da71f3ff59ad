// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-api-starter/internal/apperr"
)

// Pagination defaults and bounds for list endpoints.
const (
	defaultPage  = 1
	defaultLimit = 10
)

// createItemRequest is the body schema of POST /api/v1/items. Both fields
// are trimmed before validation, so whitespace-only input fails "required".
type createItemRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
}

func (req *createItemRequest) trim() {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
}

// updateItemRequest is the body schema of PUT /api/v1/items/{id}. Absent
// fields stay nil and leave the stored value unchanged; present fields must
// be non-empty after trimming.
type updateItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,min=1,max=500"`
}

func (req *updateItemRequest) trim() {
	if req.Name != nil {
		*req.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		*req.Description = strings.TrimSpace(*req.Description)
	}
}

// listItemsQuery carries the coerced pagination query parameters.
type listItemsQuery struct {
	Page  int `validate:"min=1"`
	Limit int `validate:"min=1,max=100"`
}

type trimmable interface {
	trim()
}

// newValidator builds the request validator. Struct fields are reported
// under their json names so FieldError paths match the wire format.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	return v
}

// decodeAndValidate parses the JSON body into dst, trims its fields and
// validates them. An empty body is treated as an empty object, so missing
// required fields surface as validation errors rather than a JSON parse
// failure. Returned validator.ValidationErrors flow untouched to the
// central error renderer.
func (h *Handler) decodeAndValidate(r *http.Request, dst trimmable) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperr.BadRequest("Invalid JSON in request body", nil)
	}

	dst.trim()

	return h.validate.StructCtx(r.Context(), dst)
}

// paginationFromQuery coerces the page/limit query parameters, applying the
// defaults for absent values. Non-numeric input and out-of-bounds values
// both surface as 422 validation errors.
func (h *Handler) paginationFromQuery(r *http.Request) (listItemsQuery, error) {
	q := listItemsQuery{Page: defaultPage, Limit: defaultLimit}

	params := []struct {
		name string
		dst  *int
	}{
		{"page", &q.Page},
		{"limit", &q.Limit},
	}

	var fields []apperr.FieldError
	for _, p := range params {
		name, dst := p.name, p.dst
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}

		n, err := strconv.Atoi(raw)
		if err != nil {
			fields = append(fields, apperr.FieldError{
				Field:   name,
				Message: name + " must be an integer",
				Code:    "number",
			})
			continue
		}
		*dst = n
	}

	if len(fields) > 0 {
		return q, apperr.Validation("Validation failed", fields)
	}

	if err := h.validate.StructCtx(r.Context(), q); err != nil {
		return q, err
	}

	return q, nil
}

// itemIDFromRequest extracts and checks the {id} path parameter.
func itemIDFromRequest(r *http.Request, param string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, param))
	if id == "" {
		return "", apperr.Validation("Validation failed", []apperr.FieldError{{
			Field:   param,
			Message: param + " is required",
			Code:    "required",
		}})
	}
	return id, nil
}

// fieldErrorsFrom converts validator violations into the wire-level
// FieldError shape: json-named dot-path, human message, tag as code.
func fieldErrorsFrom(vErrs validator.ValidationErrors) []apperr.FieldError {
	fields := make([]apperr.FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, apperr.FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
			Code:    fe.Tag(),
		})
	}
	return fields
}

// fieldPath strips the root struct name from the violation namespace:
// "createItemRequest.name" becomes "name", nested fields keep their dots.
func fieldPath(fe validator.FieldError) string {
	parts := strings.SplitN(fe.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String ||
		(fe.Kind() == reflect.Ptr && fe.Type().Elem().Kind() == reflect.String)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
