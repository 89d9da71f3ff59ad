package http

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-api-starter/internal/apperr"
)

func TestFieldErrorsFrom_JSONNamesAndMessages(t *testing.T) {
	v := newValidator()

	req := createItemRequest{Name: "", Description: strings.Repeat("x", 501)}
	err := v.Struct(req)
	require.Error(t, err)

	vErrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)

	fields := fieldErrorsFrom(vErrs)
	require.Len(t, fields, 2)

	byField := map[string]apperr.FieldError{}
	for _, f := range fields {
		byField[f.Field] = f
	}

	name, ok := byField["name"]
	require.True(t, ok, "violations must use json field names")
	assert.Equal(t, "required", name.Code)
	assert.Equal(t, "name is required", name.Message)

	desc, ok := byField["description"]
	require.True(t, ok)
	assert.Equal(t, "max", desc.Code)
	assert.Contains(t, desc.Message, "500 characters")
}

func TestUpdateRequest_OptionalFieldsValidatedOnlyWhenPresent(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.Struct(updateItemRequest{}), "empty update is valid")

	name := "ok"
	assert.NoError(t, v.Struct(updateItemRequest{Name: &name}))

	empty := ""
	err := v.Struct(updateItemRequest{Name: &empty})
	require.Error(t, err, "present but empty field must fail min=1")
}

func TestTrim(t *testing.T) {
	create := createItemRequest{Name: "  a  ", Description: "\tb\n"}
	create.trim()
	assert.Equal(t, "a", create.Name)
	assert.Equal(t, "b", create.Description)

	padded := "  c  "
	update := updateItemRequest{Name: &padded}
	update.trim()
	assert.Equal(t, "c", *update.Name)
	assert.Nil(t, update.Description)
}

func TestPaginationFromQuery_TableTest(t *testing.T) {
	h := newBareHandler(t)

	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 10},
		{name: "explicit values", query: "page=3&limit=25", wantPage: 3, wantLimit: 25},
		{name: "limit at cap", query: "limit=100", wantPage: 1, wantLimit: 100},
		{name: "limit over cap", query: "limit=101", wantErr: true},
		{name: "zero page", query: "page=0", wantErr: true},
		{name: "non-numeric limit", query: "limit=ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/items?"+tt.query, nil)

			q, err := h.paginationFromQuery(r)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
		})
	}
}

func TestPaginationFromQuery_NonNumericReportsFieldError(t *testing.T) {
	h := newBareHandler(t)

	r := httptest.NewRequest("GET", "/api/v1/items?page=abc&limit=xyz", nil)
	_, err := h.paginationFromQuery(r)

	appErr, ok := apperr.FromError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code())

	fields, ok := appErr.Details.([]apperr.FieldError)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "page", fields[0].Field)
	assert.Equal(t, "number", fields[0].Code)
	assert.Equal(t, "limit", fields[1].Field)
}
