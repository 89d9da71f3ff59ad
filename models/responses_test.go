package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta_TableTest(t *testing.T) {
	tests := []struct {
		name           string
		page, limit    int
		total          int64
		wantTotalPages int
		wantHasNext    bool
		wantHasPrev    bool
	}{
		{name: "single page", page: 1, limit: 10, total: 5, wantTotalPages: 1},
		{name: "exact multiple", page: 1, limit: 5, total: 10, wantTotalPages: 2, wantHasNext: true},
		{name: "remainder adds a page", page: 1, limit: 3, total: 10, wantTotalPages: 4, wantHasNext: true},
		{name: "middle page has both", page: 2, limit: 3, total: 10, wantTotalPages: 4, wantHasNext: true, wantHasPrev: true},
		{name: "last page has prev only", page: 4, limit: 3, total: 10, wantTotalPages: 4, wantHasPrev: true},
		{name: "empty collection", page: 1, limit: 10, total: 0, wantTotalPages: 0},
		{name: "page beyond the end", page: 7, limit: 10, total: 5, wantTotalPages: 1, wantHasPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewPaginationMeta(tt.page, tt.limit, tt.total)

			assert.Equal(t, tt.page, meta.Page)
			assert.Equal(t, tt.limit, meta.Limit)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.wantTotalPages, meta.TotalPages)
			assert.Equal(t, tt.wantHasNext, meta.HasNext)
			assert.Equal(t, tt.wantHasPrev, meta.HasPrev)
		})
	}
}
