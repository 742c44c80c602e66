package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsParams(t *testing.T) {
	tests := []struct {
		name        string
		in          PaginationParams
		wantPage    int
		wantPerPage int
	}{
		{"zero values", PaginationParams{}, 1, 25},
		{"negative page", PaginationParams{Page: -3, PerPage: 10}, 1, 10},
		{"oversized per page", PaginationParams{Page: 2, PerPage: 500}, 2, 100},
		{"already valid", PaginationParams{Page: 4, PerPage: 50}, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Validate()
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantPerPage, tt.in.PerPage)
		})
	}
}

func TestOffset(t *testing.T) {
	p := PaginationParams{Page: 3, PerPage: 25}
	assert.Equal(t, 50, p.Offset())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 25, 60)

	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := NewPagination(3, 25, 60)
	assert.False(t, last.HasNext)

	empty := NewPagination(1, 25, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
