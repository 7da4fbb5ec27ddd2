package data

import (
	"testing"

	"github.com/avelichko/kritika/internal/validator"
	"github.com/stretchr/testify/assert"
)

func TestFiltersSorting(t *testing.T) {
	f := Filters{Sort: "-year", SortSafelist: []string{"id", "year", "-id", "-year"}}
	assert.Equal(t, "year", f.SortColumn())
	assert.Equal(t, "DESC", f.SortDirection())

	f.Sort = "id"
	assert.Equal(t, "id", f.SortColumn())
	assert.Equal(t, "ASC", f.SortDirection())

	f.Sort = "score; DROP TABLE titles"
	assert.Panics(t, func() { f.SortColumn() })
}

func TestFiltersPaging(t *testing.T) {
	f := Filters{Page: 3, PageSize: 20}
	assert.Equal(t, 20, f.Limit())
	assert.Equal(t, 40, f.Offset())
}

func TestCalculateMetadata(t *testing.T) {
	metadata := CalculateMetadata(95, 2, 10)
	assert.Equal(t, 2, metadata.CurrentPage)
	assert.Equal(t, 10, metadata.PageSize)
	assert.Equal(t, 1, metadata.FirstPage)
	assert.Equal(t, 10, metadata.LastPage)
	assert.Equal(t, 95, metadata.TotalRecords)

	assert.Equal(t, Metadata{}, CalculateMetadata(0, 1, 10))
}

func TestValidateFilters(t *testing.T) {
	safelist := []string{"id", "-id"}
	tests := []struct {
		name    string
		filters Filters
		valid   bool
	}{
		{"valid", Filters{Page: 1, PageSize: 10, Sort: "id", SortSafelist: safelist}, true},
		{"zero page", Filters{Page: 0, PageSize: 10, Sort: "id", SortSafelist: safelist}, false},
		{"oversized page size", Filters{Page: 1, PageSize: 101, Sort: "id", SortSafelist: safelist}, false},
		{"unsafe sort", Filters{Page: 1, PageSize: 10, Sort: "name", SortSafelist: safelist}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateFilters(v, tt.filters)
			assert.Equal(t, tt.valid, v.Valid())
		})
	}
}
