package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alex-user-go/tripsearch/internal/search"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		label  string
		want   float64
		wantOK bool
	}{
		{"$899.99", 899.99, true},
		{"From $1,299.99 per person", 1299.99, true},
		{"$12,345,678", 12345678, true},
		{"1234", 1234, true},
		{"(245 reviews)", 245, true},
		{"4.5 out of 5", 4.5, true},
		{"USD 3,299 total", 3299, true},
		{"Call for price", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := search.ParseAmount(tt.label)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPrice(t *testing.T) {
	_, ok := search.Price(types.RawResult{PriceStatus: types.PriceNotAvailable})
	assert.False(t, ok)

	_, ok = search.Price(types.RawResult{PriceStatus: "  not available "})
	assert.False(t, ok)

	v, ok := search.Price(types.RawResult{PriceStatus: "From $1,899"})
	assert.True(t, ok)
	assert.InDelta(t, 1899, v, 1e-9)
}

func TestStarCount(t *testing.T) {
	_, ok := search.StarCount(types.RawResult{})
	assert.False(t, ok)

	for _, tt := range []struct {
		rating float64
		want   int
	}{
		{5, 5}, {4.99, 4}, {4.0, 4}, {3.5, 3}, {0.2, 0},
	} {
		got, ok := search.StarCount(types.RawResult{Rating: rating(tt.rating)})
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "rating %v", tt.rating)
	}
}
