package data

import (
	"strings"
	"testing"
	"time"

	"github.com/avelichko/kritika/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingFromAggregate(t *testing.T) {
	t.Run("no reviews yields no rating", func(t *testing.T) {
		assert.Nil(t, RatingFromAggregate(0, 0))
	})

	t.Run("mean is truncated, not rounded", func(t *testing.T) {
		rating := RatingFromAggregate(15, 2) // scores 7 and 8
		require.NotNil(t, rating)
		assert.Equal(t, int32(7), *rating)

		rating = RatingFromAggregate(15, 2) // scores 6 and 9 sum to the same
		require.NotNil(t, rating)
		assert.Equal(t, int32(7), *rating)
	})

	t.Run("single review", func(t *testing.T) {
		rating := RatingFromAggregate(10, 1)
		require.NotNil(t, rating)
		assert.Equal(t, int32(10), *rating)
	})
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title Title
		valid bool
	}{
		{"valid", Title{Name: "Solaris", Year: 1961}, true},
		{"missing name", Title{Year: 1961}, false},
		{"name too long", Title{Name: strings.Repeat("a", 257), Year: 1961}, false},
		{"zero year", Title{Name: "Solaris"}, false},
		{"future year", Title{Name: "Solaris", Year: int32(time.Now().Year() + 1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateTitle(v, &tt.title)
			assert.Equal(t, tt.valid, v.Valid(), "errors: %v", v.Errors)
		})
	}
}

func TestValidateReview(t *testing.T) {
	for score, valid := range map[int32]bool{0: false, 1: true, 10: true, 11: false} {
		v := validator.New()
		ValidateReview(v, &Review{Text: "fine", Score: score})
		assert.Equal(t, valid, v.Valid(), "score %d", score)
	}
	v := validator.New()
	ValidateReview(v, &Review{Score: 5})
	assert.False(t, v.Valid(), "empty text must fail")
}
