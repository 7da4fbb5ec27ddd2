package data

import (
	"time"

	"github.com/avelichko/kritika/internal/validator"
)

// Title defines a reviewable work. The Rating field is derived from the
// title's reviews on every read and is never written to the database.
type Title struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"-"`
	Name        string    `json:"name"`
	Year        int32     `json:"year"`
	Description string    `json:"description"`
	Category    *Category `json:"category"`
	Genres      []Genre   `json:"genre"`
	Rating      *int32    `json:"rating"`
	Version     int32     `json:"-"`
}

// RatingFromAggregate converts a (sum, count) score aggregate into the rating
// representation: nil when the title has no reviews, otherwise the integer
// mean truncated towards zero. [7,8] averages to 7, not 8.
func RatingFromAggregate(sum, count int64) *int32 {
	if count == 0 {
		return nil
	}
	rating := int32(sum / count)
	return &rating
}

func ValidateTitle(v *validator.Validator, title *Title) {
	v.Check(title.Name != "", "name", "must be provided")
	v.Check(len(title.Name) <= 256, "name", "must not be more than 256 bytes long")
	v.Check(title.Year > 0, "year", "must be provided")
	v.Check(title.Year <= int32(time.Now().Year()), "year", "must not be in the future")
}
