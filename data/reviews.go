package data

import (
	"time"

	"github.com/avelichko/kritika/internal/validator"
)

// Review defines a user's review of a title. A user may review a given title
// at most once; the constraint is enforced by a unique index on
// (title_id, user_id) so that concurrent submissions cannot both land.
type Review struct {
	ID      int64     `json:"id"`
	TitleID int64     `json:"-"`
	UserID  int64     `json:"-"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int32     `json:"score"`
	PubDate time.Time `json:"pub_date"`
	Version int32     `json:"-"`
}

func ValidateReview(v *validator.Validator, review *Review) {
	v.Check(review.Text != "", "text", "must be provided")
	v.Check(review.Score >= 1, "score", "must be at least 1")
	v.Check(review.Score <= 10, "score", "must not be greater than 10")
}
