package data

import "github.com/avelichko/kritika/internal/validator"

// Genre defines a genre a title can belong to. A title may carry any number
// of genres.
type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func ValidateSlug(v *validator.Validator, slug string) {
	v.Check(slug != "", "slug", "must be provided")
	v.Check(len(slug) <= 50, "slug", "must not be more than 50 bytes long")
	v.Check(validator.Matches(slug, validator.SlugRX), "slug", "must contain only letters, digits, hyphens and underscores")
}

func ValidateGenre(v *validator.Validator, genre *Genre) {
	v.Check(genre.Name != "", "name", "must be provided")
	v.Check(len(genre.Name) <= 256, "name", "must not be more than 256 bytes long")
	ValidateSlug(v, genre.Slug)
}
