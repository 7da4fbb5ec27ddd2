package data

import "github.com/avelichko/kritika/internal/validator"

// Category defines a category of titles (books, films and so on).
type Category struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func ValidateCategory(v *validator.Validator, category *Category) {
	v.Check(category.Name != "", "name", "must be provided")
	v.Check(len(category.Name) <= 256, "name", "must not be more than 256 bytes long")
	ValidateSlug(v, category.Slug)
}
