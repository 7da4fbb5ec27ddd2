package service

import (
	"errors"

	"github.com/avelichko/kritika/data"
	"github.com/avelichko/kritika/internal/validator"
	"github.com/avelichko/kritika/repository"
)

type categories interface {
	CreateCategory(name, slug string) (*data.Category, error)
	DeleteCategory(slug string) error
	ListCategories(search string, filters data.Filters) ([]*data.Category, data.Metadata, error)
}

// CreateCategory service creates a category.
func (s *service) CreateCategory(name, slug string) (*data.Category, error) {
	category := &data.Category{Name: name, Slug: slug}
	v := validator.New()
	if data.ValidateCategory(v, category); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateCategory(category)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return category, nil
}

// DeleteCategory service deletes a category by slug.
func (s *service) DeleteCategory(slug string) error {
	err := s.repo.DeleteCategory(slug)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// ListCategories service retrieves a paginated list of categories, optionally
// filtered by a name search term.
func (s *service) ListCategories(search string, filters data.Filters) ([]*data.Category, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	return s.repo.GetAllCategories(search, filters)
}
