package service

import (
	"errors"

	"github.com/avelichko/kritika/data"
	"github.com/avelichko/kritika/internal/validator"
	"github.com/avelichko/kritika/repository"
)

type genres interface {
	CreateGenre(name, slug string) (*data.Genre, error)
	DeleteGenre(slug string) error
	ListGenres(search string, filters data.Filters) ([]*data.Genre, data.Metadata, error)
}

// CreateGenre service creates a genre.
func (s *service) CreateGenre(name, slug string) (*data.Genre, error) {
	genre := &data.Genre{Name: name, Slug: slug}
	v := validator.New()
	if data.ValidateGenre(v, genre); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateGenre(genre)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return genre, nil
}

// DeleteGenre service deletes a genre by slug.
func (s *service) DeleteGenre(slug string) error {
	err := s.repo.DeleteGenre(slug)
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

// ListGenres service retrieves a paginated list of genres, optionally
// filtered by a name search term.
func (s *service) ListGenres(search string, filters data.Filters) ([]*data.Genre, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	return s.repo.GetAllGenres(search, filters)
}
