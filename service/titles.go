package service

import (
	"errors"

	"github.com/avelichko/kritika/data"
	"github.com/avelichko/kritika/internal/validator"
	"github.com/avelichko/kritika/repository"
)

type titles interface {
	CreateTitle(name string, year int32, description string, categorySlug *string, genreSlugs []string) (*data.Title, error)
	GetTitle(titleID int64) (*data.Title, error)
	UpdateTitle(titleID int64, name *string, year *int32, description, categorySlug *string, genreSlugs []string) (*data.Title, error)
	DeleteTitle(titleID int64) error
	ListTitles(name string, year int32, genreSlug, categorySlug string, filters data.Filters) ([]*data.Title, data.Metadata, error)
}

// CreateTitle service creates a title. Category and genres are referenced by
// slug; an unknown slug is a validation failure rather than a not-found, since
// the missing record is part of the request body, not the request path.
func (s *service) CreateTitle(name string, year int32, description string, categorySlug *string, genreSlugs []string) (*data.Title, error) {
	title := &data.Title{
		Name:        name,
		Year:        year,
		Description: description,
	}
	v := validator.New()
	data.ValidateTitle(v, title)
	v.Check(validator.Unique(genreSlugs), "genre", "must not contain duplicate slugs")
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.resolveTitleRefs(title, categorySlug, genreSlugs, v)
	if err != nil {
		return nil, err
	}
	err = s.repo.CreateTitle(title)
	if err != nil {
		return nil, err
	}
	return s.GetTitle(title.ID)
}

// resolveTitleRefs resolves category and genre slugs into records on the
// title. Unknown slugs are collected into the validation error map.
func (s *service) resolveTitleRefs(title *data.Title, categorySlug *string, genreSlugs []string, v *validator.Validator) error {
	if categorySlug != nil {
		category, err := s.repo.GetCategoryBySlug(*categorySlug)
		switch {
		case err == nil:
			title.Category = category
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("category", "unknown category slug")
		default:
			return err
		}
	} else {
		title.Category = nil
	}
	genres, err := s.repo.GetGenresBySlugs(genreSlugs)
	switch {
	case err == nil:
		title.Genres = genres
	case errors.Is(err, repository.ErrRecordNotFound):
		v.AddError("genre", "unknown genre slug")
	default:
		return err
	}
	if !v.Valid() {
		return s.failedValidation(v.Errors)
	}
	return nil
}

// GetTitle service retrieves a title along with its derived rating.
func (s *service) GetTitle(titleID int64) (*data.Title, error) {
	title, err := s.repo.GetTitle(titleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return title, nil
}

// UpdateTitle service updates a title. Nil fields are left unchanged; a nil
// genreSlugs slice keeps the existing genre set.
func (s *service) UpdateTitle(titleID int64, name *string, year *int32, description, categorySlug *string, genreSlugs []string) (*data.Title, error) {
	title, err := s.GetTitle(titleID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		title.Name = *name
	}
	if year != nil {
		title.Year = *year
	}
	if description != nil {
		title.Description = *description
	}
	v := validator.New()
	data.ValidateTitle(v, title)
	v.Check(validator.Unique(genreSlugs), "genre", "must not contain duplicate slugs")
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	if categorySlug != nil {
		err = s.resolveTitleRefs(title, categorySlug, currentGenreSlugs(title, genreSlugs), v)
	} else if genreSlugs != nil {
		keep := title.Category
		err = s.resolveTitleRefs(title, nil, genreSlugs, v)
		title.Category = keep
	}
	if err != nil {
		return nil, err
	}
	err = s.repo.UpdateTitle(title)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return s.GetTitle(title.ID)
}

// currentGenreSlugs returns the requested genre slugs, falling back to the
// title's existing ones when the request leaves them untouched.
func currentGenreSlugs(title *data.Title, requested []string) []string {
	if requested != nil {
		return requested
	}
	slugs := make([]string, 0, len(title.Genres))
	for _, genre := range title.Genres {
		slugs = append(slugs, genre.Slug)
	}
	return slugs
}

// DeleteTitle service deletes a title. Its reviews and their comments are
// removed with it.
func (s *service) DeleteTitle(titleID int64) error {
	err := s.repo.DeleteTitle(titleID)
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

// ListTitles service retrieves a paginated list of titles with derived
// ratings. Records can be filtered by name, year, genre slug and category
// slug.
func (s *service) ListTitles(name string, year int32, genreSlug, categorySlug string, filters data.Filters) ([]*data.Title, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	return s.repo.GetAllTitles(name, year, genreSlug, categorySlug, filters)
}
