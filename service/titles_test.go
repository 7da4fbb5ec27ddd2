package service

import (
	"testing"

	"github.com/avelichko/kritika/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTitle(t *testing.T) {
	category := &data.Category{ID: 1, Name: "Films", Slug: "films"}
	genres := []data.Genre{{ID: 1, Name: "Drama", Slug: "drama"}}

	t.Run("resolves category and genre slugs", func(t *testing.T) {
		var created *data.Title
		repo := &mockRepository{
			getCategoryBySlug: func(slug string) (*data.Category, error) {
				assert.Equal(t, "films", slug)
				return category, nil
			},
			getGenresBySlugs: func(slugs []string) ([]data.Genre, error) {
				return genres, nil
			},
			createTitle: func(title *data.Title) error {
				title.ID = 10
				created = title
				return nil
			},
			getTitle: func(titleID int64) (*data.Title, error) {
				return created, nil
			},
		}
		s := newTestService(repo)
		slug := "films"
		title, err := s.CreateTitle("Solaris", 1972, "", &slug, []string{"drama"})
		require.NoError(t, err)
		require.NotNil(t, title.Category)
		assert.Equal(t, "films", title.Category.Slug)
		assert.Len(t, title.Genres, 1)
	})

	t.Run("unknown genre slug is a validation failure", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.CreateTitle("Solaris", 1972, "", nil, []string{"no-such-genre"})
		assert.ErrorIs(t, err, ErrFailedValidation)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "genre")
	})

	t.Run("duplicate genre slugs rejected", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.CreateTitle("Solaris", 1972, "", nil, []string{"drama", "drama"})
		assert.ErrorIs(t, err, ErrFailedValidation)
	})

	t.Run("future year rejected", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.CreateTitle("Solaris", 3000, "", nil, nil)
		assert.ErrorIs(t, err, ErrFailedValidation)
	})
}
