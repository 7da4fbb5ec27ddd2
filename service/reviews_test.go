package service

import (
	"testing"

	"github.com/avelichko/kritika/data"
	"github.com/avelichko/kritika/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview(t *testing.T) {
	title := &data.Title{ID: 10, Name: "Solaris", Year: 1961}
	author := &data.User{ID: 1, Username: "jane", Role: data.RoleUser}

	t.Run("creates a review for the author", func(t *testing.T) {
		repo := &mockRepository{
			getTitle: func(titleID int64) (*data.Title, error) {
				return title, nil
			},
			createReview: func(review *data.Review) error {
				review.ID = 5
				return nil
			},
		}
		s := newTestService(repo)
		review, err := s.CreateReview(author, 10, "a slow burn", 8)
		require.NoError(t, err)
		assert.Equal(t, int64(5), review.ID)
		assert.Equal(t, int64(10), review.TitleID)
		assert.Equal(t, int64(1), review.UserID)
		assert.Equal(t, "jane", review.Author)
	})

	t.Run("unknown title", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.CreateReview(author, 99, "a slow burn", 8)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("second review on the same title", func(t *testing.T) {
		repo := &mockRepository{
			getTitle: func(titleID int64) (*data.Title, error) {
				return title, nil
			},
			reviewExistsForUser: func(titleID, userID int64) bool {
				return true
			},
		}
		s := newTestService(repo)
		_, err := s.CreateReview(author, 10, "another take", 6)
		assert.ErrorIs(t, err, ErrDuplicateRecord)
	})

	t.Run("concurrent duplicate surfaces the unique index violation", func(t *testing.T) {
		repo := &mockRepository{
			getTitle: func(titleID int64) (*data.Title, error) {
				return title, nil
			},
			createReview: func(review *data.Review) error {
				return repository.ErrDuplicateRecord
			},
		}
		s := newTestService(repo)
		_, err := s.CreateReview(author, 10, "another take", 6)
		assert.ErrorIs(t, err, ErrDuplicateRecord)
	})

	t.Run("score outside the scale", func(t *testing.T) {
		repo := &mockRepository{
			getTitle: func(titleID int64) (*data.Title, error) {
				return title, nil
			},
		}
		s := newTestService(repo)
		_, err := s.CreateReview(author, 10, "off the charts", 11)
		assert.ErrorIs(t, err, ErrFailedValidation)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "score")
	})
}

func TestUpdateReview(t *testing.T) {
	stored := func() *data.Review {
		return &data.Review{ID: 5, TitleID: 10, UserID: 1, Author: "jane", Text: "fine", Score: 7, Version: 1}
	}

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		var saved *data.Review
		repo := &mockRepository{
			getReview: func(titleID, reviewID int64) (*data.Review, error) {
				return stored(), nil
			},
			updateReview: func(review *data.Review) error {
				saved = review
				return nil
			},
		}
		s := newTestService(repo)
		score := int32(9)
		review, err := s.UpdateReview(10, 5, nil, &score)
		require.NoError(t, err)
		assert.Equal(t, "fine", review.Text)
		assert.Equal(t, int32(9), review.Score)
		require.NotNil(t, saved)
	})

	t.Run("edit conflict", func(t *testing.T) {
		repo := &mockRepository{
			getReview: func(titleID, reviewID int64) (*data.Review, error) {
				return stored(), nil
			},
			updateReview: func(review *data.Review) error {
				return repository.ErrEditConflict
			},
		}
		s := newTestService(repo)
		text := "rewritten"
		_, err := s.UpdateReview(10, 5, &text, nil)
		assert.ErrorIs(t, err, ErrEditConflict)
	})

	t.Run("review under the wrong title", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		text := "rewritten"
		_, err := s.UpdateReview(11, 5, &text, nil)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestCreateComment(t *testing.T) {
	author := &data.User{ID: 2, Username: "john", Role: data.RoleUser}

	t.Run("creates a comment on an existing review", func(t *testing.T) {
		repo := &mockRepository{
			getReview: func(titleID, reviewID int64) (*data.Review, error) {
				return &data.Review{ID: 5, TitleID: 10}, nil
			},
			createComment: func(comment *data.Comment) error {
				comment.ID = 3
				return nil
			},
		}
		s := newTestService(repo)
		comment, err := s.CreateComment(author, 10, 5, "agreed")
		require.NoError(t, err)
		assert.Equal(t, int64(3), comment.ID)
		assert.Equal(t, int64(5), comment.ReviewID)
		assert.Equal(t, "john", comment.Author)
	})

	t.Run("review missing", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.CreateComment(author, 10, 99, "agreed")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("empty text", func(t *testing.T) {
		repo := &mockRepository{
			getReview: func(titleID, reviewID int64) (*data.Review, error) {
				return &data.Review{ID: 5, TitleID: 10}, nil
			},
		}
		s := newTestService(repo)
		_, err := s.CreateComment(author, 10, 5, "")
		assert.ErrorIs(t, err, ErrFailedValidation)
	})
}
