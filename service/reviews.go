package service

import (
	"errors"

	"github.com/avelichko/kritika/data"
	"github.com/avelichko/kritika/internal/validator"
	"github.com/avelichko/kritika/repository"
)

type reviews interface {
	CreateReview(user *data.User, titleID int64, text string, score int32) (*data.Review, error)
	GetReview(titleID, reviewID int64) (*data.Review, error)
	UpdateReview(titleID, reviewID int64, text *string, score *int32) (*data.Review, error)
	DeleteReview(titleID, reviewID int64) error
	ListReviews(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error)
}

// CreateReview service creates a review on a title on behalf of a user. A user
// can hold at most one review per title; the existence check here gives a
// friendly error for the common case, while the database unique index settles
// concurrent submissions.
func (s *service) CreateReview(user *data.User, titleID int64, text string, score int32) (*data.Review, error) {
	_, err := s.GetTitle(titleID)
	if err != nil {
		return nil, err
	}
	review := &data.Review{
		TitleID: titleID,
		UserID:  user.ID,
		Author:  user.Username,
		Text:    text,
		Score:   score,
	}
	v := validator.New()
	if data.ValidateReview(v, review); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	if s.repo.ReviewExistsForUser(titleID, user.ID) {
		return nil, ErrDuplicateRecord
	}
	err = s.repo.CreateReview(review)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return review, nil
}

// GetReview service retrieves a review on a title.
func (s *service) GetReview(titleID, reviewID int64) (*data.Review, error) {
	review, err := s.repo.GetReview(titleID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return review, nil
}

// UpdateReview service updates a review. Nil fields are left unchanged.
func (s *service) UpdateReview(titleID, reviewID int64, text *string, score *int32) (*data.Review, error) {
	review, err := s.GetReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if text != nil {
		review.Text = *text
	}
	if score != nil {
		review.Score = *score
	}
	v := validator.New()
	if data.ValidateReview(v, review); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateReview(review)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return review, nil
}

// DeleteReview service deletes a review. Comments on the review are removed
// with it.
func (s *service) DeleteReview(titleID, reviewID int64) error {
	err := s.repo.DeleteReview(titleID, reviewID)
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

// ListReviews service retrieves a paginated list of reviews on a title.
func (s *service) ListReviews(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	_, err := s.GetTitle(titleID)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	return s.repo.GetAllReviewsForTitle(titleID, filters)
}
