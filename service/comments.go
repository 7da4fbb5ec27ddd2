package service

import (
	"errors"

	"github.com/avelichko/kritika/data"
	"github.com/avelichko/kritika/internal/validator"
	"github.com/avelichko/kritika/repository"
)

type comments interface {
	CreateComment(user *data.User, titleID, reviewID int64, text string) (*data.Comment, error)
	GetComment(titleID, reviewID, commentID int64) (*data.Comment, error)
	UpdateComment(titleID, reviewID, commentID int64, text *string) (*data.Comment, error)
	DeleteComment(titleID, reviewID, commentID int64) error
	ListComments(titleID, reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error)
}

// ensureReview verifies that a review exists under the given title. Comment
// operations address a review through its title, so a review reached through
// the wrong title is treated as missing.
func (s *service) ensureReview(titleID, reviewID int64) error {
	_, err := s.GetReview(titleID, reviewID)
	return err
}

// CreateComment service creates a comment on a review on behalf of a user.
func (s *service) CreateComment(user *data.User, titleID, reviewID int64, text string) (*data.Comment, error) {
	err := s.ensureReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	comment := &data.Comment{
		ReviewID: reviewID,
		UserID:   user.ID,
		Author:   user.Username,
		Text:     text,
	}
	v := validator.New()
	if data.ValidateComment(v, comment); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.CreateComment(comment)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComment service retrieves a comment on a review.
func (s *service) GetComment(titleID, reviewID, commentID int64) (*data.Comment, error) {
	err := s.ensureReview(titleID, reviewID)
	if err != nil {
		return nil, err
	}
	comment, err := s.repo.GetComment(reviewID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return comment, nil
}

// UpdateComment service updates a comment's text.
func (s *service) UpdateComment(titleID, reviewID, commentID int64, text *string) (*data.Comment, error) {
	comment, err := s.GetComment(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if text != nil {
		comment.Text = *text
	}
	v := validator.New()
	if data.ValidateComment(v, comment); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateComment(comment)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return comment, nil
}

// DeleteComment service deletes a comment.
func (s *service) DeleteComment(titleID, reviewID, commentID int64) error {
	err := s.ensureReview(titleID, reviewID)
	if err != nil {
		return err
	}
	err = s.repo.DeleteComment(reviewID, commentID)
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

// ListComments service retrieves a paginated list of comments on a review.
func (s *service) ListComments(titleID, reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error) {
	err := s.ensureReview(titleID, reviewID)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	return s.repo.GetAllCommentsForReview(reviewID, filters)
}
