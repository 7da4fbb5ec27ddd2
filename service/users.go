package service

import (
	"errors"

	"github.com/avelichko/kritika/data"
	"github.com/avelichko/kritika/internal/validator"
	"github.com/avelichko/kritika/repository"
)

type users interface {
	CreateUser(username, email, firstName, lastName, bio string, role data.Role) (*data.User, error)
	GetUser(username string) (*data.User, error)
	UpdateUser(username string, email, firstName, lastName, bio *string, role *data.Role) (*data.User, error)
	UpdateProfile(user *data.User, email, firstName, lastName, bio *string) (*data.User, error)
	DeleteUser(username string) error
	ListUsers(search string, filters data.Filters) ([]*data.User, data.Metadata, error)
}

// CreateUser service creates a user record directly (administration). The
// user has no confirmation code until they request one through sign-up.
func (s *service) CreateUser(username, email, firstName, lastName, bio string, role data.Role) (*data.User, error) {
	if role == "" {
		role = data.RoleUser
	}
	user := &data.User{
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Bio:       bio,
		Role:      role,
	}
	v := validator.New()
	if data.ValidateUser(v, user); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateUser(user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return user, nil
}

// GetUser service shows the details of a specific user.
func (s *service) GetUser(username string) (*data.User, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}

// UpdateUser service updates the details of a specific user, the role
// included (administration).
func (s *service) UpdateUser(username string, email, firstName, lastName, bio *string, role *data.Role) (*data.User, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if role != nil {
		user.Role = *role
	}
	return s.applyUserUpdate(user, email, firstName, lastName, bio)
}

// UpdateProfile service updates the authenticated user's own profile. The
// role field is deliberately absent: it is read-only on self-edit.
func (s *service) UpdateProfile(user *data.User, email, firstName, lastName, bio *string) (*data.User, error) {
	return s.applyUserUpdate(user, email, firstName, lastName, bio)
}

// applyUserUpdate works on a copy: the profile path passes the principal
// shared through the authentication cache, which must stay untouched unless
// the update is validated and persisted.
func (s *service) applyUserUpdate(user *data.User, email, firstName, lastName, bio *string) (*data.User, error) {
	updated := *user
	if email != nil {
		updated.Email = *email
	}
	if firstName != nil {
		updated.FirstName = *firstName
	}
	if lastName != nil {
		updated.LastName = *lastName
	}
	if bio != nil {
		updated.Bio = *bio
	}
	v := validator.New()
	if data.ValidateUser(v, &updated); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.UpdateUser(&updated)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			v.AddError("email", "a user with this email address already exists")
			return nil, s.failedValidation(v.Errors)
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return &updated, nil
}

// DeleteUser service deletes a user.
func (s *service) DeleteUser(username string) error {
	err := s.repo.DeleteUser(username)
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

// ListUsers service retrieves a paginated list of users, optionally filtered
// by a username search term.
func (s *service) ListUsers(search string, filters data.Filters) ([]*data.User, data.Metadata, error) {
	v := validator.New()
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	return s.repo.GetAllUsers(search, filters)
}
