package service

import (
	"testing"

	"github.com/avelichko/kritika/data"
	"github.com/avelichko/kritika/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	principal := func() *data.User {
		return &data.User{ID: 1, Username: "jane", Email: "jane@example.com", Role: data.RoleUser, Version: 1}
	}

	t.Run("role survives a self-edit", func(t *testing.T) {
		// The profile operation has no role parameter at all; this exercises
		// the rest of the self-edit path.
		var saved *data.User
		repo := &mockRepository{
			updateUser: func(u *data.User) error {
				saved = u
				return nil
			},
		}
		s := newTestService(repo)
		bio := "reads a lot"
		updated, err := s.UpdateProfile(principal(), nil, nil, nil, &bio)
		require.NoError(t, err)
		assert.Equal(t, data.RoleUser, updated.Role)
		assert.Equal(t, "reads a lot", updated.Bio)
		require.NotNil(t, saved)
	})

	t.Run("rejected edit leaves the principal untouched", func(t *testing.T) {
		user := principal()
		s := newTestService(&mockRepository{})
		bad := "not-an-email"
		_, err := s.UpdateProfile(user, &bad, nil, nil, nil)
		assert.ErrorIs(t, err, ErrFailedValidation)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("edit conflict leaves the principal untouched", func(t *testing.T) {
		user := principal()
		repo := &mockRepository{
			updateUser: func(u *data.User) error {
				return repository.ErrEditConflict
			},
		}
		s := newTestService(repo)
		email := "jane.doe@example.com"
		_, err := s.UpdateProfile(user, &email, nil, nil, nil)
		assert.ErrorIs(t, err, ErrEditConflict)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("successful edit is returned without mutating the input", func(t *testing.T) {
		user := principal()
		s := newTestService(&mockRepository{})
		email := "jane.doe@example.com"
		updated, err := s.UpdateProfile(user, &email, nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "jane.doe@example.com", updated.Email)
		assert.Equal(t, "jane@example.com", user.Email)
	})
}

func TestCreateUserDefaultsRole(t *testing.T) {
	var created *data.User
	repo := &mockRepository{
		createUser: func(u *data.User) error {
			created = u
			return nil
		},
	}
	s := newTestService(repo)
	_, err := s.CreateUser("jane", "jane@example.com", "", "", "", "")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, data.RoleUser, created.Role)
}
