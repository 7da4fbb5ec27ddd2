package service

import (
	"testing"

	"github.com/avelichko/kritika/data"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUp(t *testing.T) {
	t.Run("creates a new user with a fresh code", func(t *testing.T) {
		var created *data.User
		repo := &mockRepository{
			createUser: func(user *data.User) error {
				user.ID = 1
				created = user
				return nil
			},
		}
		s := newTestService(repo)
		user, err := s.SignUp("jane", "jane@example.com")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, data.RoleUser, created.Role)
		assert.NotEmpty(t, created.ConfirmationCode.Hash)
		require.NotNil(t, user.ConfirmationCode.Plaintext)
		assert.Len(t, *user.ConfirmationCode.Plaintext, 6)
	})

	t.Run("rotates the code for the identical pair", func(t *testing.T) {
		existing := &data.User{ID: 1, Username: "jane", Email: "jane@example.com", Role: data.RoleUser}
		updated := false
		repo := &mockRepository{
			getUserByUsername: func(username string) (*data.User, error) {
				return existing, nil
			},
			updateUser: func(user *data.User) error {
				updated = true
				return nil
			},
		}
		s := newTestService(repo)
		user, err := s.SignUp("jane", "jane@example.com")
		require.NoError(t, err)
		assert.True(t, updated)
		assert.NotNil(t, user.ConfirmationCode.Plaintext)
	})

	t.Run("rejects a taken username with a different email", func(t *testing.T) {
		existing := &data.User{ID: 1, Username: "jane", Email: "jane@example.com"}
		repo := &mockRepository{
			getUserByUsername: func(username string) (*data.User, error) {
				return existing, nil
			},
		}
		s := newTestService(repo)
		_, err := s.SignUp("jane", "other@example.com")
		assert.ErrorIs(t, err, ErrDuplicateRecord)
	})

	t.Run("rejects an email taken by another account", func(t *testing.T) {
		repo := &mockRepository{
			getUserByEmail: func(email string) (*data.User, error) {
				return &data.User{ID: 2, Username: "john", Email: email}, nil
			},
		}
		s := newTestService(repo)
		_, err := s.SignUp("jane", "john@example.com")
		assert.ErrorIs(t, err, ErrDuplicateRecord)
	})

	t.Run("rejects the reserved username", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.SignUp("me", "me@example.com")
		assert.ErrorIs(t, err, ErrFailedValidation)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "username")
	})

	t.Run("rejects invalid username characters", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.SignUp("jane doe!", "jane@example.com")
		assert.ErrorIs(t, err, ErrFailedValidation)
	})
}

func TestCreateToken(t *testing.T) {
	userWithCode := func() *data.User {
		user := &data.User{ID: 7, Username: "jane", Email: "jane@example.com", Role: data.RoleUser}
		err := user.ConfirmationCode.Generate()
		if err != nil {
			t.Fatal(err)
		}
		return user
	}

	t.Run("issues a token and clears the code", func(t *testing.T) {
		user := userWithCode()
		code := *user.ConfirmationCode.Plaintext
		var saved *data.User
		repo := &mockRepository{
			getUserByUsername: func(username string) (*data.User, error) {
				return user, nil
			},
			updateUser: func(u *data.User) error {
				saved = u
				return nil
			},
		}
		s := newTestService(repo)
		token, err := s.CreateToken("jane", code)
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Empty(t, saved.ConfirmationCode.Hash, "code must be single-use")

		claims := &jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(s.config.Jwt.Secret), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, "7", claims.Subject)
		assert.Equal(t, "kritika", claims.Issuer)
	})

	t.Run("unknown username", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.CreateToken("ghost", "ABC123")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("wrong code", func(t *testing.T) {
		user := userWithCode()
		repo := &mockRepository{
			getUserByUsername: func(username string) (*data.User, error) {
				return user, nil
			},
		}
		s := newTestService(repo)
		_, err := s.CreateToken("jane", "WRONG1")
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("expired code", func(t *testing.T) {
		user := userWithCode()
		user.ConfirmationCode.Expiry = user.ConfirmationCode.Expiry.AddDate(0, 0, -2)
		repo := &mockRepository{
			getUserByUsername: func(username string) (*data.User, error) {
				return user, nil
			},
		}
		s := newTestService(repo)
		_, err := s.CreateToken("jane", *user.ConfirmationCode.Plaintext)
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.CreateToken("", "")
		assert.ErrorIs(t, err, ErrFailedValidation)
	})
}

func TestAuthenticateToken(t *testing.T) {
	user := &data.User{ID: 7, Username: "jane", Email: "jane@example.com", Role: data.RoleUser}
	issueToken := func(s *service) string {
		err := user.ConfirmationCode.Generate()
		require.NoError(t, err)
		token, err := s.CreateToken("jane", *user.ConfirmationCode.Plaintext)
		require.NoError(t, err)
		return token
	}

	t.Run("round trip", func(t *testing.T) {
		repo := &mockRepository{
			getUserByUsername: func(username string) (*data.User, error) {
				return user, nil
			},
			getUserByID: func(userID int64) (*data.User, error) {
				assert.Equal(t, int64(7), userID)
				return user, nil
			},
		}
		s := newTestService(repo)
		token := issueToken(s)
		got, err := s.AuthenticateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("garbage token", func(t *testing.T) {
		s := newTestService(&mockRepository{})
		_, err := s.AuthenticateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		repo := &mockRepository{
			getUserByUsername: func(username string) (*data.User, error) {
				return user, nil
			},
		}
		s := newTestService(repo)
		token := issueToken(s)
		_, err := s.AuthenticateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
