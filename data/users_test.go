package data

import (
	"strings"
	"testing"
	"time"

	"github.com/avelichko/kritika/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationCode(t *testing.T) {
	t.Run("generate produces a 6-character uppercase-alphanumeric code", func(t *testing.T) {
		var code ConfirmationCode
		err := code.Generate()
		require.NoError(t, err)
		require.NotNil(t, code.Plaintext)
		assert.Len(t, *code.Plaintext, 6)
		for _, r := range *code.Plaintext {
			assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected character %q", r)
		}
		assert.NotEmpty(t, code.Hash)
		assert.True(t, code.Expiry.After(time.Now()))
	})

	t.Run("matches the generated plaintext", func(t *testing.T) {
		var code ConfirmationCode
		require.NoError(t, code.Generate())
		match, err := code.Matches(*code.Plaintext)
		require.NoError(t, err)
		assert.True(t, match)
	})

	t.Run("rejects a wrong code", func(t *testing.T) {
		var code ConfirmationCode
		require.NoError(t, code.Generate())
		match, err := code.Matches("WRONG1")
		require.NoError(t, err)
		assert.False(t, match)
	})

	t.Run("rejects an expired code", func(t *testing.T) {
		var code ConfirmationCode
		require.NoError(t, code.Generate())
		code.Expiry = time.Now().Add(-time.Minute)
		match, err := code.Matches(*code.Plaintext)
		require.NoError(t, err)
		assert.False(t, match)
	})

	t.Run("rejects when no code was ever issued", func(t *testing.T) {
		var code ConfirmationCode
		match, err := code.Matches("ABC123")
		require.NoError(t, err)
		assert.False(t, match)
	})
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"plain username", "reviewer_7", true},
		{"allowed punctuation", "jane.doe@host+x-1", true},
		{"empty", "", false},
		{"reserved me", "me", false},
		{"reserved me mixed case", "Me", false},
		{"disallowed characters", "jane doe!", false},
		{"too long", strings.Repeat("a", 151), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateUsername(v, tt.username)
			assert.Equal(t, tt.valid, v.Valid(), "errors: %v", v.Errors)
		})
	}
}

func TestValidateRole(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleModerator, RoleAdmin} {
		v := validator.New()
		ValidateRole(v, role)
		assert.True(t, v.Valid(), "role %q should validate", role)
	}
	v := validator.New()
	ValidateRole(v, Role("superuser"))
	assert.False(t, v.Valid())
}

func TestAnonymousUser(t *testing.T) {
	assert.True(t, AnonymousUser.IsAnonymous())
	assert.False(t, (&User{Username: "jane"}).IsAnonymous())
}
