package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	t.Run("starts valid", func(t *testing.T) {
		v := New()
		assert.True(t, v.Valid())
	})

	t.Run("check records the first failure per key", func(t *testing.T) {
		v := New()
		v.Check(false, "name", "must be provided")
		v.Check(false, "name", "must not be more than 256 bytes long")
		assert.False(t, v.Valid())
		assert.Equal(t, "must be provided", v.Errors["name"])
	})

	t.Run("passing checks leave the map empty", func(t *testing.T) {
		v := New()
		v.Check(true, "name", "must be provided")
		assert.True(t, v.Valid())
	})
}

func TestIn(t *testing.T) {
	assert.True(t, In("id", "id", "name"))
	assert.False(t, In("year", "id", "name"))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("jane.doe@example.com", EmailRX))
	assert.False(t, Matches("not-an-email", EmailRX))

	assert.True(t, Matches("jane.doe@host+x-1", UsernameRX))
	assert.False(t, Matches("jane doe", UsernameRX))

	assert.True(t, Matches("science-fiction_2", SlugRX))
	assert.False(t, Matches("science fiction", SlugRX))
}

func TestUnique(t *testing.T) {
	assert.True(t, Unique([]string{"drama", "comedy"}))
	assert.False(t, Unique([]string{"drama", "drama"}))
	assert.True(t, Unique(nil))
}
