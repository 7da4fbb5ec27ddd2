package data

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/avelichko/kritika/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

// Role defines the access level of a user. It is a closed enum: any value
// outside the three constants below fails validation and is denied by the
// access predicate.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// IsValid reports whether a role is one of the known constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

var AnonymousUser = &User{}

// User defines a user model.
type User struct {
	ID               int64            `json:"-"`
	CreatedAt        time.Time        `json:"-"`
	Username         string           `json:"username"`
	Email            string           `json:"email"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	Bio              string           `json:"bio"`
	Role             Role             `json:"role"`
	ConfirmationCode ConfirmationCode `json:"-"`
	Version          int32            `json:"-"`
}

// IsAnonymous checks if a user instance is the anonymous user.
func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// ConfirmationCode defines the plaintext and hashed versions of the short-lived
// code a user exchanges for a bearer token. The plaintext field is a *pointer*
// to a string so that a code which was never generated in this process can be
// distinguished from an empty one. Only the hash and expiry are persisted.
type ConfirmationCode struct {
	Plaintext *string
	Hash      []byte
	Expiry    time.Time
}

const confirmationCodeTTL = 24 * time.Hour

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generate creates a fresh 6-character uppercase-alphanumeric code, stores its
// bcrypt hash and expiry, and keeps the plaintext in memory for delivery.
func (c *ConfirmationCode) Generate() error {
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	plaintext := string(code)
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	c.Plaintext = &plaintext
	c.Hash = hash
	c.Expiry = time.Now().Add(confirmationCodeTTL)
	return nil
}

// Matches checks whether the provided plaintext code matches the stored hash
// and has not expired, returning true only when both hold.
func (c *ConfirmationCode) Matches(plaintext string) (bool, error) {
	if len(c.Hash) == 0 || time.Now().After(c.Expiry) {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword(c.Hash, []byte(plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

func ValidateUsername(v *validator.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(len(username) <= 150, "username", "must not be more than 150 bytes long")
	v.Check(validator.Matches(username, validator.UsernameRX), "username", "must contain only letters, digits and .@+- characters")
	v.Check(!strings.EqualFold(username, "me"), "username", "is reserved")
}

func ValidateEmail(v *validator.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(len(email) <= 254, "email", "must not be more than 254 bytes long")
	v.Check(validator.Matches(email, validator.EmailRX), "email", "must be a valid email address")
}

func ValidateRole(v *validator.Validator, role Role) {
	v.Check(role.IsValid(), "role", "must be one of user, moderator or admin")
}

func ValidateUser(v *validator.Validator, user *User) {
	ValidateUsername(v, user.Username)
	ValidateEmail(v, user.Email)
	ValidateRole(v, user.Role)
	v.Check(len(user.FirstName) <= 150, "first_name", "must not be more than 150 bytes long")
	v.Check(len(user.LastName) <= 150, "last_name", "must not be more than 150 bytes long")
	v.Check(len(user.Bio) <= 255, "bio", "must not be more than 255 bytes long")
}
