package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/avelichko/kritika/data"
	"github.com/avelichko/kritika/internal/mailer"
	"github.com/avelichko/kritika/internal/validator"
	"github.com/avelichko/kritika/repository"
	"github.com/golang-jwt/jwt/v5"
)

type auth interface {
	SignUp(username, email string) (*data.User, error)
	CreateToken(username, confirmationCode string) (string, error)
	AuthenticateToken(token string) (*data.User, error)
}

const bearerTokenTTL = 24 * time.Hour

// SignUp registers a user (or re-requests a code for an existing one) and
// dispatches a fresh confirmation code by email. The call is idempotent for an
// identical (username, email) pair; the code is rotated on every call so only
// the most recently mailed code is valid.
func (s *service) SignUp(username, email string) (*data.User, error) {
	v := validator.New()
	data.ValidateUsername(v, username)
	data.ValidateEmail(v, email)
	if !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	user, err := s.repo.GetUserByUsername(username)
	switch {
	case err == nil:
		if user.Email != email {
			return nil, fmt.Errorf("%w: a user with this username already exists", ErrDuplicateRecord)
		}
	case errors.Is(err, repository.ErrRecordNotFound):
		_, err = s.repo.GetUserByEmail(email)
		if err == nil {
			return nil, fmt.Errorf("%w: a user with this email address already exists", ErrDuplicateRecord)
		}
		if !errors.Is(err, repository.ErrRecordNotFound) {
			return nil, err
		}
		user = &data.User{
			Username: username,
			Email:    email,
			Role:     data.RoleUser,
		}
	default:
		return nil, err
	}
	err = user.ConfirmationCode.Generate()
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		err = s.repo.CreateUser(user)
	} else {
		err = s.repo.UpdateUser(user)
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	// Send the confirmation code in a background goroutine to speed up
	// response time.
	code := *user.ConfirmationCode.Plaintext
	recipient := user.Email
	s.background(func() {
		data := map[string]string{
			"username":         user.Username,
			"confirmationCode": code,
		}
		mailer := mailer.New(s.config.Smtp.Host, s.config.Smtp.Port, s.config.Smtp.Username, s.config.Smtp.Password, s.config.Smtp.Sender)
		err := mailer.Send(recipient, "confirmation_code.tmpl", data)
		if err != nil {
			s.logger.PrintError(err, nil)
		}
	})
	return user, nil
}

// CreateToken exchanges a (username, confirmation code) pair for a signed
// bearer token. The stored code is cleared on success, so each code can be
// used exactly once.
func (s *service) CreateToken(username, confirmationCode string) (string, error) {
	v := validator.New()
	v.Check(username != "", "username", "must be provided")
	v.Check(confirmationCode != "", "confirmation_code", "must be provided")
	if !v.Valid() {
		return "", s.failedValidation(v.Errors)
	}
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return "", ErrRecordNotFound
		default:
			return "", err
		}
	}
	match, err := user.ConfirmationCode.Matches(confirmationCode)
	if err != nil {
		return "", err
	}
	if !match {
		return "", ErrInvalidCode
	}
	// Invalidate the code before issuing the token.
	user.ConfirmationCode = data.ConfirmationCode{}
	err = s.repo.UpdateUser(user)
	if err != nil {
		return "", err
	}
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		Issuer:    s.config.Jwt.Issuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(bearerTokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Jwt.Secret))
}

// AuthenticateToken verifies a bearer token and returns the user it was
// issued to.
func (s *service) AuthenticateToken(token string) (*data.User, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.Jwt.Secret), nil
	}, jwt.WithIssuer(s.config.Jwt.Issuer))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrInvalidToken
		default:
			return nil, err
		}
	}
	return user, nil
}
