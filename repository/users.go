package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avelichko/kritika/data"
)

type users interface {
	CreateUser(user *data.User) error
	GetUserByID(userID int64) (*data.User, error)
	GetUserByUsername(username string) (*data.User, error)
	GetUserByEmail(email string) (*data.User, error)
	UpdateUser(user *data.User) error
	DeleteUser(username string) error
	GetAllUsers(search string, filters data.Filters) ([]*data.User, data.Metadata, error)
}

// CreateUser creates a user record.
func (r *repository) CreateUser(user *data.User) error {
	query := `
		INSERT INTO users (username, email, first_name, last_name, bio, role, confirmation_hash, confirmation_expiry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version`
	args := []interface{}{user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role, user.ConfirmationCode.Hash, user.ConfirmationCode.Expiry}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Version,
	)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "users_username_key"`:
			return ErrDuplicateRecord
		case err.Error() == `pq: duplicate key value violates unique constraint "users_email_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

func (r *repository) getUser(where string, arg interface{}) (*data.User, error) {
	query := fmt.Sprintf(`
		SELECT id, created_at, username, email, first_name, last_name, bio, role, confirmation_hash, confirmation_expiry, version
		FROM users
		WHERE %s = $1`, where)
	var user data.User
	var confirmationExpiry sql.NullTime
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.ConfirmationCode.Hash,
		&confirmationExpiry,
		&user.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if confirmationExpiry.Valid {
		user.ConfirmationCode.Expiry = confirmationExpiry.Time
	}
	return &user, nil
}

// GetUserByID retrieves a user record by its ID.
func (r *repository) GetUserByID(userID int64) (*data.User, error) {
	if userID < 1 {
		return nil, ErrRecordNotFound
	}
	return r.getUser("id", userID)
}

// GetUserByUsername retrieves a user record by its username.
func (r *repository) GetUserByUsername(username string) (*data.User, error) {
	return r.getUser("username", username)
}

// GetUserByEmail retrieves a user record by its email address.
func (r *repository) GetUserByEmail(email string) (*data.User, error) {
	return r.getUser("email", email)
}

// UpdateUser updates a user record, including the stored confirmation code
// hash and expiry. A nil hash clears the code.
func (r *repository) UpdateUser(user *data.User) error {
	query := `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, bio = $4, role = $5, confirmation_hash = $6, confirmation_expiry = $7, version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING version`
	var confirmationExpiry interface{}
	if !user.ConfirmationCode.Expiry.IsZero() {
		confirmationExpiry = user.ConfirmationCode.Expiry
	}
	args := []interface{}{user.Email, user.FirstName, user.LastName, user.Bio, user.Role, user.ConfirmationCode.Hash, confirmationExpiry, user.ID, user.Version}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "users_email_key"`:
			return ErrDuplicateRecord
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteUser deletes a user record by its username.
func (r *repository) DeleteUser(username string) error {
	query := `
		DELETE FROM users
		WHERE username = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, username)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// GetAllUsers retrieves a paginated list of user records, optionally filtered
// by a username search term.
func (r *repository) GetAllUsers(search string, filters data.Filters) ([]*data.User, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, created_at, username, email, first_name, last_name, bio, role, version
		FROM users
		WHERE (username ILIKE '%%' || $1 || '%%' OR $1 = '')
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`,
		filters.SortColumn(), filters.SortDirection())
	args := []interface{}{search, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	users := []*data.User{}
	for rows.Next() {
		var user data.User
		err := rows.Scan(
			&totalRecords,
			&user.ID,
			&user.CreatedAt,
			&user.Username,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.Bio,
			&user.Role,
			&user.Version,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		users = append(users, &user)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return users, metadata, nil
}
