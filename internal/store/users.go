package store

import (
	"context"
	"database/sql"
	"errors"

	"price-catalog/internal/errs"
	"price-catalog/internal/models"
)

// CreateUser inserts a user keyed by the identity provider's uid
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.GetContext(ctx, user, `
		INSERT INTO users (uid, email, name, last_logged_in_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING uid, email, name, last_logged_in_at`,
		user.UID, user.Email, user.Name)
	return mapPgError(err, "failed to create user")
}

// GetUserByUID retrieves a user by uid
func (s *Store) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE uid = $1", uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.Errorf(errs.NotFound, "user not found: %s", uid)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// TouchUserLogin refreshes the user's last login time
func (s *Store) TouchUserLogin(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		UPDATE users SET last_logged_in_at = NOW()
		WHERE uid = $1
		RETURNING uid, email, name, last_logged_in_at`, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.Errorf(errs.NotFound, "user not found: %s", uid)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserName updates a user's display name
func (s *Store) UpdateUserName(ctx context.Context, uid, name string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		UPDATE users SET name = $1
		WHERE uid = $2
		RETURNING uid, email, name, last_logged_in_at`, name, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.Errorf(errs.NotFound, "user not found: %s", uid)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user
func (s *Store) DeleteUser(ctx context.Context, uid string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE uid = $1", uid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.Errorf(errs.NotFound, "user not found: %s", uid)
	}
	return nil
}
