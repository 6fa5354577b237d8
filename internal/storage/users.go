package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"budgetx/internal/core"
)

// ErrUserNotFound is returned when a lookup matches no user row.
var ErrUserNotFound = errors.New("user not found")

// UpsertGoogleUser inserts or refreshes the user row keyed by googleID and
// returns the stored row. Name, email and avatar are overwritten on every
// sign-in so the profile tracks the identity provider.
func (r *Repository) UpsertGoogleUser(ctx context.Context, googleID, email, name, avatar string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, google_id, email, name, avatar, created_at FROM users WHERE google_id = ?",
		googleID,
	).Scan(&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.Avatar, &u.CreatedAt)

	switch {
	case err == nil:
		if _, err := r.db.ExecContext(ctx,
			"UPDATE users SET name = ?, email = ?, avatar = ? WHERE id = ?",
			name, email, avatar, u.ID,
		); err != nil {
			return core.User{}, fmt.Errorf("update user: %w", err)
		}
		u.Name, u.Email, u.Avatar = name, email, avatar
		return u, nil

	case errors.Is(err, sql.ErrNoRows):
		res, err := r.db.ExecContext(ctx,
			"INSERT INTO users (google_id, email, name, avatar) VALUES (?, ?, ?, ?)",
			googleID, email, name, avatar,
		)
		if err != nil {
			return core.User{}, fmt.Errorf("insert user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return core.User{}, fmt.Errorf("last insert id: %w", err)
		}
		return r.GetUser(ctx, id)

	default:
		return core.User{}, fmt.Errorf("select user by google id: %w", err)
	}
}

// GetUser returns the user row by id.
func (r *Repository) GetUser(ctx context.Context, id int64) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, google_id, email, name, avatar, created_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.GoogleID, &u.Email, &u.Name, &u.Avatar, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ErrUserNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

// DeleteUser removes a user row. Customers and expenses cascade; income rows
// cascade too, via the users foreign key.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
