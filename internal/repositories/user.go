package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"chinook/internal/models"
)

// UserRepository serves user lookups. Accounts are provisioned out of
// band (seed data or an external identity system); this repository only
// needs Find plus a Create used by tooling and tests.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Find retrieves a user by id. Returns (nil, nil) when no user has the
// given id.
func (r *UserRepository) Find(ctx context.Context, userID string) (*models.User, error) {
	var (
		u           models.User
		email       sql.NullString
		displayName sql.NullString
	)

	err := r.db.QueryRowContext(ctx, "SELECT id, email, display_name FROM users WHERE id = ?", userID).
		Scan(&u.ID, &email, &displayName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	u.Email = email.String
	u.DisplayName = displayName.String

	return &u, nil
}

// Create inserts a user row.
func (r *UserRepository) Create(ctx context.Context, u models.User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, email, display_name) VALUES (?, ?, ?)", u.ID, u.Email, u.DisplayName)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}
