package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blossomhq/blossom/internal/model"
)

// UserStore persists user accounts.
type UserStore struct {
	db *DB
}

// NewUserStore creates a UserStore.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a user. A duplicate email yields model.ErrConflict.
func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	_, err := s.db.ExecContext(ctx, s.db.rebind(`
		INSERT INTO users (id, email, username, password_hash, theme, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`),
		u.ID, u.Email, u.Username, u.PasswordHash, u.Theme, formatTime(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: a garden already exists with this email", model.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByEmail looks a user up by normalized email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, s.db.rebind(`
		SELECT id, email, username, password_hash, theme, created_at
		FROM users WHERE email = ?`), email))
}

// GetByID looks a user up by id.
func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.scanOne(s.db.QueryRowContext(ctx, s.db.rebind(`
		SELECT id, email, username, password_hash, theme, created_at
		FROM users WHERE id = ?`), id))
}

func (s *UserStore) scanOne(row *sql.Row) (*model.User, error) {
	var u model.User
	var createdAt string
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Theme, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", model.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}
