package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blossomhq/blossom/internal/model"
)

// CategoryStore persists categories. Every read and write is scoped to the
// owning user.
type CategoryStore struct {
	db *DB
}

// NewCategoryStore creates a CategoryStore.
func NewCategoryStore(db *DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// ListByUser returns the user's categories ordered by name.
func (s *CategoryStore) ListByUser(ctx context.Context, userID string) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, s.db.rebind(`
		SELECT id, user_id, name, color, icon, created_at, updated_at
		FROM categories WHERE user_id = ? ORDER BY name ASC`), userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

// GetByID returns a category owned by userID, or model.ErrNotFound.
func (s *CategoryStore) GetByID(ctx context.Context, id, userID string) (*model.Category, error) {
	row := s.db.QueryRowContext(ctx, s.db.rebind(`
		SELECT id, user_id, name, color, icon, created_at, updated_at
		FROM categories WHERE id = ? AND user_id = ?`), id, userID)

	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: category", model.ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

// Create inserts a category. A duplicate (user, name) pair yields
// model.ErrConflict.
func (s *CategoryStore) Create(ctx context.Context, c *model.Category) error {
	_, err := s.db.ExecContext(ctx, s.db.rebind(`
		INSERT INTO categories (id, user_id, name, color, icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		c.ID, c.UserID, c.Name, c.Color, c.Icon, formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: you already have a category with this name", model.ErrConflict)
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// Update saves name, color and icon of an owned category.
func (s *CategoryStore) Update(ctx context.Context, c *model.Category) error {
	res, err := s.db.ExecContext(ctx, s.db.rebind(`
		UPDATE categories SET name = ?, color = ?, icon = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`),
		c.Name, c.Color, c.Icon, formatTime(c.UpdatedAt), c.ID, c.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: you already have a category with this name", model.ErrConflict)
		}
		return fmt.Errorf("update category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: category", model.ErrNotFound)
	}
	return nil
}

// Delete removes an owned category and nulls the category reference of
// every task that pointed at it, in one transaction.
func (s *CategoryStore) Delete(ctx context.Context, id, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.db.rebind(`
		UPDATE tasks SET category_id = NULL WHERE category_id = ? AND user_id = ?`), id, userID); err != nil {
		return fmt.Errorf("detach tasks: %w", err)
	}

	res, err := tx.ExecContext(ctx, s.db.rebind(`
		DELETE FROM categories WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: category", model.ErrNotFound)
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*model.Category, error) {
	var c model.Category
	var createdAt, updatedAt string
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}
