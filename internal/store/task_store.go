package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blossomhq/blossom/internal/model"
)

// TaskStore persists tasks and their subtasks. Every read and write is
// scoped to the owning user.
type TaskStore struct {
	db *DB
}

// NewTaskStore creates a TaskStore.
func NewTaskStore(db *DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskColumns = `
	t.id, t.user_id, t.category_id, t.title, t.description, t.status,
	t.priority, t.due_date, t.tags, t.created_at, t.updated_at,
	c.id, c.name, c.color, c.icon, c.created_at, c.updated_at`

const taskSelect = `
	SELECT ` + taskColumns + `
	FROM tasks t
	LEFT JOIN categories c ON c.id = t.category_id`

// List returns the user's tasks. With an empty Status filter archived
// tasks are excluded; filtering for "archived" lists the archive,
// most-recently-updated first. Everything else is newest-created first.
func (s *TaskStore) List(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error) {
	query := taskSelect + ` WHERE t.user_id = ?`
	args := []any{userID}

	if filter.Status == "" {
		query += ` AND t.status != ?`
		args = append(args, model.StatusArchived)
	} else {
		query += ` AND t.status = ?`
		args = append(args, filter.Status)
	}
	if filter.Priority != "" {
		query += ` AND t.priority = ?`
		args = append(args, filter.Priority)
	}
	if filter.CategoryID != "" {
		query += ` AND t.category_id = ?`
		args = append(args, filter.CategoryID)
	}

	if filter.Status == model.StatusArchived {
		query += ` ORDER BY t.updated_at DESC`
	} else {
		query += ` ORDER BY t.created_at DESC`
	}

	return s.queryTasks(ctx, query, args...)
}

// Recent returns the user's newest tasks, up to limit.
func (s *TaskStore) Recent(ctx context.Context, userID string, limit int) ([]model.Task, error) {
	return s.queryTasks(ctx, taskSelect+` WHERE t.user_id = ? ORDER BY t.created_at DESC LIMIT ?`, userID, limit)
}

// ListActive returns every non-archived task of the user, for statistics.
func (s *TaskStore) ListActive(ctx context.Context, userID string) ([]model.Task, error) {
	return s.queryTasks(ctx, taskSelect+` WHERE t.user_id = ? AND t.status != ?`, userID, model.StatusArchived)
}

// CountByUser returns how many non-archived tasks the user has.
func (s *TaskStore) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.db.rebind(`
		SELECT COUNT(*) FROM tasks WHERE user_id = ? AND status != ?`),
		userID, model.StatusArchived,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

// GetByID returns a task owned by userID with its category and subtasks,
// or model.ErrNotFound.
func (s *TaskStore) GetByID(ctx context.Context, id, userID string) (*model.Task, error) {
	tasks, err := s.queryTasks(ctx, taskSelect+` WHERE t.id = ? AND t.user_id = ?`, id, userID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: task", model.ErrNotFound)
	}
	return &tasks[0], nil
}

// Create inserts a task and its subtasks atomically.
func (s *TaskStore) Create(ctx context.Context, t *model.Task) error {
	tags, err := json.Marshal(t.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.db.rebind(`
		INSERT INTO tasks (id, user_id, category_id, title, description, status, priority, due_date, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		t.ID, t.UserID, t.CategoryID, t.Title, t.Description, t.Status, t.Priority,
		nullableTime(t.DueDate), string(tags), formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	if err := s.insertSubtasks(ctx, tx, t.ID, t.Subtasks); err != nil {
		return err
	}

	return tx.Commit()
}

// Update saves the task row. When replaceSubtasks is set the stored
// subtask list is deleted and recreated from t.Subtasks in the same
// transaction, so readers never observe a partial list.
func (s *TaskStore) Update(ctx context.Context, t *model.Task, replaceSubtasks bool) error {
	tags, err := json.Marshal(t.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.db.rebind(`
		UPDATE tasks SET category_id = ?, title = ?, description = ?, status = ?,
			priority = ?, due_date = ?, tags = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`),
		t.CategoryID, t.Title, t.Description, t.Status, t.Priority,
		nullableTime(t.DueDate), string(tags), formatTime(t.UpdatedAt), t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: task", model.ErrNotFound)
	}

	if replaceSubtasks {
		if _, err := tx.ExecContext(ctx, s.db.rebind(`DELETE FROM subtasks WHERE task_id = ?`), t.ID); err != nil {
			return fmt.Errorf("replace subtasks: %w", err)
		}
		if err := s.insertSubtasks(ctx, tx, t.ID, t.Subtasks); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete hard-deletes an owned task. Subtasks go with it via cascade.
func (s *TaskStore) Delete(ctx context.Context, id, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	defer tx.Rollback()

	// Postgres has no PRAGMA foreign_keys; delete subtasks explicitly so
	// both drivers behave the same.
	if _, err := tx.ExecContext(ctx, s.db.rebind(`
		DELETE FROM subtasks WHERE task_id IN (SELECT id FROM tasks WHERE id = ? AND user_id = ?)`), id, userID); err != nil {
		return fmt.Errorf("delete subtasks: %w", err)
	}

	res, err := tx.ExecContext(ctx, s.db.rebind(`DELETE FROM tasks WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: task", model.ErrNotFound)
	}

	return tx.Commit()
}

// ArchiveCompleted bulk-moves every completed task of the user to the
// archive in a single statement and returns how many moved.
func (s *TaskStore) ArchiveCompleted(ctx context.Context, userID string, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.db.rebind(`
		UPDATE tasks SET status = ?, updated_at = ? WHERE user_id = ? AND status = ?`),
		model.StatusArchived, formatTime(now), userID, model.StatusCompleted,
	)
	if err != nil {
		return 0, fmt.Errorf("archive completed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("archive completed: %w", err)
	}
	return n, nil
}

func (s *TaskStore) insertSubtasks(ctx context.Context, tx *sql.Tx, taskID string, subtasks []model.Subtask) error {
	for i, st := range subtasks {
		completed := 0
		if st.Completed {
			completed = 1
		}
		_, err := tx.ExecContext(ctx, s.db.rebind(`
			INSERT INTO subtasks (id, task_id, title, completed, position)
			VALUES (?, ?, ?, ?, ?)`),
			st.ID, taskID, st.Title, completed, i,
		)
		if err != nil {
			return fmt.Errorf("insert subtask: %w", err)
		}
	}
	return nil
}

func (s *TaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, s.db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	for i := range tasks {
		subtasks, err := s.loadSubtasks(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Subtasks = subtasks
	}

	return tasks, nil
}

func (s *TaskStore) loadSubtasks(ctx context.Context, taskID string) ([]model.Subtask, error) {
	rows, err := s.db.QueryContext(ctx, s.db.rebind(`
		SELECT id, task_id, title, completed, position
		FROM subtasks WHERE task_id = ? ORDER BY position ASC`), taskID)
	if err != nil {
		return nil, fmt.Errorf("load subtasks: %w", err)
	}
	defer rows.Close()

	subtasks := []model.Subtask{}
	for rows.Next() {
		var st model.Subtask
		var completed int
		if err := rows.Scan(&st.ID, &st.TaskID, &st.Title, &completed, &st.Position); err != nil {
			return nil, fmt.Errorf("scan subtask: %w", err)
		}
		st.Completed = completed != 0
		subtasks = append(subtasks, st)
	}
	return subtasks, rows.Err()
}

func scanTask(rows *sql.Rows) (*model.Task, error) {
	var t model.Task
	var categoryID, dueDate sql.NullString
	var tags, createdAt, updatedAt string
	var catID, catName, catColor, catIcon, catCreated, catUpdated sql.NullString

	err := rows.Scan(
		&t.ID, &t.UserID, &categoryID, &t.Title, &t.Description, &t.Status,
		&t.Priority, &dueDate, &tags, &createdAt, &updatedAt,
		&catID, &catName, &catColor, &catIcon, &catCreated, &catUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}

	if categoryID.Valid {
		t.CategoryID = &categoryID.String
	}
	if dueDate.Valid {
		due := parseTime(dueDate.String)
		t.DueDate = &due
	}
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		t.Tags = []string{}
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)

	if catID.Valid {
		t.Category = &model.Category{
			ID:        catID.String,
			UserID:    t.UserID,
			Name:      catName.String,
			Color:     catColor.String,
			Icon:      catIcon.String,
			CreatedAt: parseTime(catCreated.String),
			UpdatedAt: parseTime(catUpdated.String),
		}
	}

	return &t, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}
