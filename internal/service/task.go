package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/blossomhq/blossom/internal/logger"
	"github.com/blossomhq/blossom/internal/model"
	"github.com/blossomhq/blossom/internal/store"
	"github.com/google/uuid"
)

var bareDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// TaskService implements the task lifecycle: create, update, toggle,
// archive and restore. Every operation is scoped to the calling user;
// somebody else's task is simply not found.
type TaskService struct {
	tasks      *store.TaskStore
	categories *store.CategoryStore
}

// NewTaskService creates a TaskService.
func NewTaskService(tasks *store.TaskStore, categories *store.CategoryStore) *TaskService {
	return &TaskService{tasks: tasks, categories: categories}
}

// List returns the user's tasks with the overdue flag computed. Archived
// tasks only show up when the filter asks for them.
func (s *TaskService) List(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error) {
	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		return nil, fmt.Errorf("%w: invalid status filter", model.ErrValidation)
	}
	if filter.Priority != "" && !model.ValidPriority(filter.Priority) {
		return nil, fmt.Errorf("%w: invalid priority filter", model.ErrValidation)
	}

	tasks, err := s.tasks.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	decorateOverdue(tasks, time.Now().UTC())
	return tasks, nil
}

// ListArchived lists the archive, most-recently-updated first.
func (s *TaskService) ListArchived(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error) {
	filter.Status = model.StatusArchived
	return s.List(ctx, userID, filter)
}

// Get returns one owned task.
func (s *TaskService) Get(ctx context.Context, id, userID string) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	task.Overdue = task.IsOverdue(time.Now().UTC())
	return task, nil
}

// Create validates and persists a new task. Subtasks, if any, are created
// atomically with it.
func (s *TaskService) Create(ctx context.Context, userID string, req model.CreateTaskRequest) (*model.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if len(title) > model.MaxTitleLength {
		return nil, fmt.Errorf("%w: title must not exceed %d characters", model.ErrValidation, model.MaxTitleLength)
	}

	task := model.NewTask(uuid.NewString(), userID, title)
	task.Description = strings.TrimSpace(req.Description)

	if req.Status != "" {
		if !model.ValidStatus(req.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", model.ErrValidation, req.Status)
		}
		task.Status = req.Status
	}
	if req.Priority != "" {
		if !model.ValidPriority(req.Priority) {
			return nil, fmt.Errorf("%w: invalid priority %q", model.ErrValidation, req.Priority)
		}
		task.Priority = req.Priority
	}
	if req.Tags != nil {
		task.Tags = req.Tags
	}

	if req.DueDate != "" {
		due, err := ParseDueDate(req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = due
	}

	if req.CategoryID != "" {
		if _, err := s.categories.GetByID(ctx, req.CategoryID, userID); err != nil {
			return nil, err
		}
		categoryID := req.CategoryID
		task.CategoryID = &categoryID
	}

	for _, st := range req.Subtasks {
		stTitle := strings.TrimSpace(st.Title)
		if stTitle == "" {
			return nil, fmt.Errorf("%w: subtask title is required", model.ErrValidation)
		}
		task.Subtasks = append(task.Subtasks, model.Subtask{
			ID:        uuid.NewString(),
			TaskID:    task.ID,
			Title:     stTitle,
			Completed: st.Completed,
		})
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}

	logger.Info("task created", logger.F("task", task.ID), logger.F("user", userID))
	return s.Get(ctx, task.ID, userID)
}

// Update applies a partial update. Absent fields are left alone; a null
// dueDate or categoryId clears the value; a supplied subtask list replaces
// the stored one wholesale.
func (s *TaskService) Update(ctx context.Context, id, userID string, req model.UpdateTaskRequest) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", model.ErrValidation)
		}
		if len(title) > model.MaxTitleLength {
			return nil, fmt.Errorf("%w: title must not exceed %d characters", model.ErrValidation, model.MaxTitleLength)
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", model.ErrValidation, *req.Status)
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if !model.ValidPriority(*req.Priority) {
			return nil, fmt.Errorf("%w: invalid priority %q", model.ErrValidation, *req.Priority)
		}
		task.Priority = *req.Priority
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}

	if req.DueDate.Set {
		if req.DueDate.Value == nil || *req.DueDate.Value == "" {
			task.DueDate = nil
		} else {
			due, err := ParseDueDate(*req.DueDate.Value)
			if err != nil {
				return nil, err
			}
			task.DueDate = due
		}
	}

	if req.CategoryID.Set {
		if req.CategoryID.Value == nil || *req.CategoryID.Value == "" {
			task.CategoryID = nil
		} else {
			if _, err := s.categories.GetByID(ctx, *req.CategoryID.Value, userID); err != nil {
				return nil, err
			}
			task.CategoryID = req.CategoryID.Value
		}
	}

	replaceSubtasks := req.Subtasks != nil
	if replaceSubtasks {
		task.Subtasks = nil
		for _, st := range *req.Subtasks {
			stTitle := strings.TrimSpace(st.Title)
			if stTitle == "" {
				return nil, fmt.Errorf("%w: subtask title is required", model.ErrValidation)
			}
			task.Subtasks = append(task.Subtasks, model.Subtask{
				ID:        uuid.NewString(),
				TaskID:    task.ID,
				Title:     stTitle,
				Completed: st.Completed,
			})
		}
	}

	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, task, replaceSubtasks); err != nil {
		return nil, err
	}

	return s.Get(ctx, id, userID)
}

// Delete hard-deletes an owned task and returns what was deleted.
func (s *TaskService) Delete(ctx context.Context, id, userID string) (*model.Task, error) {
	task, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Delete(ctx, id, userID); err != nil {
		return nil, err
	}
	logger.Info("task deleted", logger.F("task", id), logger.F("user", userID))
	return task, nil
}

// Toggle flips a task between completed and pending. Toggling an already
// completed task to completed is a no-op, not an error.
func (s *TaskService) Toggle(ctx context.Context, id, userID string, completed bool) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if completed {
		task.Status = model.StatusCompleted
	} else {
		task.Status = model.StatusPending
	}

	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, task, false); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, userID)
}

// ArchiveCompleted bulk-archives every completed task. Zero completed
// tasks is a successful no-op.
func (s *TaskService) ArchiveCompleted(ctx context.Context, userID string) (int64, error) {
	n, err := s.tasks.ArchiveCompleted(ctx, userID, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info("tasks archived", logger.F("count", n), logger.F("user", userID))
	}
	return n, nil
}

// Restore moves an archived task back to pending. Only archived tasks can
// be restored.
func (s *TaskService) Restore(ctx context.Context, id, userID string) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if task.Status != model.StatusArchived {
		return nil, fmt.Errorf("%w: only archived tasks can be restored", model.ErrValidation)
	}

	task.Status = model.StatusPending
	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, task, false); err != nil {
		return nil, err
	}
	return s.Get(ctx, id, userID)
}

// ParseDueDate interprets a bare YYYY-MM-DD as UTC midnight of that
// calendar day; anything else must be an RFC 3339 timestamp.
func ParseDueDate(s string) (*time.Time, error) {
	if bareDatePattern.MatchString(s) {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date %q", model.ErrValidation, s)
		}
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date %q", model.ErrValidation, s)
	}
	t = t.UTC()
	return &t, nil
}

func decorateOverdue(tasks []model.Task, now time.Time) {
	for i := range tasks {
		tasks[i].Overdue = tasks[i].IsOverdue(now)
	}
}
