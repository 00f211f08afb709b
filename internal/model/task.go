package model

import "time"

// Task status values
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusArchived   = "archived"
)

// Task priority levels
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// MaxTitleLength bounds task titles.
const MaxTitleLength = 200

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single todo item
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	CategoryID  *string    `json:"categoryId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags"`
	Subtasks    []Subtask  `json:"subtasks"`
	Category    *Category  `json:"category,omitempty"`
	Overdue     bool       `json:"overdue"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Subtask belongs to exactly one task. The list is replaced wholesale on
// update, never merged.
type Subtask struct {
	ID        string `json:"id"`
	TaskID    string `json:"-"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Position  int    `json:"-"`
}

// IsOverdue reports whether the task is past its due date and not done.
// Derived on every read, never stored.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == StatusCompleted {
		return false
	}
	return t.DueDate.Before(now)
}

// NewTask creates a task with defaults applied.
func NewTask(id, userID, title string) Task {
	now := time.Now().UTC()
	return Task{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Status:    StatusPending,
		Priority:  PriorityMedium,
		Tags:      []string{},
		Subtasks:  []Subtask{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
