package model

import "encoding/json"

// Optional is a request field that distinguishes "absent" from an explicit
// JSON null: absent leaves the stored value unchanged, null clears it.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON marks the field as set. A JSON null leaves Value nil.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// RegisterRequest is the body for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body for POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SubtaskInput is a subtask as supplied by clients.
type SubtaskInput struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// CreateTaskRequest is the body for POST /api/tasks. DueDate accepts either
// a bare YYYY-MM-DD date (interpreted as UTC midnight) or a full timestamp.
type CreateTaskRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Priority    string         `json:"priority"`
	DueDate     string         `json:"dueDate"`
	CategoryID  string         `json:"categoryId"`
	Tags        []string       `json:"tags"`
	Subtasks    []SubtaskInput `json:"subtasks"`
}

// UpdateTaskRequest is the body for PUT /api/tasks/:id. Pointer and
// Optional fields that are absent leave the stored value alone; a null
// DueDate or CategoryID clears it. Supplying Subtasks replaces the whole
// list.
type UpdateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Status      *string          `json:"status"`
	Priority    *string          `json:"priority"`
	DueDate     Optional[string] `json:"dueDate"`
	CategoryID  Optional[string] `json:"categoryId"`
	Tags        *[]string        `json:"tags"`
	Subtasks    *[]SubtaskInput  `json:"subtasks"`
}

// ToggleRequest is the body for PATCH /api/tasks/:id/toggle.
type ToggleRequest struct {
	Completed bool `json:"completed"`
}

// CreateCategoryRequest is the body for POST /api/categories.
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// UpdateCategoryRequest is the body for PUT /api/categories/:id.
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// TaskFilter narrows task listings.
type TaskFilter struct {
	Status     string
	Priority   string
	CategoryID string
}

// Stats summarizes a user's non-archived tasks.
type Stats struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	Pending        int            `json:"pending"`
	InProgress     int            `json:"inProgress"`
	Overdue        int            `json:"overdue"`
	ByPriority     map[string]int `json:"byPriority"`
	CompletionRate int            `json:"completionRate"`
}
