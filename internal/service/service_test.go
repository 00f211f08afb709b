package service

import (
	"context"
	"testing"
	"time"

	"github.com/blossomhq/blossom/internal/auth"
	"github.com/blossomhq/blossom/internal/model"
	"github.com/blossomhq/blossom/internal/store"
)

// fixture wires every service against a fresh in-memory database.
type fixture struct {
	db         *store.DB
	users      *store.UserStore
	taskStore  *store.TaskStore
	categories *store.CategoryStore
	auth       *AuthService
	tasks      *TaskService
	cats       *CategoryService
	stats      *StatsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := store.NewUserStore(db)
	taskStore := store.NewTaskStore(db)
	categories := store.NewCategoryStore(db)
	hasher := auth.NewHasher(4)
	tokens := auth.NewTokenService("test-secret", time.Hour, 2*time.Hour)

	return &fixture{
		db:         db,
		users:      users,
		taskStore:  taskStore,
		categories: categories,
		auth:       NewAuthService(users, taskStore, hasher, tokens),
		tasks:      NewTaskService(taskStore, categories),
		cats:       NewCategoryService(categories),
		stats:      NewStatsService(taskStore),
	}
}

// register creates an account and returns the user id.
func (f *fixture) register(t *testing.T, email string) string {
	t.Helper()
	result, err := f.auth.Register(context.Background(), email, "Blossom1", "")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return result.User.ID
}

// createTask adds a task for the user and returns it.
func (f *fixture) createTask(t *testing.T, userID string, req model.CreateTaskRequest) *model.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}
