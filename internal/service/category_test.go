package service

import (
	"context"
	"errors"
	"testing"

	"github.com/blossomhq/blossom/internal/model"
)

func TestCreateCategoryDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.register(t, "sakura@example.com")

	cat, err := f.cats.Create(ctx, userID, model.CreateCategoryRequest{Name: "  Garden  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cat.Name != "Garden" {
		t.Errorf("name not trimmed: %q", cat.Name)
	}
	if cat.Color != model.DefaultCategoryColor || cat.Icon != model.DefaultCategoryIcon {
		t.Errorf("defaults = %q/%q", cat.Color, cat.Icon)
	}

	if _, err := f.cats.Create(ctx, userID, model.CreateCategoryRequest{Name: "   "}); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("blank name: want ErrValidation, got %v", err)
	}
}

func TestCreateCategoryDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.register(t, "sakura@example.com")

	if _, err := f.cats.Create(ctx, userID, model.CreateCategoryRequest{Name: "Garden"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.cats.Create(ctx, userID, model.CreateCategoryRequest{Name: "Garden"}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestUpdateCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.register(t, "sakura@example.com")

	cat, err := f.cats.Create(ctx, userID, model.CreateCategoryRequest{Name: "Garden"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Backyard"
	updated, err := f.cats.Update(ctx, cat.ID, userID, model.UpdateCategoryRequest{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Backyard" {
		t.Errorf("Name = %q", updated.Name)
	}
	if updated.Color != cat.Color {
		t.Errorf("absent color was touched: %q", updated.Color)
	}
}

func TestUpdateCategoryRenameConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.register(t, "sakura@example.com")

	if _, err := f.cats.Create(ctx, userID, model.CreateCategoryRequest{Name: "Garden"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	other, err := f.cats.Create(ctx, userID, model.CreateCategoryRequest{Name: "Work"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Garden"
	if _, err := f.cats.Update(ctx, other.ID, userID, model.UpdateCategoryRequest{Name: &name}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestDeleteCategoryDetachesTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.register(t, "sakura@example.com")

	cat, err := f.cats.Create(ctx, userID, model.CreateCategoryRequest{Name: "Garden"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	task := f.createTask(t, userID, model.CreateTaskRequest{Title: "Rake", CategoryID: cat.ID})

	deleted, err := f.cats.Delete(ctx, cat.ID, userID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.Name != "Garden" {
		t.Errorf("deleted = %+v", deleted)
	}

	got, err := f.tasks.Get(ctx, task.ID, userID)
	if err != nil {
		t.Fatalf("task lost: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("task still references deleted category: %v", *got.CategoryID)
	}
}

func TestCategoryCrossUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "owner@example.com")
	intruder := f.register(t, "intruder@example.com")

	cat, err := f.cats.Create(ctx, owner, model.CreateCategoryRequest{Name: "Garden"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Hijacked"
	if _, err := f.cats.Update(ctx, cat.ID, intruder, model.UpdateCategoryRequest{Name: &name}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("cross-user update: want ErrNotFound, got %v", err)
	}
	if _, err := f.cats.Delete(ctx, cat.ID, intruder); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("cross-user delete: want ErrNotFound, got %v", err)
	}
}
