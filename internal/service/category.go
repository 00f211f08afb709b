package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/blossomhq/blossom/internal/logger"
	"github.com/blossomhq/blossom/internal/model"
	"github.com/blossomhq/blossom/internal/store"
	"github.com/google/uuid"
)

// CategoryService manages per-user categories. Names are trimmed and
// unique within a user's garden.
type CategoryService struct {
	categories *store.CategoryStore
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categories *store.CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// List returns the user's categories, alphabetical by name.
func (s *CategoryService) List(ctx context.Context, userID string) ([]model.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}

// Create adds a category with color and icon defaults.
func (s *CategoryService) Create(ctx context.Context, userID string, req model.CreateCategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", model.ErrValidation)
	}

	now := time.Now().UTC()
	category := &model.Category{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Color:     req.Color,
		Icon:      req.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if category.Color == "" {
		category.Color = model.DefaultCategoryColor
	}
	if category.Icon == "" {
		category.Icon = model.DefaultCategoryIcon
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	logger.Info("category created", logger.F("category", category.Name), logger.F("user", userID))
	return category, nil
}

// Update applies a partial update. Renaming onto another category of the
// same user is a conflict.
func (s *CategoryService) Update(ctx context.Context, id, userID string, req model.UpdateCategoryRequest) (*model.Category, error) {
	category, err := s.categories.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category name is required", model.ErrValidation)
		}
		category.Name = name
	}
	if req.Color != nil && *req.Color != "" {
		category.Color = *req.Color
	}
	if req.Icon != nil && *req.Icon != "" {
		category.Icon = *req.Icon
	}

	category.UpdatedAt = time.Now().UTC()
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes an owned category and returns it. Tasks that referenced
// it end up uncategorized, never dangling.
func (s *CategoryService) Delete(ctx context.Context, id, userID string) (*model.Category, error) {
	category, err := s.categories.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Delete(ctx, id, userID); err != nil {
		return nil, err
	}
	logger.Info("category deleted", logger.F("category", category.Name), logger.F("user", userID))
	return category, nil
}
