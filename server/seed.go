package server

import (
	"context"
	"errors"

	"github.com/blossomhq/blossom/internal/logger"
	"github.com/blossomhq/blossom/internal/model"
)

// seedDemo creates a demo account with sample tasks for local
// experimentation. Skipped if the demo user already exists.
func (s *Server) seedDemo() error {
	ctx := context.Background()

	result, err := s.auth.Register(ctx, "blossom@example.com", "Blossom123", "CherryBlossomFan")
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil
		}
		return err
	}
	userID := result.User.ID

	garden, err := s.categories.Create(ctx, userID, model.CreateCategoryRequest{Name: "Garden"})
	if err != nil {
		return err
	}

	samples := []model.CreateTaskRequest{
		{
			Title:       "Water the cherry blossom tree",
			Description: "It needs hydration to bloom beautifully",
			Priority:    model.PriorityHigh,
			CategoryID:  garden.ID,
			Subtasks: []model.SubtaskInput{
				{Title: "Fill the watering can"},
				{Title: "Water at the roots"},
			},
		},
		{
			Title:       "Plan cherry blossom viewing party",
			Description: "Invite friends for hanami (flower viewing)",
			Priority:    model.PriorityMedium,
			Tags:        []string{"social", "spring"},
		},
		{
			Title:       "Learn about sakura varieties",
			Description: "Research different types of cherry blossoms",
			Priority:    model.PriorityLow,
			Status:      model.StatusCompleted,
		},
		{
			Title:       "Buy gardening tools",
			Description: "Pruning shears and watering can for blossom care",
			Priority:    model.PriorityHigh,
			CategoryID:  garden.ID,
		},
		{
			Title:       "Design Blossom app logo",
			Description: "Create cherry blossom themed logo for our app",
			Priority:    model.PriorityMedium,
			Status:      model.StatusInProgress,
		},
	}

	for _, req := range samples {
		if _, err := s.tasks.Create(ctx, userID, req); err != nil {
			return err
		}
	}

	logger.Info("demo garden seeded", logger.F("email", "blossom@example.com"))
	return nil
}
