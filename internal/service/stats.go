package service

import (
	"context"
	"math"
	"time"

	"github.com/blossomhq/blossom/internal/model"
	"github.com/blossomhq/blossom/internal/store"
)

// StatsService aggregates task counts for a user. Numbers are computed
// from the store on every call; task state changes invalidate any cached
// view immediately, so there is none.
type StatsService struct {
	tasks *store.TaskStore
}

// NewStatsService creates a StatsService.
func NewStatsService(tasks *store.TaskStore) *StatsService {
	return &StatsService{tasks: tasks}
}

// Stats computes counts over the user's non-archived tasks.
func (s *StatsService) Stats(ctx context.Context, userID string) (*model.Stats, error) {
	tasks, err := s.tasks.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stats := &model.Stats{
		ByPriority: map[string]int{
			model.PriorityLow:    0,
			model.PriorityMedium: 0,
			model.PriorityHigh:   0,
		},
	}

	for i := range tasks {
		t := &tasks[i]
		stats.Total++
		switch t.Status {
		case model.StatusCompleted:
			stats.Completed++
		case model.StatusInProgress:
			stats.InProgress++
		default:
			stats.Pending++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
		stats.ByPriority[t.Priority]++
	}

	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(100 * float64(stats.Completed) / float64(stats.Total)))
	}

	return stats, nil
}
