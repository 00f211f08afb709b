package model

import (
	"testing"
	"time"
)

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{Status: StatusPending}, false},
		{"due in the past", Task{Status: StatusPending, DueDate: &past}, true},
		{"due in the future", Task{Status: StatusPending, DueDate: &future}, false},
		{"completed past due", Task{Status: StatusCompleted, DueDate: &past}, false},
		{"archived past due", Task{Status: StatusArchived, DueDate: &past}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask("id-1", "user-1", "Plant a tree")
	if task.Status != StatusPending {
		t.Errorf("Status = %q", task.Status)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("Priority = %q", task.Priority)
	}
	if task.Tags == nil {
		t.Error("Tags is nil, want empty slice")
	}
}

func TestValidStatusAndPriority(t *testing.T) {
	for _, s := range []string{StatusPending, StatusInProgress, StatusCompleted, StatusArchived} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("done") {
		t.Error(`ValidStatus("done") = true`)
	}
	for _, p := range []string{PriorityLow, PriorityMedium, PriorityHigh} {
		if !ValidPriority(p) {
			t.Errorf("ValidPriority(%q) = false", p)
		}
	}
	if ValidPriority("urgent") {
		t.Error(`ValidPriority("urgent") = true`)
	}
}
