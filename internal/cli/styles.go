package cli

import (
	"github.com/blossomhq/blossom/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Cherry blossom palette
var (
	colorHigh      = lipgloss.Color("#FF6B6B")
	colorMedium    = lipgloss.Color("#FFB347")
	colorLow       = lipgloss.Color("#4ECDC4")
	colorCompleted = lipgloss.Color("#95E1A3")
	colorOverdue   = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#888888")
	colorBlossom   = lipgloss.Color("#FFB7C5")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlossom)

	completedStyle = lipgloss.NewStyle().
			Foreground(colorCompleted).
			Strikethrough(true)

	overdueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorOverdue)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

var priorityStyles = map[string]lipgloss.Style{
	model.PriorityHigh:   lipgloss.NewStyle().Bold(true).Foreground(colorHigh),
	model.PriorityMedium: lipgloss.NewStyle().Foreground(colorMedium),
	model.PriorityLow:    lipgloss.NewStyle().Foreground(colorLow),
}

func renderPriority(priority string) string {
	style, ok := priorityStyles[priority]
	if !ok {
		return priority
	}
	return style.Render(priority)
}
