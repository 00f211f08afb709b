package cli

import (
	"fmt"
	"strings"

	"github.com/blossomhq/blossom/internal/client"
	"github.com/blossomhq/blossom/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List your tasks, optionally filtered by status, priority or category.

Examples:
  blossom list
  blossom list --status pending
  blossom list -p high
  blossom list --category Garden`,
	RunE: runList,
}

var (
	listStatus   string
	listPriority string
	listCategory string
)

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "S", "", "Filter by status (pending, in-progress, completed)")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "Filter by priority (low, medium, high)")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category name")
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	filter := model.TaskFilter{
		Status:   listStatus,
		Priority: listPriority,
	}
	if listCategory != "" {
		id, err := resolveCategory(c, listCategory)
		if err != nil {
			return err
		}
		filter.CategoryID = id
	}

	tasks, err := c.Tasks(filter)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("Your garden is empty. Plant one with: blossom add \"Your task\"")
		return nil
	}

	printTasks("🌸 Your garden", tasks)
	return nil
}

func printTasks(heading string, tasks []model.Task) {
	pending := 0
	for _, t := range tasks {
		if t.Status != model.StatusCompleted {
			pending++
		}
	}

	fmt.Printf("\n%s (%d pending)\n", heading, pending)
	fmt.Println(strings.Repeat("─", 72))

	for i, t := range tasks {
		printTask(i+1, t)
	}
	fmt.Println()
}

func printTask(num int, t model.Task) {
	icon := "[ ]"
	if t.Status == model.StatusCompleted {
		icon = "[x]"
	} else if t.Status == model.StatusInProgress {
		icon = "[~]"
	}

	title := t.Title
	if len(title) > 40 {
		title = title[:37] + "..."
	}
	if t.Status == model.StatusCompleted {
		title = completedStyle.Render(title)
	}

	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Local().Format("Jan 2")
		if t.Overdue {
			due = overdueStyle.Render(due + " !")
		}
	}

	shortID := t.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	extra := ""
	if t.Category != nil {
		extra = mutedStyle.Render(t.Category.Icon + " " + t.Category.Name)
	}
	if len(t.Subtasks) > 0 {
		done := 0
		for _, s := range t.Subtasks {
			if s.Completed {
				done++
			}
		}
		extra += mutedStyle.Render(fmt.Sprintf(" [%d/%d]", done, len(t.Subtasks)))
	}
	if len(t.Tags) > 0 {
		extra += mutedStyle.Render(" #" + strings.Join(t.Tags, " #"))
	}

	fmt.Printf("  %s  %-8s  %-40s  %-12s  %-8s %s\n",
		icon, shortID, title, due, renderPriority(t.Priority), extra)
}

// matchTask resolves an id prefix or exact title against the given tasks.
func matchTask(tasks []model.Task, key string) (*model.Task, error) {
	var found *model.Task
	for i := range tasks {
		t := &tasks[i]
		if t.ID == key || strings.HasPrefix(t.ID, key) || strings.EqualFold(t.Title, key) {
			if found != nil {
				return nil, fmt.Errorf("%q matches more than one task, use a longer id", key)
			}
			found = t
		}
	}
	if found == nil {
		return nil, fmt.Errorf("no task matching %q", key)
	}
	return found, nil
}

// findTask fetches current tasks and resolves key against them.
func findTask(c *client.Client, key string) (*model.Task, error) {
	tasks, err := c.Tasks(model.TaskFilter{})
	if err != nil {
		return nil, err
	}
	return matchTask(tasks, key)
}
