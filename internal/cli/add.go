package cli

import (
	"fmt"
	"strings"

	"github.com/blossomhq/blossom/internal/client"
	"github.com/blossomhq/blossom/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task to your garden.

Examples:
  blossom add "Buy gardening tools"
  blossom add "Water the tree" -p high -d 2026-04-10
  blossom add "Plan hanami" -t spring -t social`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addPriority    string
	addDue         string
	addCategory    string
	addTags        []string
	addSubtasks    []string
)

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "D", "", "Task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority (low, medium, high)")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (2026-04-10 or RFC 3339)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category name")
	addCmd.Flags().StringArrayVarP(&addTags, "tag", "t", nil, "Tag (repeatable)")
	addCmd.Flags().StringArrayVarP(&addSubtasks, "subtask", "s", nil, "Subtask title (repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	req := model.CreateTaskRequest{
		Title:       strings.Join(args, " "),
		Description: addDescription,
		Priority:    addPriority,
		DueDate:     addDue,
		Tags:        addTags,
	}
	for _, title := range addSubtasks {
		req.Subtasks = append(req.Subtasks, model.SubtaskInput{Title: title})
	}

	if addCategory != "" {
		id, err := resolveCategory(c, addCategory)
		if err != nil {
			return err
		}
		req.CategoryID = id
	}

	task, err := c.CreateTask(req)
	if err != nil {
		return err
	}

	fmt.Printf("🌸 Added: %s (%s)\n", titleStyle.Render(task.Title), renderPriority(task.Priority))
	return nil
}

// resolveCategory maps a category name to its id, case-insensitively.
func resolveCategory(c *client.Client, name string) (string, error) {
	categories, err := c.Categories()
	if err != nil {
		return "", err
	}
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, name) {
			return cat.ID, nil
		}
	}
	return "", fmt.Errorf("no category named %q; create it with: blossom category add %q", name, name)
}
