package cli

import (
	"fmt"

	"github.com/blossomhq/blossom/internal/client"
	"github.com/blossomhq/blossom/internal/model"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task]",
	Short: "Mark a task as completed",
	Long: `Mark a task as completed, or reopen it with --undo.
Tasks can be referenced by id prefix or exact title.

Examples:
  blossom done 3f2a91bc
  blossom done "Water the tree"
  blossom done 3f2a91bc --undo`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

var doneUndo bool

func init() {
	doneCmd.Flags().BoolVarP(&doneUndo, "undo", "u", false, "Reopen a completed task")
}

func runDone(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	task, err := findTask(c, args[0])
	if err != nil {
		return err
	}

	updated, err := c.ToggleTask(task.ID, !doneUndo)
	if err != nil {
		return err
	}

	if updated.Status == model.StatusCompleted {
		fmt.Printf("✓ Done: %s\n", completedStyle.Render(updated.Title))
	} else {
		fmt.Printf("○ Reopened: %s\n", titleStyle.Render(updated.Title))
	}
	return nil
}
