package cli

import (
	"fmt"

	"github.com/blossomhq/blossom/internal/client"
	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive completed tasks",
	Long: `Move all completed tasks into the archive, or list what is
already archived.

Examples:
  blossom archive
  blossom archive --list`,
	RunE: runArchive,
}

var archiveList bool

func init() {
	archiveCmd.Flags().BoolVarP(&archiveList, "list", "l", false, "Show archived tasks")
}

func runArchive(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	if archiveList {
		tasks, err := c.ArchivedTasks()
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("The archive is empty")
			return nil
		}
		printTasks("🍂 Archived petals", tasks)
		return nil
	}

	count, err := c.ArchiveCompleted()
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("Nothing to archive, finish some tasks first")
		return nil
	}
	fmt.Printf("🍂 Archived %d completed task(s)\n", count)
	return nil
}

var restoreCmd = &cobra.Command{
	Use:   "restore [task]",
	Short: "Restore a task from the archive",
	Long: `Bring an archived task back into the garden as pending.

Examples:
  blossom restore 3f2a91bc`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	archived, err := c.ArchivedTasks()
	if err != nil {
		return err
	}
	task, err := matchTask(archived, args[0])
	if err != nil {
		return err
	}

	restored, err := c.RestoreTask(task.ID)
	if err != nil {
		return err
	}

	fmt.Printf("🌱 Restored: %s\n", titleStyle.Render(restored.Title))
	return nil
}
