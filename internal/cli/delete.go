package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/blossomhq/blossom/internal/client"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task permanently. Asks for confirmation unless --force is set.

Examples:
  blossom delete 3f2a91bc
  blossom delete "Water the tree" --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteForce bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	task, err := findTask(c, args[0])
	if err != nil {
		return err
	}

	if !deleteForce {
		fmt.Printf("Delete %q? [y/N]: ", task.Title)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := c.DeleteTask(task.ID); err != nil {
		return err
	}

	fmt.Printf("🗑  Deleted: %s\n", task.Title)
	return nil
}
