package cli

import (
	"fmt"
	"strings"

	"github.com/blossomhq/blossom/internal/client"
	"github.com/blossomhq/blossom/internal/model"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show garden statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	stats, err := c.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("\n🌸 Garden report\n")
	fmt.Println(strings.Repeat("─", 36))
	fmt.Printf("  Total        %d\n", stats.Total)
	fmt.Printf("  Completed    %d\n", stats.Completed)
	fmt.Printf("  In progress  %d\n", stats.InProgress)
	fmt.Printf("  Pending      %d\n", stats.Pending)
	if stats.Overdue > 0 {
		fmt.Printf("  Overdue      %s\n", overdueStyle.Render(fmt.Sprintf("%d", stats.Overdue)))
	} else {
		fmt.Printf("  Overdue      0\n")
	}
	fmt.Println()
	for _, p := range []string{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
		fmt.Printf("  %-11s  %d\n", renderPriority(p), stats.ByPriority[p])
	}
	fmt.Println()
	fmt.Printf("  Bloom: %s\n", renderBloom(stats.CompletionRate))
	fmt.Println()
	return nil
}

func renderBloom(rate int) string {
	filled := rate / 10
	bar := strings.Repeat("🌸", filled) + strings.Repeat("·", 10-filled)
	return fmt.Sprintf("%s %d%%", bar, rate)
}
