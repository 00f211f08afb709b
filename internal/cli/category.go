package cli

import (
	"fmt"
	"strings"

	"github.com/blossomhq/blossom/internal/client"
	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCategoryList(cmd, args)
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE:  runCategoryList,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a category",
	Long: `Create a category.

Examples:
  blossom category add Garden
  blossom category add Work --color "#4ECDC4" --icon 💼`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCategoryAdd,
}

var (
	categoryColor string
	categoryIcon  string
)

func init() {
	categoryAddCmd.Flags().StringVar(&categoryColor, "color", "", "Hex color, defaults to cherry blossom pink")
	categoryAddCmd.Flags().StringVar(&categoryIcon, "icon", "", "Icon, defaults to 🌸")

	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	categories, err := c.Categories()
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Println("No categories yet. Add one with: blossom category add Garden")
		return nil
	}

	fmt.Println()
	for _, cat := range categories {
		fmt.Printf("  %s %s  %s\n", cat.Icon, titleStyle.Render(cat.Name), mutedStyle.Render(cat.Color))
	}
	fmt.Println()
	return nil
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	c, err := client.New()
	if err != nil {
		return err
	}

	created, err := c.CreateCategory(strings.Join(args, " "), categoryColor, categoryIcon)
	if err != nil {
		return err
	}

	fmt.Printf("%s Created category: %s\n", created.Icon, titleStyle.Render(created.Name))
	return nil
}
