package cli

import (
	"fmt"

	"github.com/existflow/taskdeck/internal/api"
	"github.com/existflow/taskdeck/internal/logger"
	"github.com/spf13/cobra"
)

var categoryColor string

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
	Long:  `List, add, rename, and delete task categories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return categoryListCmd.RunE(cmd, args)
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with task counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, _, err := loadClient()
		if err != nil {
			return err
		}

		counts, err := client.CategoryCounts()
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}

		if len(counts) == 0 {
			fmt.Println("No categories.")
			return nil
		}

		for _, c := range counts {
			fmt.Printf("  %-20s %3d task(s)  %s\n", c.Name, c.TaskCount, c.Color)
		}
		return nil
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, _, err := loadClient()
		if err != nil {
			return err
		}

		cat, err := client.CreateCategory(api.CategoryFields{
			Name:  args[0],
			Color: categoryColor,
		})
		if err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}

		logger.Info("Category created via CLI", logger.F("category_id", cat.ID))
		fmt.Printf("Added category: %s (%s)\n", cat.Name, cat.Color)
		return nil
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename [name] [new-name]",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, _, err := loadClient()
		if err != nil {
			return err
		}

		cat, err := findCategory(client, args[0])
		if err != nil {
			return err
		}

		updated, err := client.UpdateCategory(cat.ID, api.CategoryFields{
			Name:  args[1],
			Color: cat.Color,
		})
		if err != nil {
			return fmt.Errorf("failed to rename category: %w", err)
		}

		fmt.Printf("Renamed %s to %s\n", cat.Name, updated.Name)
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a category",
	Long:  `Delete a category. Tasks in the category are kept and become uncategorized.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, _, err := loadClient()
		if err != nil {
			return err
		}

		cat, err := findCategory(client, args[0])
		if err != nil {
			return err
		}

		if cfg.ConfirmDelete {
			if !confirm(fmt.Sprintf("Delete category %q? Its tasks become uncategorized.", cat.Name)) {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := client.DeleteCategory(cat.ID); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}

		logger.Info("Category deleted via CLI", logger.F("category_id", cat.ID))
		fmt.Printf("Deleted category: %s\n", cat.Name)
		return nil
	},
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryColor, "color", "", "Hex color (e.g. #4ECDC4), assigned from the palette if omitted")

	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryRenameCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
}
