package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/tui"
	"github.com/spf13/cobra"
)

var (
	listCategory string
	listStatus   string
	listSort     string
	listSearch   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long:  `List tasks, optionally filtered by category, status, or a search term.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, _, err := loadClient()
		if err != nil {
			return err
		}

		scope := ""
		if listCategory != "" {
			cat, err := findCategory(client, listCategory)
			if err != nil {
				return err
			}
			scope = cat.ID
		}

		tasks, err := client.ListTasks(scope)
		if err != nil {
			return fmt.Errorf("failed to load tasks: %w", err)
		}
		cats, err := client.ListCategories()
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}

		q := tui.Query{Search: listSearch}
		switch strings.ToLower(listStatus) {
		case "", "all":
			q.Status = tui.StatusAll
		case "pending":
			q.Status = tui.StatusPending
		case "completed", "done":
			q.Status = tui.StatusCompleted
		default:
			return fmt.Errorf("invalid status %q (use all, pending, or completed)", listStatus)
		}
		switch strings.ToLower(listSort) {
		case "", "created":
			q.Sort = tui.SortCreated
		case "due", "due-date":
			q.Sort = tui.SortDueDate
		case "priority":
			q.Sort = tui.SortPriority
		default:
			return fmt.Errorf("invalid sort %q (use created, due-date, or priority)", listSort)
		}

		rows := tui.JoinCategories(q.Apply(tasks), cats)
		if len(rows) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		for _, row := range rows {
			printTaskRow(row)
		}
		fmt.Printf("\n%d task(s)\n", len(rows))
		return nil
	},
}

func printTaskRow(row tui.TaskRow) {
	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}

	line := fmt.Sprintf("%s %s", check, row.Title)
	switch row.Priority {
	case model.PriorityHigh:
		line += " !!!"
	case model.PriorityMedium:
		line += " !!"
	case model.PriorityLow:
		line += " !"
	}
	if row.Category != nil {
		line += fmt.Sprintf(" [%s]", row.Category.Name)
	}
	if row.DueDate != nil {
		due := row.DueDate.Local().Format("2006-01-02 15:04")
		if !row.Completed && row.DueDate.Before(time.Now()) {
			line += fmt.Sprintf(" (overdue: %s)", due)
		} else {
			line += fmt.Sprintf(" (due: %s)", due)
		}
	}

	fmt.Printf("%s\n    id: %s\n", line, row.ID)
	if row.Description != "" {
		fmt.Printf("    %s\n", row.Description)
	}
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category name")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "all", "Filter by status (all, pending, completed)")
	listCmd.Flags().StringVar(&listSort, "sort", "created", "Sort order (created, due-date, priority)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Search term for title or description")
}
