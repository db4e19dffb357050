package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/taskdeck/internal/api"
	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/spf13/cobra"
)

var (
	addDescription string
	addPriority    string
	addCategory    string
	addDue         string
	addReminder    string
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long:  `Add a new task with the given title. Use flags to set description, priority, category, due date, and reminder.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, _, err := loadClient()
		if err != nil {
			return err
		}

		title := strings.TrimSpace(strings.Join(args, " "))
		if title == "" {
			return fmt.Errorf("task title cannot be empty")
		}

		fields := api.TaskFields{
			Title:       title,
			Description: addDescription,
		}

		if addPriority != "" {
			if !model.ValidPriority(addPriority) {
				return fmt.Errorf("invalid priority %q (use low, medium, or high)", addPriority)
			}
			fields.Priority = addPriority
		}

		if addCategory != "" {
			cat, err := findCategory(client, addCategory)
			if err != nil {
				return err
			}
			fields.CategoryID = &cat.ID
		}

		if addDue != "" {
			due, err := parseDate(addDue)
			if err != nil {
				return fmt.Errorf("invalid due date: %w", err)
			}
			fields.DueDate = &due
		}

		if addReminder != "" {
			rem, err := parseDate(addReminder)
			if err != nil {
				return fmt.Errorf("invalid reminder: %w", err)
			}
			if fields.DueDate != nil && rem.After(*fields.DueDate) {
				return fmt.Errorf("reminder cannot be after the due date")
			}
			fields.ReminderAt = &rem
		}

		task, err := client.CreateTask(fields)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		logger.Info("Task created via CLI", logger.F("task_id", task.ID))
		fmt.Printf("Added task: %s\n", task.Title)
		if task.DueDate != nil {
			fmt.Printf("  due %s\n", task.DueDate.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

// findCategory resolves a category by name, case-insensitively.
func findCategory(client *api.Client, name string) (*model.Category, error) {
	cats, err := client.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	for i := range cats {
		if strings.EqualFold(cats[i].Name, name) {
			return &cats[i], nil
		}
	}
	return nil, fmt.Errorf("category %q not found", name)
}

// parseDate accepts "2006-01-02 15:04" or a bare date (midnight local).
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or YYYY-MM-DD HH:MM, got %q", s)
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "desc", "D", "", "Task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority (low, medium, high)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category name")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	addCmd.Flags().StringVarP(&addReminder, "remind", "r", "", "Reminder time (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
}
