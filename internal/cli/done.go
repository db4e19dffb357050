package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/taskdeck/internal/api"
	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task's completion state",
	Long:  `Toggle a task between pending and completed. The task ID may be abbreviated to a unique prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, _, err := loadClient()
		if err != nil {
			return err
		}

		task, err := resolveTask(client, args[0])
		if err != nil {
			return err
		}

		updated, err := client.ToggleTask(task.ID)
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}

		logger.Info("Task toggled via CLI",
			logger.F("task_id", updated.ID),
			logger.F("completed", updated.Completed))

		if updated.Completed {
			fmt.Printf("Completed: %s\n", updated.Title)
		} else {
			fmt.Printf("Reopened: %s\n", updated.Title)
		}
		return nil
	},
}

// resolveTask finds a task by full ID or unique ID prefix.
func resolveTask(client *api.Client, idOrPrefix string) (*model.Task, error) {
	tasks, err := client.ListTasks("")
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	var matches []model.Task
	for _, t := range tasks {
		if t.ID == idOrPrefix {
			task := t
			return &task, nil
		}
		if strings.HasPrefix(t.ID, idOrPrefix) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no task matches %q", idOrPrefix)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%q matches %d tasks, use a longer prefix", idOrPrefix, len(matches))
	}
}
