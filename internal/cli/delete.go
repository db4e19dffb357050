package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a task",
	Long:  `Delete a task permanently. The task ID may be abbreviated to a unique prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, _, err := loadClient()
		if err != nil {
			return err
		}

		task, err := resolveTask(client, args[0])
		if err != nil {
			return err
		}

		if !deleteForce && cfg.ConfirmDelete {
			if !confirm(fmt.Sprintf("Delete task %q?", task.Title)) {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := client.DeleteTask(task.ID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		logger.Info("Task deleted via CLI", logger.F("task_id", task.ID))
		fmt.Printf("Deleted: %s\n", task.Title)
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}
