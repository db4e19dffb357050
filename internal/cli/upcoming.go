package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var upcomingDays int

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Show pending tasks due soon",
	Long:  `Show pending tasks with a due date inside the upcoming window, soonest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, _, err := loadClient()
		if err != nil {
			return err
		}

		days := upcomingDays
		if !cmd.Flags().Changed("days") {
			days = cfg.UpcomingDays
		}
		if days <= 0 {
			return fmt.Errorf("days must be positive")
		}

		tasks, err := client.UpcomingTasks(days)
		if err != nil {
			return fmt.Errorf("failed to load upcoming tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Printf("Nothing due in the next %d day(s).\n", days)
			return nil
		}

		now := time.Now()
		fmt.Printf("Due in the next %d day(s):\n\n", days)
		for _, t := range tasks {
			due := t.DueDate.Local().Format("Mon Jan 2 15:04")
			marker := " "
			if t.DueDate.Before(now) {
				marker = "!"
			}
			fmt.Printf("  %s %-20s %s\n", marker, due, t.Title)
		}
		return nil
	},
}

func init() {
	upcomingCmd.Flags().IntVarP(&upcomingDays, "days", "n", 7, "Size of the upcoming window in days")
}
