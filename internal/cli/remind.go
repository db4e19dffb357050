package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/reminder"
	"github.com/spf13/cobra"
)

var remindInterval string

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Watch for due reminders and send desktop notifications",
	Long: `Run in the foreground, periodically polling the server for tasks whose
reminder time has arrived, and raise a desktop notification for each one.
Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, _, err := loadClient()
		if err != nil {
			return err
		}

		raw := remindInterval
		if !cmd.Flags().Changed("interval") {
			raw = cfg.RemindInterval
		}
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", raw, err)
		}
		if interval < 10*time.Second {
			return fmt.Errorf("interval must be at least 10s")
		}

		watcher := reminder.NewWatcher(client)
		if err := watcher.Start(interval); err != nil {
			return fmt.Errorf("failed to start reminder watcher: %w", err)
		}
		defer watcher.Stop()

		fmt.Printf("Watching for reminders every %s, Ctrl-C to stop.\n", interval)
		logger.Info("Reminder watcher running", logger.F("interval", interval.String()))

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		fmt.Println("\nStopping.")
		return nil
	},
}

func init() {
	remindCmd.Flags().StringVarP(&remindInterval, "interval", "i", "1m", "Poll interval (e.g. 30s, 1m)")
}
