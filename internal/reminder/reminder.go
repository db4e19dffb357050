package reminder

import (
	"fmt"
	"time"

	"github.com/existflow/taskdeck/internal/api"
	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/gen2brain/beeep"
	"github.com/robfig/cron/v3"
)

// staleWindow bounds how far past its reminder time a task still gets a
// notification. Anything older is marked notified silently so a freshly
// started watcher does not replay history.
const staleWindow = 60 * time.Minute

// Notification is one desktop notification to fire.
type Notification struct {
	TaskID string
	Title  string
	Body   string
}

// Due selects the tasks whose reminder time has passed since the last
// check. It marks every selected or stale task in notified, so each task
// notifies at most once per process.
func Due(tasks []model.Task, notified map[string]bool, now time.Time) []Notification {
	var out []Notification
	for _, t := range tasks {
		if notified[t.ID] || t.Completed || t.ReminderAt == nil {
			continue
		}

		if now.Before(*t.ReminderAt) {
			continue
		}

		notified[t.ID] = true
		if now.Sub(*t.ReminderAt) > staleWindow {
			continue
		}

		body := "Reminder"
		if t.DueDate != nil {
			body = "Due " + t.DueDate.Local().Format("Jan 2 15:04")
		}
		out = append(out, Notification{TaskID: t.ID, Title: t.Title, Body: body})
	}
	return out
}

// Notify fires a desktop notification.
func Notify(n Notification) error {
	return beeep.Notify("TaskDeck", n.Title+": "+n.Body, "")
}

// Watcher periodically scans the owner's tasks and fires desktop
// notifications for due reminders.
type Watcher struct {
	client   *api.Client
	cron     *cron.Cron
	notified map[string]bool
}

// NewWatcher creates a watcher over the given API client.
func NewWatcher(client *api.Client) *Watcher {
	return &Watcher{
		client:   client,
		cron:     cron.New(),
		notified: make(map[string]bool),
	}
}

// Start schedules the scan at the given interval and runs an immediate
// first pass.
func (w *Watcher) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	if _, err := w.cron.AddFunc(spec, w.scan); err != nil {
		return err
	}

	w.scan()
	w.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running scan to finish.
func (w *Watcher) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

func (w *Watcher) scan() {
	// The unscoped list, not the upcoming window: a reminder can be set on
	// a task that has no due date at all.
	tasks, err := w.client.ListTasks("")
	if err != nil {
		// Non-fatal: the next scheduled scan retries naturally.
		logger.Warn("Reminder scan failed", logger.F("error", err))
		return
	}

	for _, n := range Due(tasks, w.notified, time.Now()) {
		logger.Info("Firing reminder", logger.F("task", n.TaskID), logger.F("title", n.Title))
		if err := Notify(n); err != nil {
			logger.Warn("Notification failed", logger.F("error", err))
		}
	}
}
