package reminder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/existflow/taskdeck/internal/api"
	"github.com/existflow/taskdeck/internal/model"
)

func TestDueSelectsPassedReminders(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	passed := now.Add(-5 * time.Minute)
	future := now.Add(5 * time.Minute)

	tasks := []model.Task{
		{ID: "due", Title: "Call dentist", ReminderAt: &passed},
		{ID: "later", Title: "Water plants", ReminderAt: &future},
		{ID: "none", Title: "No reminder"},
	}

	notified := map[string]bool{}
	got := Due(tasks, notified, now)

	if len(got) != 1 || got[0].TaskID != "due" {
		t.Fatalf("expected only the passed reminder, got %+v", got)
	}
	if !notified["due"] {
		t.Error("expected the fired task marked notified")
	}
	if notified["later"] {
		t.Error("future reminders must not be marked")
	}
}

func TestDueFiresAtMostOnce(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	passed := now.Add(-5 * time.Minute)
	tasks := []model.Task{{ID: "t", Title: "x", ReminderAt: &passed}}

	notified := map[string]bool{}
	if got := Due(tasks, notified, now); len(got) != 1 {
		t.Fatalf("expected one notification, got %d", len(got))
	}
	if got := Due(tasks, notified, now.Add(time.Minute)); len(got) != 0 {
		t.Errorf("expected no repeat notification, got %d", len(got))
	}
}

func TestDueSkipsCompleted(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	passed := now.Add(-5 * time.Minute)
	tasks := []model.Task{{ID: "t", Title: "x", Completed: true, ReminderAt: &passed}}

	if got := Due(tasks, map[string]bool{}, now); len(got) != 0 {
		t.Errorf("completed tasks must not notify, got %+v", got)
	}
}

func TestDueMarksStaleSilently(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	stale := now.Add(-2 * time.Hour)
	tasks := []model.Task{{ID: "old", Title: "ancient", ReminderAt: &stale}}

	notified := map[string]bool{}
	got := Due(tasks, notified, now)
	if len(got) != 0 {
		t.Errorf("stale reminders must not replay, got %+v", got)
	}
	if !notified["old"] {
		t.Error("stale reminders must still be marked so they never fire")
	}
}

func TestWatcherScanSeesRemindersWithoutDueDate(t *testing.T) {
	passed := time.Now().Add(-time.Minute)

	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode([]model.Task{
			{ID: "bare", Title: "No due date", ReminderAt: &passed},
		})
	}))
	defer ts.Close()

	watcher := NewWatcher(api.NewClient(ts.URL, "token"))
	watcher.scan()

	// The scan must pull the unscoped list; the upcoming window drops
	// tasks that carry a reminder but no due date.
	if gotPath != "/api/v1/tasks" {
		t.Errorf("expected scan of /api/v1/tasks, got %q", gotPath)
	}
	if !watcher.notified["bare"] {
		t.Error("expected the due-date-less reminder picked up by the scan")
	}
}

func TestDueBodyCarriesDueDate(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	passed := now.Add(-time.Minute)
	due := now.Add(time.Hour)
	tasks := []model.Task{
		{ID: "a", Title: "with due", ReminderAt: &passed, DueDate: &due},
		{ID: "b", Title: "without due", ReminderAt: &passed},
	}

	got := Due(tasks, map[string]bool{}, now)
	if len(got) != 2 {
		t.Fatalf("expected two notifications, got %d", len(got))
	}
	if got[0].Body == "Reminder" {
		t.Errorf("expected due date in body, got %q", got[0].Body)
	}
	if got[1].Body != "Reminder" {
		t.Errorf("expected plain reminder body, got %q", got[1].Body)
	}
}
