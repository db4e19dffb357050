package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/taskdeck/internal/api"
	"github.com/existflow/taskdeck/internal/model"
)

// Input slots of the task form, in focus order.
const (
	formTitle = iota
	formDescription
	formDueDate
	formReminder
	formFieldCount
)

// dateLayouts accepted by the due date and reminder inputs.
var dateLayouts = []string{"2006-01-02 15:04", "2006-01-02"}

// taskForm collects and validates one task's fields. A nil editing task
// means the form creates; otherwise it updates.
type taskForm struct {
	editing  *model.Task
	inputs   []textinput.Model
	focus    int
	priority string
	// Index into the loaded category list plus one; zero means no category.
	categoryIdx int
}

func newTaskForm(categories []model.Category, editing *model.Task) taskForm {
	f := taskForm{editing: editing}

	labels := []string{"Title", "Description", "Due (YYYY-MM-DD [HH:MM])", "Reminder (YYYY-MM-DD [HH:MM])"}
	for i := 0; i < formFieldCount; i++ {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 256
		ti.Width = 40
		f.inputs = append(f.inputs, ti)
	}
	f.inputs[formTitle].Focus()

	if editing != nil {
		f.inputs[formTitle].SetValue(editing.Title)
		f.inputs[formDescription].SetValue(editing.Description)
		if editing.DueDate != nil {
			f.inputs[formDueDate].SetValue(editing.DueDate.Local().Format("2006-01-02 15:04"))
		}
		if editing.ReminderAt != nil {
			f.inputs[formReminder].SetValue(editing.ReminderAt.Local().Format("2006-01-02 15:04"))
		}
		f.priority = editing.Priority
		if editing.CategoryID != nil {
			for i, cat := range categories {
				if cat.ID == *editing.CategoryID {
					f.categoryIdx = i + 1
					break
				}
			}
		}
	}

	return f
}

func (f *taskForm) nextField() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % formFieldCount
	f.inputs[f.focus].Focus()
}

func (f *taskForm) prevField() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + formFieldCount) % formFieldCount
	f.inputs[f.focus].Focus()
}

func (f *taskForm) cyclePriority() {
	switch f.priority {
	case "":
		f.priority = model.PriorityLow
	case model.PriorityLow:
		f.priority = model.PriorityMedium
	case model.PriorityMedium:
		f.priority = model.PriorityHigh
	default:
		f.priority = ""
	}
}

func (f *taskForm) cycleCategory(categories []model.Category) {
	f.categoryIdx = (f.categoryIdx + 1) % (len(categories) + 1)
}

// parseDateInput parses an optional date field; empty input means unset.
func parseDateInput(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q, use YYYY-MM-DD or YYYY-MM-DD HH:MM", s)
}

// validate checks the form's local rules before any API call: title
// required after trimming, dates parseable, reminder not after due date.
func (f *taskForm) validate() error {
	if strings.TrimSpace(f.inputs[formTitle].Value()) == "" {
		return fmt.Errorf("title is required")
	}

	due, err := parseDateInput(f.inputs[formDueDate].Value())
	if err != nil {
		return err
	}
	reminder, err := parseDateInput(f.inputs[formReminder].Value())
	if err != nil {
		return err
	}

	if due != nil && reminder != nil && reminder.After(*due) {
		return fmt.Errorf("reminder must not be after due date")
	}

	return nil
}

// fields assembles the full field set for the API call. Unset optional
// fields are carried as explicit nulls so an update clears stored values.
func (f *taskForm) fields(categories []model.Category) api.TaskFields {
	due, _ := parseDateInput(f.inputs[formDueDate].Value())
	reminder, _ := parseDateInput(f.inputs[formReminder].Value())

	var categoryID *string
	if f.categoryIdx > 0 && f.categoryIdx <= len(categories) {
		id := categories[f.categoryIdx-1].ID
		categoryID = &id
	}

	completed := false
	if f.editing != nil {
		completed = f.editing.Completed
	}

	return api.TaskFields{
		Title:       strings.TrimSpace(f.inputs[formTitle].Value()),
		Description: strings.TrimSpace(f.inputs[formDescription].Value()),
		Completed:   completed,
		DueDate:     due,
		ReminderAt:  reminder,
		Priority:    f.priority,
		CategoryID:  categoryID,
	}
}

// categoryLabel names the currently selected category for rendering.
func (f *taskForm) categoryLabel(categories []model.Category) string {
	if f.categoryIdx == 0 || f.categoryIdx > len(categories) {
		return "none"
	}
	return categories[f.categoryIdx-1].Name
}
