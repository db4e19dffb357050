package api

import (
	"net/url"
	"strconv"
	"time"

	"github.com/existflow/taskdeck/internal/model"
)

// TaskFields carries a task's editable fields for create and update calls.
// Optional fields are sent explicitly (as null when unset) so an update can
// clear a previously stored value.
type TaskFields struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	ReminderAt  *time.Time `json:"reminder_at"`
	Priority    string     `json:"priority"`
	CategoryID  *string    `json:"category_id"`
}

// ListTasks returns all tasks for the owner, newest-created-first. A
// non-empty categoryID scopes the list to that category.
func (c *Client) ListTasks(categoryID string) ([]model.Task, error) {
	query := url.Values{}
	if categoryID != "" {
		query.Set("category_id", categoryID)
	}

	tasks := []model.Task{}
	if err := c.GetWithQuery("/tasks", query, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpcomingTasks returns not-completed tasks due within the given number of
// days (soonest-due-first). days <= 0 uses the server default of 7.
func (c *Client) UpcomingTasks(days int) ([]model.Task, error) {
	query := url.Values{}
	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}

	tasks := []model.Task{}
	if err := c.GetWithQuery("/tasks/upcoming", query, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a single task by ID, scoped to the owner.
func (c *Client) GetTask(id string) (*model.Task, error) {
	var task model.Task
	if err := c.Get("/tasks/"+id, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task; the server assigns identifier and timestamps
// and returns the authoritative row.
func (c *Client) CreateTask(fields TaskFields) (*model.Task, error) {
	var task model.Task
	if err := c.Post("/tasks", fields, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask replaces a task's editable fields and returns the updated row.
func (c *Client) UpdateTask(id string, fields TaskFields) (*model.Task, error) {
	var task model.Task
	if err := c.Put("/tasks/"+id, fields, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ToggleTask flips a task's completion. The server stamps or clears
// completed_at atomically with updated_at and returns the row.
func (c *Client) ToggleTask(id string) (*model.Task, error) {
	var task model.Task
	if err := c.Post("/tasks/"+id+"/toggle", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask hard-deletes a task. Irreversible.
func (c *Client) DeleteTask(id string) error {
	return c.Delete("/tasks/" + id)
}
