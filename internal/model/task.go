package model

import (
	"strings"
	"time"
)

// Priority levels for tasks. An empty priority means the task has none.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// PriorityRank maps a priority to its sort rank. Higher rank sorts first
// when ordering by priority; tasks without a priority rank below all others.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ValidPriority reports whether p is empty or one of the known levels.
func ValidPriority(p string) bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single todo item owned by one user. Nullable fields
// serialize as explicit null, never as an absent key, so a cleared value
// always overwrites a previously decoded one.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	CategoryID  *string    `json:"category_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	DueDate     *time.Time `json:"due_date"`
	ReminderAt  *time.Time `json:"reminder_at"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Matches reports whether the task matches a free-text search term,
// case-insensitively, against title or description. An empty term
// matches everything.
func (t *Task) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}

// IsOverdue returns true if the task has a due date in the past and is not
// completed. Overdue is a display flag only; it never blocks any operation.
func (t *Task) IsOverdue() bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return t.DueDate.Before(time.Now())
}

// IsDueToday returns true if the task is due before the end of today.
func (t *Task) IsDueToday() bool {
	if t.DueDate == nil {
		return false
	}
	now := time.Now()
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
	return t.DueDate.Before(endOfDay)
}
