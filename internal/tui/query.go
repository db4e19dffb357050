package tui

import (
	"sort"

	"github.com/existflow/taskdeck/internal/model"
)

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// SortBy selects the task list ordering.
type SortBy string

const (
	SortCreated  SortBy = "created"
	SortDueDate  SortBy = "due-date"
	SortPriority SortBy = "priority"
)

// Query is the client-side view over the loaded task set: a free-text
// search, a status filter, and a sort order.
type Query struct {
	Search string
	Status StatusFilter
	Sort   SortBy
}

// TaskRow is a task joined with its category metadata. Category is nil when
// the task has no category reference or the reference has no loaded match.
type TaskRow struct {
	model.Task
	Category *model.Category
}

// Apply derives the visible task list from the loaded set: search filter,
// status filter, then sort. The input slice is never mutated. All sorts are
// stable; ties keep the original list order.
func (q Query) Apply(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Matches(q.Search) {
			continue
		}
		switch q.Status {
		case StatusPending:
			if t.Completed {
				continue
			}
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}

	switch q.Sort {
	case SortDueDate:
		// Ascending by due date; tasks without one sort after all that
		// have one, and stay in their original relative order.
		sort.SliceStable(out, func(i, j int) bool {
			di, dj := out[i].DueDate, out[j].DueDate
			switch {
			case di == nil && dj == nil:
				return false
			case di == nil:
				return false
			case dj == nil:
				return true
			default:
				return di.Before(*dj)
			}
		})
	case SortPriority:
		// Descending by priority rank, stable on ties.
		sort.SliceStable(out, func(i, j int) bool {
			return model.PriorityRank(out[i].Priority) > model.PriorityRank(out[j].Priority)
		})
	default:
		// Newest created first.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}

// JoinCategories attaches category metadata to each task by matching its
// category reference against the loaded category set.
func JoinCategories(tasks []model.Task, categories []model.Category) []TaskRow {
	byID := make(map[string]*model.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	rows := make([]TaskRow, len(tasks))
	for i, t := range tasks {
		rows[i] = TaskRow{Task: t}
		if t.CategoryID != nil {
			rows[i].Category = byID[*t.CategoryID]
		}
	}
	return rows
}

// CategoryCounts computes the number of tasks referencing each category,
// plus the grand total for the "all tasks" entry.
func CategoryCounts(tasks []model.Task) (map[string]int, int) {
	counts := make(map[string]int)
	for _, t := range tasks {
		if t.CategoryID != nil {
			counts[*t.CategoryID]++
		}
	}
	return counts, len(tasks)
}

// NextStatus cycles all → pending → completed → all.
func NextStatus(s StatusFilter) StatusFilter {
	switch s {
	case StatusAll:
		return StatusPending
	case StatusPending:
		return StatusCompleted
	default:
		return StatusAll
	}
}

// NextSort cycles created → due-date → priority → created.
func NextSort(s SortBy) SortBy {
	switch s {
	case SortCreated:
		return SortDueDate
	case SortDueDate:
		return SortPriority
	default:
		return SortCreated
	}
}
