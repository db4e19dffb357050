package tui

import "github.com/existflow/taskdeck/internal/model"

// Reconciliation of the in-memory task list after a mutation. Every
// create/update/delete/toggle issues exactly one API call; on success the
// server's authoritative row is folded into the loaded list here, with no
// refetch. On failure the list is left untouched by the caller.

// prependTask puts a freshly created row at the head of the list.
func prependTask(tasks []model.Task, t model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks)+1)
	out = append(out, t)
	return append(out, tasks...)
}

// replaceTask swaps the row with a matching identifier for the server's
// updated row, preserving order. Unknown identifiers leave the list as-is.
func replaceTask(tasks []model.Task, t model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].ID == t.ID {
			out[i] = t
			break
		}
	}
	return out
}

// removeTask drops the row with a matching identifier, preserving the order
// of all others.
func removeTask(tasks []model.Task, id string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// detachCategory clears the given category reference from every task,
// mirroring the server-side detach after a category delete.
func detachCategory(tasks []model.Task, categoryID string) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].CategoryID != nil && *out[i].CategoryID == categoryID {
			out[i].CategoryID = nil
		}
	}
	return out
}
