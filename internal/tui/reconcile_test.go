package tui

import (
	"testing"

	"github.com/existflow/taskdeck/internal/model"
)

func TestPrependTask(t *testing.T) {
	tasks := []model.Task{{ID: "a"}, {ID: "b"}}

	got := prependTask(tasks, model.Task{ID: "new"})
	assertOrder(t, got, []string{"new", "a", "b"})

	// Original slice untouched
	assertOrder(t, tasks, []string{"a", "b"})
}

func TestReplaceTask(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Title: "one"},
		{ID: "b", Title: "two"},
		{ID: "c", Title: "three"},
	}

	got := replaceTask(tasks, model.Task{ID: "b", Title: "updated"})
	assertOrder(t, got, []string{"a", "b", "c"})
	if got[1].Title != "updated" {
		t.Errorf("expected replaced row, got %q", got[1].Title)
	}
	if tasks[1].Title != "two" {
		t.Error("original slice must not be mutated")
	}

	// Unknown identifier leaves the list as-is
	got = replaceTask(tasks, model.Task{ID: "ghost", Title: "nope"})
	assertOrder(t, got, []string{"a", "b", "c"})
}

func TestRemoveTask(t *testing.T) {
	tasks := []model.Task{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	got := removeTask(tasks, "b")
	assertOrder(t, got, []string{"a", "c"})

	got = removeTask(tasks, "ghost")
	assertOrder(t, got, []string{"a", "b", "c"})
}

func TestDetachCategory(t *testing.T) {
	doomed := "doomed"
	kept := "kept"
	tasks := []model.Task{
		{ID: "a", CategoryID: &doomed},
		{ID: "b", CategoryID: &kept},
		{ID: "c"},
	}

	got := detachCategory(tasks, "doomed")
	if got[0].CategoryID != nil {
		t.Error("expected the doomed reference cleared")
	}
	if got[1].CategoryID == nil || *got[1].CategoryID != "kept" {
		t.Error("expected other references untouched")
	}
	if tasks[0].CategoryID == nil {
		t.Error("original slice must not be mutated")
	}
}
