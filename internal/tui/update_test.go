package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/taskdeck/internal/config"
	"github.com/existflow/taskdeck/internal/model"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func testModel() Model {
	return NewModel(nil, config.DefaultConfig())
}

func TestStaleTaskLoadDiscarded(t *testing.T) {
	m := testModel()
	m.tasks = []model.Task{{ID: "current"}}
	m.loadSeq = 2

	// A late response from an earlier scope must not overwrite the view
	updated, _ := m.Update(tasksLoadedMsg{
		seq:   1,
		tasks: []model.Task{{ID: "stale"}},
	})
	got := updated.(Model)

	assertOrder(t, got.tasks, []string{"current"})

	// The current sequence lands normally
	updated, _ = got.Update(tasksLoadedMsg{
		seq:   2,
		tasks: []model.Task{{ID: "fresh"}},
	})
	got = updated.(Model)
	assertOrder(t, got.tasks, []string{"fresh"})
}

func TestTaskLoadFailureClearsView(t *testing.T) {
	m := testModel()
	m.tasks = []model.Task{{ID: "old"}}

	updated, _ := m.Update(tasksLoadedMsg{seq: 0, err: errors.New("boom")})
	got := updated.(Model)

	if len(got.tasks) != 0 {
		t.Errorf("expected view cleared on a failed load, got %d tasks", len(got.tasks))
	}
	if got.errMsg == "" {
		t.Error("expected an error message surfaced")
	}
}

func TestCategoryLoadFailureKeepsTasks(t *testing.T) {
	m := testModel()
	m.tasks = []model.Task{{ID: "a"}}
	m.refresh()

	updated, _ := m.Update(categoriesLoadedMsg{err: errors.New("boom")})
	got := updated.(Model)

	if len(got.tasks) != 1 {
		t.Error("category load failure must not block task display")
	}
	if got.errMsg == "" {
		t.Error("expected an error message surfaced")
	}
}

func TestCreatedTaskPrependsOnce(t *testing.T) {
	m := testModel()
	m.tasks = []model.Task{{ID: "a"}, {ID: "b"}}
	m.allTasks = m.tasks

	created := model.Task{ID: "new", Title: "fresh"}
	updated, _ := m.Update(taskSavedMsg{task: &created, created: true})
	got := updated.(Model)

	assertOrder(t, got.tasks, []string{"new", "a", "b"})
	assertOrder(t, got.allTasks, []string{"new", "a", "b"})
}

func TestCreatedTaskOutsideScopeSkipsScopedList(t *testing.T) {
	m := testModel()
	m.scope = "cat-1"
	catID := "cat-2"
	m.tasks = []model.Task{{ID: "a"}}
	m.allTasks = []model.Task{{ID: "a"}}

	created := model.Task{ID: "new", CategoryID: &catID}
	updated, _ := m.Update(taskSavedMsg{task: &created, created: true})
	got := updated.(Model)

	assertOrder(t, got.tasks, []string{"a"})
	assertOrder(t, got.allTasks, []string{"new", "a"})
}

func TestDeletedTaskRemovedExactlyOnce(t *testing.T) {
	m := testModel()
	m.tasks = []model.Task{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	m.allTasks = m.tasks

	updated, _ := m.Update(taskDeletedMsg{id: "b"})
	got := updated.(Model)

	assertOrder(t, got.tasks, []string{"a", "c"})
	assertOrder(t, got.allTasks, []string{"a", "c"})
}

func TestFailedMutationLeavesListUntouched(t *testing.T) {
	m := testModel()
	m.tasks = []model.Task{{ID: "a"}}

	updated, _ := m.Update(taskDeletedMsg{id: "a", err: errors.New("boom")})
	got := updated.(Model)

	assertOrder(t, got.tasks, []string{"a"})
	if got.errMsg == "" {
		t.Error("expected the failure surfaced")
	}
}

func TestCategoryDeleteDetachesAndResetsScope(t *testing.T) {
	m := testModel()
	doomed := "doomed"
	m.categories = []model.Category{{ID: "doomed", Name: "Doomed"}, {ID: "kept", Name: "Kept"}}
	m.scope = "doomed"
	m.loadSeq = 1
	m.tasks = []model.Task{{ID: "a", CategoryID: &doomed}}
	m.allTasks = []model.Task{{ID: "a", CategoryID: &doomed}}

	updated, cmd := m.Update(categoryDeletedMsg{id: "doomed"})
	got := updated.(Model)

	if len(got.categories) != 1 || got.categories[0].ID != "kept" {
		t.Errorf("expected category spliced out, got %+v", got.categories)
	}
	if got.allTasks[0].CategoryID != nil {
		t.Error("expected the reference cleared in the loaded lists")
	}
	if got.scope != "" {
		t.Errorf("expected scope reset to all tasks, got %q", got.scope)
	}
	if got.loadSeq != 2 {
		t.Errorf("expected sequence bumped by the scope reset, got %d", got.loadSeq)
	}
	if cmd == nil {
		t.Error("expected a reload command for the new scope")
	}
}

func TestCategoryDeleteRequiresConfirmation(t *testing.T) {
	m := testModel()
	m.categories = []model.Category{{ID: "c1", Name: "Errands"}}
	m.pane = PaneSidebar
	m.catCursor = 1

	updated, cmd := m.Update(keyMsg("d"))
	got := updated.(Model)

	if cmd != nil {
		t.Error("expected no delete fired before confirmation")
	}
	if got.mode != ModeConfirmDelete {
		t.Errorf("expected confirm mode, got %v", got.mode)
	}
	if got.pendingDeleteCat == nil || got.pendingDeleteCat.ID != "c1" {
		t.Errorf("expected the category staged for deletion, got %+v", got.pendingDeleteCat)
	}

	updated, cmd = got.Update(keyMsg("y"))
	got = updated.(Model)

	if cmd == nil {
		t.Error("expected the delete command after confirmation")
	}
	if got.mode != ModeNormal || got.pendingDeleteCat != nil {
		t.Error("expected confirm state cleared after the answer")
	}
}

func TestCategoryDeleteConfirmationDeclined(t *testing.T) {
	m := testModel()
	m.categories = []model.Category{{ID: "c1", Name: "Errands"}}
	m.pane = PaneSidebar
	m.catCursor = 1

	updated, _ := m.Update(keyMsg("d"))
	updated, cmd := updated.(Model).Update(keyMsg("n"))
	got := updated.(Model)

	if cmd != nil {
		t.Error("expected no delete fired on decline")
	}
	if got.mode != ModeNormal || got.pendingDeleteCat != nil {
		t.Error("expected confirm state cleared on decline")
	}
	if len(got.categories) != 1 {
		t.Errorf("expected the category untouched, got %+v", got.categories)
	}
}
