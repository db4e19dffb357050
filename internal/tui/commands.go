package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskdeck/internal/api"
	"github.com/existflow/taskdeck/internal/model"
	"github.com/existflow/taskdeck/internal/reminder"
)

// Messages carrying API results back into Update. Task loads carry the
// sequence token they were issued with.

type tasksLoadedMsg struct {
	seq   int
	scope string
	tasks []model.Task
	err   error
}

type allTasksLoadedMsg struct {
	tasks []model.Task
	err   error
}

type categoriesLoadedMsg struct {
	categories []model.Category
	err        error
}

type taskSavedMsg struct {
	task    *model.Task
	created bool
	err     error
}

type taskToggledMsg struct {
	task *model.Task
	err  error
}

type taskDeletedMsg struct {
	id  string
	err error
}

type categorySavedMsg struct {
	category *model.Category
	created  bool
	err      error
}

type categoryDeletedMsg struct {
	id  string
	err error
}

type reminderTickMsg time.Time

func loadTasksCmd(client *api.Client, seq int, scope string) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.ListTasks(scope)
		return tasksLoadedMsg{seq: seq, scope: scope, tasks: tasks, err: err}
	}
}

func loadAllTasksCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.ListTasks("")
		return allTasksLoadedMsg{tasks: tasks, err: err}
	}
}

func loadCategoriesCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		categories, err := client.ListCategories()
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func createTaskCmd(client *api.Client, fields api.TaskFields) tea.Cmd {
	return func() tea.Msg {
		task, err := client.CreateTask(fields)
		return taskSavedMsg{task: task, created: true, err: err}
	}
}

func updateTaskCmd(client *api.Client, id string, fields api.TaskFields) tea.Cmd {
	return func() tea.Msg {
		task, err := client.UpdateTask(id, fields)
		return taskSavedMsg{task: task, err: err}
	}
}

func toggleTaskCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		task, err := client.ToggleTask(id)
		return taskToggledMsg{task: task, err: err}
	}
}

func deleteTaskCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteTask(id)
		return taskDeletedMsg{id: id, err: err}
	}
}

func createCategoryCmd(client *api.Client, fields api.CategoryFields) tea.Cmd {
	return func() tea.Msg {
		cat, err := client.CreateCategory(fields)
		return categorySavedMsg{category: cat, created: true, err: err}
	}
}

func updateCategoryCmd(client *api.Client, id string, fields api.CategoryFields) tea.Cmd {
	return func() tea.Msg {
		cat, err := client.UpdateCategory(id, fields)
		return categorySavedMsg{category: cat, err: err}
	}
}

func deleteCategoryCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteCategory(id)
		return categoryDeletedMsg{id: id, err: err}
	}
}

func reminderTickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return reminderTickMsg(t)
	})
}

// notifyCmd fires one desktop notification off the UI goroutine.
func notifyCmd(n reminder.Notification) tea.Cmd {
	return func() tea.Msg {
		reminder.Notify(n)
		return nil
	}
}
