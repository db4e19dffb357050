package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskdeck/internal/api"
	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/reminder"
)

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		// A stale response from a previous scope must not overwrite the
		// current view.
		if msg.seq != m.loadSeq {
			logger.Debug("Discarding stale task load",
				logger.F("seq", msg.seq), logger.F("current", m.loadSeq))
			return m, nil
		}
		if msg.err != nil {
			m.tasks = nil
			m.errMsg = "Failed to load tasks: " + msg.err.Error()
			m.refresh()
			return m, nil
		}
		m.tasks = msg.tasks
		if msg.scope == "" {
			m.allTasks = msg.tasks
		}
		m.errMsg = ""
		m.refresh()
		return m, nil

	case allTasksLoadedMsg:
		// Counts are a background load; a failure only leaves the old
		// numbers in place.
		if msg.err == nil {
			m.allTasks = msg.tasks
		}
		return m, nil

	case categoriesLoadedMsg:
		if msg.err != nil {
			// Tasks still display; labels degrade to absent.
			m.errMsg = "Failed to load categories: " + msg.err.Error()
			return m, nil
		}
		m.categories = msg.categories
		if m.catCursor > len(m.categories) {
			m.catCursor = 0
		}
		m.refresh()
		return m, nil

	case taskSavedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		if msg.created {
			if m.scope == "" || (msg.task.CategoryID != nil && *msg.task.CategoryID == m.scope) {
				m.tasks = prependTask(m.tasks, *msg.task)
			}
			m.allTasks = prependTask(m.allTasks, *msg.task)
			m.message = "Task created"
		} else {
			m.tasks = replaceTask(m.tasks, *msg.task)
			m.allTasks = replaceTask(m.allTasks, *msg.task)
			m.message = "Task updated"
		}
		m.errMsg = ""
		m.mode = ModeNormal
		m.refresh()
		return m, nil

	case taskToggledMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.tasks = replaceTask(m.tasks, *msg.task)
		m.allTasks = replaceTask(m.allTasks, *msg.task)
		if msg.task.Completed {
			m.message = "Completed: " + msg.task.Title
		} else {
			m.message = "Reopened: " + msg.task.Title
		}
		m.errMsg = ""
		m.refresh()
		return m, nil

	case taskDeletedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.tasks = removeTask(m.tasks, msg.id)
		m.allTasks = removeTask(m.allTasks, msg.id)
		m.message = "Task deleted"
		m.errMsg = ""
		m.refresh()
		return m, nil

	case categorySavedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.mode = ModeNormal
		if msg.created {
			m.message = "Category created: " + msg.category.Name
		} else {
			m.message = "Category updated: " + msg.category.Name
		}
		// Names order the sidebar; reload rather than splice locally.
		return m, loadCategoriesCmd(m.client)

	case categoryDeletedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		for i := range m.categories {
			if m.categories[i].ID == msg.id {
				m.categories = append(m.categories[:i], m.categories[i+1:]...)
				break
			}
		}
		if m.catCursor > len(m.categories) {
			m.catCursor = len(m.categories)
		}
		// Displayed tasks keep their rows; the reference degrades locally,
		// matching the server-side detach.
		m.tasks = detachCategory(m.tasks, msg.id)
		m.allTasks = detachCategory(m.allTasks, msg.id)
		m.message = "Category deleted"
		m.errMsg = ""
		var cmd tea.Cmd
		if m.scope == msg.id {
			cmd = m.setScope("")
		}
		m.refresh()
		return m, cmd

	case reminderTickMsg:
		cmds := []tea.Cmd{reminderTickCmd()}
		if m.cfg.DesktopNotify {
			for _, n := range reminder.Due(m.allTasks, m.notified, time.Time(msg)) {
				cmds = append(cmds, notifyCmd(n))
			}
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeTaskForm:
		return m.handleTaskFormKey(msg)
	case ModeCategoryForm:
		return m.handleCategoryFormKey(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeConfirmDelete:
		return m.handleConfirmKey(msg)
	case ModeHelp:
		m.mode = ModeNormal
		return m, nil
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab", "h", "left", "l", "right":
		if m.pane == PaneSidebar {
			m.pane = PaneTaskList
		} else {
			m.pane = PaneSidebar
		}
		return m, nil

	case "j", "down":
		if m.pane == PaneSidebar {
			if m.catCursor < len(m.categories) {
				m.catCursor++
			}
		} else if m.taskCursor < len(m.visible)-1 {
			m.taskCursor++
		}
		return m, nil

	case "k", "up":
		if m.pane == PaneSidebar {
			if m.catCursor > 0 {
				m.catCursor--
			}
		} else if m.taskCursor > 0 {
			m.taskCursor--
		}
		return m, nil

	case "enter":
		if m.pane == PaneSidebar {
			scope := ""
			if cat := m.sidebarCategory(); cat != nil {
				scope = cat.ID
			}
			cmds := []tea.Cmd{m.setScope(scope)}
			if scope != "" {
				cmds = append(cmds, loadAllTasksCmd(m.client))
			}
			m.pane = PaneTaskList
			return m, tea.Batch(cmds...)
		}
		fallthrough

	case "x":
		if t := m.currentTask(); t != nil {
			return m, toggleTaskCmd(m.client, t.ID)
		}
		return m, nil

	case "a":
		m.form = newTaskForm(m.categories, nil)
		m.mode = ModeTaskForm
		m.errMsg = ""
		return m, nil

	case "e":
		if m.pane == PaneSidebar {
			if cat := m.sidebarCategory(); cat != nil {
				m.catEditing = cat
				m.catInput.SetValue(cat.Name)
				m.catInput.Focus()
				m.mode = ModeCategoryForm
			}
			return m, nil
		}
		if t := m.currentTask(); t != nil {
			m.form = newTaskForm(m.categories, t)
			m.mode = ModeTaskForm
			m.errMsg = ""
		}
		return m, nil

	case "c":
		m.catEditing = nil
		m.catInput.SetValue("")
		m.catInput.Focus()
		m.mode = ModeCategoryForm
		return m, nil

	case "d":
		if m.pane == PaneSidebar {
			if cat := m.sidebarCategory(); cat != nil {
				if m.cfg.ConfirmDelete {
					m.pendingDeleteCat = cat
					m.mode = ModeConfirmDelete
					return m, nil
				}
				return m, deleteCategoryCmd(m.client, cat.ID)
			}
			return m, nil
		}
		if t := m.currentTask(); t != nil {
			if m.cfg.ConfirmDelete {
				m.pendingDelete = t
				m.mode = ModeConfirmDelete
				return m, nil
			}
			return m, deleteTaskCmd(m.client, t.ID)
		}
		return m, nil

	case "/":
		m.searchInput.SetValue(m.query.Search)
		m.searchInput.Focus()
		m.mode = ModeSearch
		return m, nil

	case "f":
		m.query.Status = NextStatus(m.query.Status)
		m.refresh()
		return m, nil

	case "s":
		m.query.Sort = NextSort(m.query.Sort)
		m.refresh()
		return m, nil

	case "r":
		cmds := []tea.Cmd{
			loadTasksCmd(m.client, m.loadSeq, m.scope),
			loadCategoriesCmd(m.client),
		}
		if m.scope != "" {
			cmds = append(cmds, loadAllTasksCmd(m.client))
		}
		return m, tea.Batch(cmds...)

	case "y":
		if t := m.currentTask(); t != nil {
			if err := clipboard.WriteAll(t.Title); err == nil {
				m.message = "Yanked: " + t.Title
			}
		}
		return m, nil

	case "?":
		m.mode = ModeHelp
		return m, nil
	}

	return m, nil
}

func (m Model) handleTaskFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.errMsg = ""
		return m, nil

	case "tab", "down":
		m.form.nextField()
		return m, nil

	case "shift+tab", "up":
		m.form.prevField()
		return m, nil

	case "ctrl+p":
		m.form.cyclePriority()
		return m, nil

	case "ctrl+g":
		m.form.cycleCategory(m.categories)
		return m, nil

	case "enter":
		if err := m.form.validate(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		fields := m.form.fields(m.categories)
		if m.form.editing != nil {
			return m, updateTaskCmd(m.client, m.form.editing.ID, fields)
		}
		return m, createTaskCmd(m.client, fields)
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) handleCategoryFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		return m, nil

	case "enter":
		name := m.catInput.Value()
		if name == "" {
			m.errMsg = "name is required"
			return m, nil
		}
		fields := api.CategoryFields{Name: name}
		if m.catEditing != nil {
			fields.Color = m.catEditing.Color
			return m, updateCategoryCmd(m.client, m.catEditing.ID, fields)
		}
		return m, createCategoryCmd(m.client, fields)
	}

	var cmd tea.Cmd
	m.catInput, cmd = m.catInput.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.query.Search = ""
		m.searchInput.SetValue("")
		m.mode = ModeNormal
		m.refresh()
		return m, nil

	case "enter":
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.query.Search = m.searchInput.Value()
	m.refresh()
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		t, cat := m.pendingDelete, m.pendingDeleteCat
		m.pendingDelete = nil
		m.pendingDeleteCat = nil
		m.mode = ModeNormal
		if cat != nil {
			return m, deleteCategoryCmd(m.client, cat.ID)
		}
		if t != nil {
			return m, deleteTaskCmd(m.client, t.ID)
		}
		return m, nil
	}

	m.pendingDelete = nil
	m.pendingDeleteCat = nil
	m.mode = ModeNormal
	return m, nil
}
