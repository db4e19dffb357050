package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/taskdeck/internal/api"
	"github.com/existflow/taskdeck/internal/config"
	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneSidebar Pane = iota
	PaneTaskList
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeTaskForm
	ModeCategoryForm
	ModeSearch
	ModeConfirmDelete
	ModeHelp
)

// Model is the main TUI model. It owns the loaded task and category sets
// exclusively; every mutation goes through its own message handlers.
type Model struct {
	client *api.Client
	cfg    *config.Config

	// Loaded data
	categories []model.Category
	tasks      []model.Task // current scope
	allTasks   []model.Task // unscoped, for sidebar counts
	visible    []TaskRow    // derived: query applied + categories joined

	// Scope is the active category filter; empty means all tasks.
	scope string
	// loadSeq is a monotonic token bumped on every scope change; task
	// responses carrying a stale token are discarded.
	loadSeq int

	query Query

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	catCursor  int // 0 = "All Tasks", i+1 = categories[i]
	taskCursor int

	// Task form
	form taskForm

	// Category form
	catInput   textinput.Model
	catEditing *model.Category

	// Search input (the query's search term is committed live)
	searchInput textinput.Model

	// Pending delete confirmation
	pendingDelete    *model.Task
	pendingDeleteCat *model.Category

	// Reminder dedupe for the minute tick
	notified map[string]bool

	message string
	errMsg  string
}

// NewModel creates the TUI model over an authenticated API client.
func NewModel(client *api.Client, cfg *config.Config) Model {
	logger.Info("Initializing TUI model")

	ci := textinput.New()
	ci.Placeholder = "Category name"
	ci.CharLimit = 64
	ci.Width = 30

	si := textinput.New()
	si.Placeholder = "Search title or description..."
	si.CharLimit = 128
	si.Width = 40

	return Model{
		client:      client,
		cfg:         cfg,
		pane:        PaneTaskList,
		mode:        ModeNormal,
		query:       Query{Status: StatusAll, Sort: SortCreated},
		catInput:    ci,
		searchInput: si,
		notified:    make(map[string]bool),
	}
}

// Init issues the initial parallel loads and starts the reminder tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadTasksCmd(m.client, m.loadSeq, m.scope),
		loadCategoriesCmd(m.client),
		reminderTickCmd(),
	)
}

// refresh recomputes the derived view from the loaded state. Pure and cheap;
// called after every state change.
func (m *Model) refresh() {
	m.visible = JoinCategories(m.query.Apply(m.tasks), m.categories)
	if m.taskCursor >= len(m.visible) {
		m.taskCursor = len(m.visible) - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

// setScope changes the active category filter and reloads, bumping the
// sequence token so late responses from the previous scope are dropped.
func (m *Model) setScope(categoryID string) tea.Cmd {
	m.scope = categoryID
	m.loadSeq++
	m.taskCursor = 0
	return loadTasksCmd(m.client, m.loadSeq, m.scope)
}

func (m *Model) currentTask() *model.Task {
	if m.taskCursor < len(m.visible) {
		t := m.visible[m.taskCursor].Task
		return &t
	}
	return nil
}

// sidebarCategory returns the category under the sidebar cursor, nil for
// the "All Tasks" entry.
func (m *Model) sidebarCategory() *model.Category {
	if m.catCursor == 0 || m.catCursor > len(m.categories) {
		return nil
	}
	return &m.categories[m.catCursor-1]
}
