package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings, used to render the help overlay
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Switch   key.Binding
	Enter    key.Binding
	Add      key.Binding
	Edit     key.Binding
	Done     key.Binding
	Delete   key.Binding
	Category key.Binding
	Search   key.Binding
	Filter   key.Binding
	Sort     key.Binding
	Refresh  key.Binding
	Yank     key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Switch:   key.NewBinding(key.WithKeys("tab", "h", "l"), key.WithHelp("tab", "switch pane")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/toggle")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Done:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle done")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new category")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle status filter")),
	Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Yank:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank title")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
