package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/taskdeck/internal/model"
)

// Color palette
var (
	// Priority colors
	PriorityHighColor   = lipgloss.Color("#FF6B6B")
	PriorityMediumColor = lipgloss.Color("#FFB347")
	PriorityLowColor    = lipgloss.Color("#4ECDC4")

	// Status colors
	Completed = lipgloss.Color("#95E1A3")
	Overdue   = lipgloss.Color("#FF6B6B")

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	SidebarStyle = lipgloss.NewStyle().
			Width(26).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	TaskListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	CategoryItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	CategoryItemSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(Surface).
					Bold(true)

	TaskItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	OverdueStyle = lipgloss.NewStyle().
			Foreground(Overdue).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Overdue).
			Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// priorityStyle returns the style for a priority level
func priorityStyle(priority string) lipgloss.Style {
	switch priority {
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(PriorityHighColor).Bold(true)
	case model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(PriorityMediumColor)
	default:
		return lipgloss.NewStyle().Foreground(PriorityLowColor)
	}
}

// priorityLabel returns the badge text, always three cells wide so task
// rows line up regardless of priority.
func priorityLabel(priority string) string {
	switch priority {
	case model.PriorityHigh:
		return "!!!"
	case model.PriorityMedium:
		return "!! "
	case model.PriorityLow:
		return "!  "
	default:
		return "   "
	}
}

// formatPriority renders a short colored priority badge
func formatPriority(priority string) string {
	if priority == "" {
		return priorityLabel(priority)
	}
	return priorityStyle(priority).Render(priorityLabel(priority))
}

// categoryBadge renders a category name in its color
func categoryBadge(cat *model.Category) string {
	if cat == nil {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render("●" + cat.Name)
}
