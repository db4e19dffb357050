package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the full screen
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ModeTaskForm:
		return m.viewTaskForm()
	case ModeCategoryForm:
		return m.viewCategoryForm()
	case ModeHelp:
		return m.viewHelp()
	}

	sidebar := SidebarStyle.Render(m.viewSidebar())
	tasks := TaskListStyle.Width(m.width - 28).Render(m.viewTaskList())
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, tasks)

	header := HeaderStyle.Render("TaskDeck")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.viewStatusBar())
}

func (m Model) viewSidebar() string {
	var b strings.Builder

	counts, total := CategoryCounts(m.allTasks)

	line := fmt.Sprintf("%s (%d)", "All Tasks", total)
	if m.catCursor == 0 {
		if m.pane == PaneSidebar {
			line = "> " + line
		}
		b.WriteString(CategoryItemSelectedStyle.Render(line))
	} else {
		b.WriteString(CategoryItemStyle.Render(line))
	}
	b.WriteString("\n")

	for i, cat := range m.categories {
		line := fmt.Sprintf("%s %s (%d)",
			lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render("●"),
			truncate(cat.Name, 16), counts[cat.ID])
		if m.catCursor == i+1 {
			if m.pane == PaneSidebar {
				line = "> " + line
			}
			b.WriteString(CategoryItemSelectedStyle.Render(line))
		} else {
			b.WriteString(CategoryItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewTaskList() string {
	if len(m.visible) == 0 {
		if m.query.Search != "" {
			return HelpStyle.Render("No tasks match your search.")
		}
		return HelpStyle.Render("No tasks. Press 'a' to add one.")
	}

	var b strings.Builder
	for i, row := range m.visible {
		b.WriteString(m.viewTaskRow(i, row))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewTaskRow(i int, row TaskRow) string {
	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}

	title := truncate(row.Title, 46)

	due := ""
	if row.DueDate != nil {
		due = row.DueDate.Local().Format("Jan 2")
		if row.IsOverdue() {
			due = OverdueStyle.Render(due + " overdue")
		}
	}

	line := fmt.Sprintf("%s %s %s  %s  %s",
		check, formatPriority(row.Priority), pad(title, 46),
		categoryBadge(row.Category), due)

	if i == m.taskCursor && m.pane == PaneTaskList {
		return TaskItemSelectedStyle.Render("> " + line)
	}
	if row.Completed {
		return TaskDoneStyle.Render("  " + line)
	}
	return TaskItemStyle.Render("  " + line)
}

func (m Model) viewStatusBar() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("filter:%s", m.query.Status))
	parts = append(parts, fmt.Sprintf("sort:%s", m.query.Sort))
	if m.query.Search != "" {
		parts = append(parts, fmt.Sprintf("search:%q", m.query.Search))
	}
	if m.mode == ModeSearch {
		parts = append(parts, "/"+m.searchInput.Value())
	}
	if m.mode == ModeConfirmDelete && m.pendingDelete != nil {
		parts = append(parts, OverdueStyle.Render(
			fmt.Sprintf("delete %q? y/n", truncate(m.pendingDelete.Title, 30))))
	}
	if m.mode == ModeConfirmDelete && m.pendingDeleteCat != nil {
		parts = append(parts, OverdueStyle.Render(
			fmt.Sprintf("delete category %q and detach its tasks? y/n",
				truncate(m.pendingDeleteCat.Name, 30))))
	}

	status := strings.Join(parts, "  ")
	if m.errMsg != "" {
		status += "  " + ErrorStyle.Render(m.errMsg)
	} else if m.message != "" {
		status += "  " + m.message
	}

	help := HelpStyle.Render("a:add e:edit x:done d:del /:search f:filter s:sort ?:help q:quit")
	return StatusBarStyle.Width(m.width).Render(status + "\n" + help)
}

func (m Model) viewTaskForm() string {
	var b strings.Builder

	if m.form.editing != nil {
		b.WriteString(HeaderStyle.Render("Edit Task"))
	} else {
		b.WriteString(HeaderStyle.Render("New Task"))
	}
	b.WriteString("\n\n")

	labels := []string{"Title", "Description", "Due date", "Reminder"}
	for i, in := range m.form.inputs {
		cursor := "  "
		if i == m.form.focus {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-12s %s\n", cursor, labels[i], in.View()))
	}

	priority := m.form.priority
	if priority == "" {
		priority = "none"
	}
	b.WriteString(fmt.Sprintf("\n  Priority: %s (ctrl+p)   Category: %s (ctrl+g)\n",
		priority, m.form.categoryLabel(m.categories)))

	if m.errMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n" + HelpStyle.Render("enter:save  tab:next field  esc:cancel"))

	return ModalStyle.Render(b.String())
}

func (m Model) viewCategoryForm() string {
	var b strings.Builder

	if m.catEditing != nil {
		b.WriteString(HeaderStyle.Render("Edit Category"))
	} else {
		b.WriteString(HeaderStyle.Render("New Category"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.catInput.View())

	if m.errMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.errMsg))
	}
	b.WriteString("\n\n" + HelpStyle.Render("enter:save  esc:cancel"))

	return ModalStyle.Render(b.String())
}

func (m Model) viewHelp() string {
	bindings := []struct{ key, desc string }{
		{keys.Up.Help().Key, keys.Up.Help().Desc},
		{keys.Down.Help().Key, keys.Down.Help().Desc},
		{keys.Switch.Help().Key, keys.Switch.Help().Desc},
		{keys.Enter.Help().Key, keys.Enter.Help().Desc},
		{keys.Add.Help().Key, keys.Add.Help().Desc},
		{keys.Edit.Help().Key, keys.Edit.Help().Desc},
		{keys.Done.Help().Key, keys.Done.Help().Desc},
		{keys.Delete.Help().Key, keys.Delete.Help().Desc},
		{keys.Category.Help().Key, keys.Category.Help().Desc},
		{keys.Search.Help().Key, keys.Search.Help().Desc},
		{keys.Filter.Help().Key, keys.Filter.Help().Desc},
		{keys.Sort.Help().Key, keys.Sort.Help().Desc},
		{keys.Refresh.Help().Key, keys.Refresh.Help().Desc},
		{keys.Yank.Help().Key, keys.Yank.Help().Desc},
		{keys.Quit.Help().Key, keys.Quit.Help().Desc},
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", bind.key, bind.desc))
	}
	b.WriteString("\n" + HelpStyle.Render("press any key to close"))

	return ModalStyle.Render(b.String())
}
