package tui

import "github.com/mattn/go-runewidth"

// truncate shortens a string to a display width with ellipsis, counting
// wide runes correctly.
func truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "…")
}

// pad right-pads a string to a display width.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
