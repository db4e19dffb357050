package model

import "time"

// DefaultColor is used when a category is created without a color.
const DefaultColor = "#4ECDC4"

// Palette is the fixed set of colors cycled through for new categories.
var Palette = []string{
	"#4ECDC4", // teal
	"#FFB347", // orange
	"#95E1A3", // green
	"#FF6B6B", // red
	"#FFE66D", // yellow
	"#6C757D", // gray
}

// DefaultCategories are seeded for every new account.
var DefaultCategories = []Category{
	{Name: "Work", Color: "#4ECDC4"},
	{Name: "Personal", Color: "#FFB347"},
	{Name: "Shopping", Color: "#95E1A3"},
	{Name: "Health", Color: "#FF6B6B"},
}

// Category groups tasks. Name is unique per owner.
type Category struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryWithCount is a category plus the number of tasks referencing it.
type CategoryWithCount struct {
	Category
	TaskCount int `json:"task_count"`
}

// PaletteColor returns the palette color for the n-th category.
func PaletteColor(n int) string {
	if len(Palette) == 0 {
		return DefaultColor
	}
	return Palette[n%len(Palette)]
}
