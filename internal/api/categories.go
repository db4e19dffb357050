package api

import "github.com/existflow/taskdeck/internal/model"

// CategoryFields carries a category's editable fields.
type CategoryFields struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListCategories returns all the owner's categories.
func (c *Client) ListCategories() ([]model.Category, error) {
	categories := []model.Category{}
	if err := c.Get("/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryCounts returns the owner's categories with their task counts.
func (c *Client) CategoryCounts() ([]model.CategoryWithCount, error) {
	categories := []model.CategoryWithCount{}
	if err := c.Get("/categories/counts", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns a single category by ID, scoped to the owner.
func (c *Client) GetCategory(id string) (*model.Category, error) {
	var cat model.Category
	if err := c.Get("/categories/"+id, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateCategory creates a category. A duplicate name for the same owner
// fails with a VALIDATION error.
func (c *Client) CreateCategory(fields CategoryFields) (*model.Category, error) {
	var cat model.Category
	if err := c.Post("/categories", fields, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// UpdateCategory updates a category's name, color, and description.
func (c *Client) UpdateCategory(id string, fields CategoryFields) (*model.Category, error) {
	var cat model.Category
	if err := c.Put("/categories/"+id, fields, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory deletes a category. Its tasks are detached, not deleted.
func (c *Client) DeleteCategory(id string) error {
	return c.Delete("/categories/" + id)
}
