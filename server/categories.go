package server

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/existflow/taskdeck/internal/model"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

const categoryColumns = `id, user_id, name, color, description, created_at, updated_at`

func scanCategory(row rowScanner) (model.Category, error) {
	var cat model.Category
	err := row.Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.Color,
		&cat.Description, &cat.CreatedAt, &cat.UpdatedAt)
	return cat, err
}

func (s *Server) getCategory(userID, categoryID string) (model.Category, error) {
	row := s.db.QueryRow(`
		SELECT `+categoryColumns+` FROM categories
		WHERE id = $1 AND user_id = $2`,
		categoryID, userID,
	)
	return scanCategory(row)
}

// handleListCategories returns the user's categories ordered by name
func (s *Server) handleListCategories(c echo.Context) error {
	userID := c.Get("user_id").(string)

	rows, err := s.db.Query(`
		SELECT `+categoryColumns+` FROM categories
		WHERE user_id = $1
		ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			c.Logger().Error("scan error:", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		categories = append(categories, cat)
	}

	return c.JSON(http.StatusOK, categories)
}

// handleCategoryCounts returns categories joined with their task counts
func (s *Server) handleCategoryCounts(c echo.Context) error {
	userID := c.Get("user_id").(string)

	rows, err := s.db.Query(`
		SELECT c.id, c.user_id, c.name, c.color, c.description,
		       c.created_at, c.updated_at, COUNT(t.id)
		FROM categories c
		LEFT JOIN tasks t ON t.category_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id, c.user_id, c.name, c.color, c.description,
		         c.created_at, c.updated_at
		ORDER BY c.name ASC`,
		userID,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	categories := []model.CategoryWithCount{}
	for rows.Next() {
		var cat model.CategoryWithCount
		err := rows.Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.Color,
			&cat.Description, &cat.CreatedAt, &cat.UpdatedAt, &cat.TaskCount)
		if err != nil {
			c.Logger().Error("scan error:", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		categories = append(categories, cat)
	}

	return c.JSON(http.StatusOK, categories)
}

// handleGetCategory returns one category scoped to its owner
func (s *Server) handleGetCategory(c echo.Context) error {
	userID := c.Get("user_id").(string)

	cat, err := s.getCategory(userID, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "category not found"})
	}

	return c.JSON(http.StatusOK, cat)
}

// handleCreateCategory creates a category; name is unique per owner
func (s *Server) handleCreateCategory(c echo.Context) error {
	userID := c.Get("user_id").(string)

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	if req.Color == "" {
		var n int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories WHERE user_id = $1`, userID).Scan(&n); err == nil {
			req.Color = model.PaletteColor(n)
		} else {
			req.Color = model.DefaultColor
		}
	}

	categoryID := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.Exec(`
		INSERT INTO categories (id, user_id, name, color, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		categoryID, userID, req.Name, req.Color, req.Description, now,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return c.JSON(http.StatusConflict, map[string]string{"error": "category name already exists"})
		}
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	cat, err := s.getCategory(userID, categoryID)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusCreated, cat)
}

// handleUpdateCategory updates name, color, and description
func (s *Server) handleUpdateCategory(c echo.Context) error {
	userID := c.Get("user_id").(string)
	categoryID := c.Param("id")

	existing, err := s.getCategory(userID, categoryID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "category not found"})
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	if req.Color == "" {
		req.Color = existing.Color
	}

	_, err = s.db.Exec(`
		UPDATE categories SET name = $3, color = $4, description = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2`,
		categoryID, userID, req.Name, req.Color, req.Description, time.Now().UTC(),
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return c.JSON(http.StatusConflict, map[string]string{"error": "category name already exists"})
		}
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	cat, err := s.getCategory(userID, categoryID)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, cat)
}

// handleDeleteCategory deletes a category and detaches its tasks. Dependent
// tasks survive with a cleared category reference.
func (s *Server) handleDeleteCategory(c echo.Context) error {
	userID := c.Get("user_id").(string)
	categoryID := c.Param("id")

	tx, err := s.db.Begin()
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE tasks SET category_id = NULL, updated_at = $3
		WHERE category_id = $1 AND user_id = $2`,
		categoryID, userID, time.Now().UTC(),
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	var res sql.Result
	res, err = tx.Exec(`
		DELETE FROM categories WHERE id = $1 AND user_id = $2`,
		categoryID, userID,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "category not found"})
	}

	if err := tx.Commit(); err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
