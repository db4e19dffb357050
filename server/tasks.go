package server

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/existflow/taskdeck/internal/model"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type taskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	ReminderAt  *time.Time `json:"reminder_at"`
	Priority    string     `json:"priority"`
	CategoryID  *string    `json:"category_id"`
}

const taskColumns = `id, user_id, category_id, title, description, completed,
	completed_at, due_date, reminder_at, priority, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var t model.Task
	var categoryID sql.NullString
	var completedAt, dueDate, reminderAt sql.NullTime

	err := row.Scan(&t.ID, &t.UserID, &categoryID, &t.Title, &t.Description,
		&t.Completed, &completedAt, &dueDate, &reminderAt, &t.Priority,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}

	if categoryID.Valid {
		t.CategoryID = &categoryID.String
	}
	if completedAt.Valid {
		v := completedAt.Time
		t.CompletedAt = &v
	}
	if dueDate.Valid {
		v := dueDate.Time
		t.DueDate = &v
	}
	if reminderAt.Valid {
		v := reminderAt.Time
		t.ReminderAt = &v
	}
	return t, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// validateTaskRequest checks the request fields; a category reference must
// exist and belong to the calling user.
func (s *Server) validateTaskRequest(userID string, req *taskRequest) (string, bool) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return "title is required", false
	}
	if !model.ValidPriority(req.Priority) {
		return "priority must be low, medium, or high", false
	}
	if req.CategoryID != nil {
		var n int
		err := s.db.QueryRow(`
			SELECT COUNT(*) FROM categories WHERE id = $1 AND user_id = $2`,
			*req.CategoryID, userID,
		).Scan(&n)
		if err != nil || n == 0 {
			return "category not found", false
		}
	}
	return "", true
}

// handleListTasks returns all the user's tasks, optionally scoped to one
// category, newest-created-first.
func (s *Server) handleListTasks(c echo.Context) error {
	userID := c.Get("user_id").(string)
	categoryID := c.QueryParam("category_id")

	var rows *sql.Rows
	var err error
	if categoryID != "" {
		rows, err = s.db.Query(`
			SELECT `+taskColumns+` FROM tasks
			WHERE user_id = $1 AND category_id = $2
			ORDER BY created_at DESC`,
			userID, categoryID,
		)
	} else {
		rows, err = s.db.Query(`
			SELECT `+taskColumns+` FROM tasks
			WHERE user_id = $1
			ORDER BY created_at DESC`,
			userID,
		)
	}
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			c.Logger().Error("scan error:", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		tasks = append(tasks, t)
	}

	return c.JSON(http.StatusOK, tasks)
}

// handleUpcomingTasks returns not-completed tasks due within N days
// (default 7), soonest-due-first.
func (s *Server) handleUpcomingTasks(c echo.Context) error {
	userID := c.Get("user_id").(string)

	days := 7
	if v := c.QueryParam("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "days must be a positive integer"})
		}
		days = n
	}

	cutoff := time.Now().UTC().Add(time.Duration(days) * 24 * time.Hour)

	rows, err := s.db.Query(`
		SELECT `+taskColumns+` FROM tasks
		WHERE user_id = $1 AND completed = FALSE
		  AND due_date IS NOT NULL AND due_date <= $2
		ORDER BY due_date ASC`,
		userID, cutoff,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			c.Logger().Error("scan error:", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		tasks = append(tasks, t)
	}

	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) getTask(userID, taskID string) (model.Task, error) {
	row := s.db.QueryRow(`
		SELECT `+taskColumns+` FROM tasks
		WHERE id = $1 AND user_id = $2`,
		taskID, userID,
	)
	return scanTask(row)
}

// handleGetTask returns one task scoped to its owner
func (s *Server) handleGetTask(c echo.Context) error {
	userID := c.Get("user_id").(string)

	task, err := s.getTask(userID, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "task not found"})
	}

	return c.JSON(http.StatusOK, task)
}

// handleCreateTask creates a task; the server assigns id and timestamps
func (s *Server) handleCreateTask(c echo.Context) error {
	userID := c.Get("user_id").(string)

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if msg, ok := s.validateTaskRequest(userID, &req); !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	taskID := uuid.New().String()
	now := time.Now().UTC()

	var completedAt sql.NullTime
	if req.Completed {
		completedAt = sql.NullTime{Time: now, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO tasks (id, user_id, category_id, title, description,
			completed, completed_at, due_date, reminder_at, priority,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		taskID, userID, nullString(req.CategoryID), req.Title, req.Description,
		req.Completed, completedAt, nullTime(req.DueDate), nullTime(req.ReminderAt),
		req.Priority, now,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	task, err := s.getTask(userID, taskID)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusCreated, task)
}

// handleUpdateTask replaces the task's editable fields. Optional fields not
// carried in the request clear any previously stored value. completed_at is
// stamped or cleared on a completion transition, never touched otherwise.
func (s *Server) handleUpdateTask(c echo.Context) error {
	userID := c.Get("user_id").(string)
	taskID := c.Param("id")

	existing, err := s.getTask(userID, taskID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "task not found"})
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if msg, ok := s.validateTaskRequest(userID, &req); !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	now := time.Now().UTC()

	completedAt := nullTime(existing.CompletedAt)
	if req.Completed && !existing.Completed {
		completedAt = sql.NullTime{Time: now, Valid: true}
	} else if !req.Completed && existing.Completed {
		completedAt = sql.NullTime{}
	}

	_, err = s.db.Exec(`
		UPDATE tasks SET category_id = $3, title = $4, description = $5,
			completed = $6, completed_at = $7, due_date = $8, reminder_at = $9,
			priority = $10, updated_at = $11
		WHERE id = $1 AND user_id = $2`,
		taskID, userID, nullString(req.CategoryID), req.Title, req.Description,
		req.Completed, completedAt, nullTime(req.DueDate), nullTime(req.ReminderAt),
		req.Priority, now,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	task, err := s.getTask(userID, taskID)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, task)
}

// handleToggleTask flips completion, stamping or clearing completed_at
// atomically with updated_at.
func (s *Server) handleToggleTask(c echo.Context) error {
	userID := c.Get("user_id").(string)
	taskID := c.Param("id")

	existing, err := s.getTask(userID, taskID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "task not found"})
	}

	now := time.Now().UTC()
	completed := !existing.Completed

	var completedAt sql.NullTime
	if completed {
		completedAt = sql.NullTime{Time: now, Valid: true}
	}

	_, err = s.db.Exec(`
		UPDATE tasks SET completed = $3, completed_at = $4, updated_at = $5
		WHERE id = $1 AND user_id = $2`,
		taskID, userID, completed, completedAt, now,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	task, err := s.getTask(userID, taskID)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, task)
}

// handleDeleteTask hard-deletes a task
func (s *Server) handleDeleteTask(c echo.Context) error {
	userID := c.Get("user_id").(string)
	taskID := c.Param("id")

	res, err := s.db.Exec(`
		DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, userID,
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "task not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
