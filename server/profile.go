package server

import (
	"net/http"
	"time"

	"github.com/existflow/taskdeck/internal/model"
	"github.com/labstack/echo/v4"
)

type profileRequest struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

func (s *Server) getProfile(userID string) (model.Profile, error) {
	var p model.Profile
	err := s.db.QueryRow(`
		SELECT id, email, display_name, avatar_url, created_at, updated_at
		FROM profiles WHERE id = $1`,
		userID,
	).Scan(&p.ID, &p.Email, &p.DisplayName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// handleGetProfile returns the caller's profile
func (s *Server) handleGetProfile(c echo.Context) error {
	userID := c.Get("user_id").(string)

	profile, err := s.getProfile(userID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "profile not found"})
	}

	return c.JSON(http.StatusOK, profile)
}

// handleUpdateProfile updates display name and avatar URL. Email is
// immutable through this endpoint.
func (s *Server) handleUpdateProfile(c echo.Context) error {
	userID := c.Get("user_id").(string)

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	_, err := s.db.Exec(`
		UPDATE profiles SET display_name = $2, avatar_url = $3, updated_at = $4
		WHERE id = $1`,
		userID, req.DisplayName, req.AvatarURL, time.Now().UTC(),
	)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	profile, err := s.getProfile(userID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "profile not found"})
	}

	return c.JSON(http.StatusOK, profile)
}
