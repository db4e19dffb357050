package server

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Server is the TaskDeck API server
type Server struct {
	db      *sql.DB
	dialect string
	echo    *echo.Echo
}

// New creates a new server. The database URL selects the backend:
// postgres://... uses Postgres, sqlite://<path> uses SQLite (development
// and tests).
func New(dbURL string) (*Server, error) {
	db, dialect, err := openDatabase(dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &Server{
		db:      db,
		dialect: dialect,
	}

	// Run migrations
	if err := s.migrate(); err != nil {
		return nil, err
	}

	// Setup Echo
	s.setupEcho()

	return s, nil
}

func openDatabase(dbURL string) (*sql.DB, string, error) {
	if strings.HasPrefix(dbURL, "sqlite://") {
		dsn := strings.TrimPrefix(dbURL, "sqlite://")
		// Enforced on every pooled connection, needed for ON DELETE SET NULL
		// when a category is removed
		if strings.Contains(dsn, "?") {
			dsn += "&_pragma=foreign_keys(1)"
		} else {
			dsn += "?_pragma=foreign_keys(1)"
		}
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, "", err
		}
		return db, dialectSQLite, nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, "", err
	}
	return db, dialectPostgres, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Request/response logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("remote", req.RemoteAddr),
				logger.F("status", res.Status),
				logger.F("size", res.Size),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")

	// Auth endpoints (public)
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)
	api.POST("/magic-link", s.handleMagicLink)
	api.GET("/magic-link/:token", s.handleMagicLinkVerify)

	// Protected endpoints
	protected := api.Group("")
	protected.Use(s.authMiddleware)
	protected.GET("/me", s.handleMe)
	protected.POST("/logout", s.handleLogout)

	protected.GET("/profile", s.handleGetProfile)
	protected.PUT("/profile", s.handleUpdateProfile)

	protected.GET("/tasks", s.handleListTasks)
	protected.GET("/tasks/upcoming", s.handleUpcomingTasks)
	protected.GET("/tasks/:id", s.handleGetTask)
	protected.POST("/tasks", s.handleCreateTask)
	protected.PUT("/tasks/:id", s.handleUpdateTask)
	protected.POST("/tasks/:id/toggle", s.handleToggleTask)
	protected.DELETE("/tasks/:id", s.handleDeleteTask)

	protected.GET("/categories", s.handleListCategories)
	protected.GET("/categories/counts", s.handleCategoryCounts)
	protected.GET("/categories/:id", s.handleGetCategory)
	protected.POST("/categories", s.handleCreateCategory)
	protected.PUT("/categories/:id", s.handleUpdateCategory)
	protected.DELETE("/categories/:id", s.handleDeleteCategory)

	s.echo = e
}

// Close closes the database connection
func (s *Server) Close() error {
	return s.db.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
