package server

import (
	"net/http"
	"time"

	"github.com/blossomhq/blossom/internal/auth"
	"github.com/blossomhq/blossom/internal/config"
	"github.com/blossomhq/blossom/internal/logger"
	"github.com/blossomhq/blossom/internal/service"
	"github.com/blossomhq/blossom/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server is the Blossom API server
type Server struct {
	db         *store.DB
	echo       *echo.Echo
	tokens     *auth.TokenService
	auth       *service.AuthService
	tasks      *service.TaskService
	categories *service.CategoryService
	stats      *service.StatsService
}

// New creates a new server
func New(cfg config.ServerConfig) (*Server, error) {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		path, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		dsn = path
	}

	db, err := store.Open(dsn)
	if err != nil {
		return nil, err
	}

	users := store.NewUserStore(db)
	tasks := store.NewTaskStore(db)
	categories := store.NewCategoryStore(db)

	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	s := &Server{
		db:         db,
		tokens:     tokens,
		auth:       service.NewAuthService(users, tasks, hasher, tokens),
		tasks:      service.NewTaskService(tasks, categories),
		categories: service.NewCategoryService(categories),
		stats:      service.NewStatsService(tasks),
	}

	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("using the default JWT secret; set BLOSSOM_JWT_SECRET in production")
	}

	if cfg.SeedDemo {
		if err := s.seedDemo(); err != nil {
			logger.Warn("demo seed failed", logger.F("error", err))
		}
	}

	s.setupEcho()

	return s, nil
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
			logger.Info("HTTP",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/", s.handleRoot, s.optionalAuthMiddleware)
	e.GET("/health", s.handleHealth)
	e.GET("/api/health", s.handleHealth)

	api := e.Group("/api")

	// Auth endpoints
	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.handleRegister)
	authGroup.POST("/login", s.handleLogin)
	authGroup.POST("/refresh", s.handleRefresh)
	authGroup.POST("/validate", s.handleValidate)
	authGroup.GET("/password-tips", s.handlePasswordTips)
	authGroup.GET("/profile", s.handleProfile, s.authMiddleware)

	// Category endpoints (protected)
	categories := api.Group("/categories", s.authMiddleware)
	categories.GET("", s.handleListCategories)
	categories.POST("", s.handleCreateCategory)
	categories.PUT("/:id", s.handleUpdateCategory)
	categories.DELETE("/:id", s.handleDeleteCategory)

	// Task endpoints (protected)
	tasks := api.Group("/tasks", s.authMiddleware)
	tasks.GET("", s.handleListTasks)
	tasks.POST("", s.handleCreateTask)
	tasks.GET("/stats", s.handleStats)
	tasks.POST("/archive/completed", s.handleArchiveCompleted)
	tasks.GET("/archive/list", s.handleListArchived)
	tasks.GET("/:id", s.handleGetTask)
	tasks.PUT("/:id", s.handleUpdateTask)
	tasks.DELETE("/:id", s.handleDeleteTask)
	tasks.PATCH("/:id/toggle", s.handleToggleTask)
	tasks.PATCH("/:id/restore", s.handleRestoreTask)

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
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "blossom-backend",
	})
}

func (s *Server) handleRoot(c echo.Context) error {
	message := "Welcome to the Blossom Task Manager API!"
	if username, ok := c.Get("username").(string); ok && username != "" {
		message = "Welcome back to your garden, " + username + "!"
	}
	return respond(c, http.StatusOK, message, echo.Map{
		"version": "1.0.0",
		"endpoints": echo.Map{
			"auth":       "/api/auth",
			"tasks":      "/api/tasks",
			"categories": "/api/categories",
		},
		"theme": "cherry-blossom",
		"motto": "Grow your goals, one petal at a time.",
	})
}
