package server

import (
	"fmt"
	"net/http"

	"github.com/blossomhq/blossom/internal/auth"
	"github.com/blossomhq/blossom/internal/model"
	"github.com/labstack/echo/v4"
)

// handleRegister creates an account and returns a token pair.
func (s *Server) handleRegister(c echo.Context) error {
	var req model.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: invalid request body", model.ErrValidation))
	}

	result, err := s.auth.Register(c.Request().Context(), req.Email, req.Password, req.Username)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusCreated, "Welcome to Blossom! Your garden is ready", echo.Map{
		"user":   result.User,
		"tokens": result.Tokens,
	})
}

// handleLogin authenticates and returns a token pair plus recent tasks.
func (s *Server) handleLogin(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: invalid request body", model.ErrValidation))
	}

	result, err := s.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Welcome back to your garden!", echo.Map{
		"user":        result.User,
		"tokens":      result.Tokens,
		"recentTasks": result.RecentTasks,
		"taskCount":   result.TaskCount,
	})
}

// handleRefresh issues a new access token against a refresh token.
func (s *Server) handleRefresh(c echo.Context) error {
	var req model.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: invalid request body", model.ErrValidation))
	}
	if req.RefreshToken == "" {
		return respondError(c, fmt.Errorf("%w: refresh token is required", model.ErrValidation))
	}

	access, user, err := s.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Token refreshed!", echo.Map{
		"accessToken": access,
		"user":        user,
	})
}

// handleValidate lets clients check whether their token is still good.
func (s *Server) handleValidate(c echo.Context) error {
	token := auth.ExtractBearer(c.Request().Header.Get("Authorization"))
	if token == "" {
		return respondError(c, fmt.Errorf("%w: no token provided", model.ErrUnauthorized))
	}

	user, claims, err := s.auth.Validate(c.Request().Context(), token)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Token is valid!", echo.Map{
		"valid": true,
		"user":  user,
		"decoded": echo.Map{
			"userId":   claims.UserID,
			"email":    claims.Email,
			"username": claims.Username,
			"type":     claims.Type,
		},
	})
}

// handleProfile returns the current user with a task summary.
func (s *Server) handleProfile(c echo.Context) error {
	profile, err := s.auth.GetProfile(c.Request().Context(), userID(c))
	if err != nil {
		return respondError(c, err)
	}

	gardenHealth := "ready for new petals"
	if profile.TaskCount > 0 {
		gardenHealth = "blooming"
	}

	return respond(c, http.StatusOK, "Your blossom profile", echo.Map{
		"user":        profile.User,
		"taskCount":   profile.TaskCount,
		"recentTasks": profile.RecentTasks,
		"blossom": echo.Map{
			"gardenHealth": gardenHealth,
			"petalCount":   profile.TaskCount,
		},
	})
}

// handlePasswordTips serves static password guidance.
func (s *Server) handlePasswordTips(c echo.Context) error {
	return respond(c, http.StatusOK, "Grow a strong password garden!", echo.Map{
		"tips": auth.PasswordTips(),
	})
}
