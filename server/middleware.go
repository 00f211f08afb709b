package server

import (
	"errors"
	"fmt"

	"github.com/blossomhq/blossom/internal/auth"
	"github.com/blossomhq/blossom/internal/model"
	"github.com/labstack/echo/v4"
)

// authMiddleware rejects any request without a valid access token before
// handler logic runs. Expiry and malformation both come back 401 but with
// different messages so clients can tell the user to log in again.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := auth.ExtractBearer(c.Request().Header.Get("Authorization"))
		if token == "" {
			return respondError(c, fmt.Errorf("%w: authentication required, please log in to access this garden", model.ErrUnauthorized))
		}

		claims, err := s.tokens.Verify(token)
		if err != nil {
			if errors.Is(err, model.ErrTokenExpired) {
				return respondError(c, fmt.Errorf("%w: token has expired, please log in again", model.ErrTokenExpired))
			}
			return respondError(c, fmt.Errorf("%w: invalid token format", model.ErrTokenMalformed))
		}

		if claims.Type != auth.TokenTypeAccess {
			return respondError(c, fmt.Errorf("%w: please use an access token", model.ErrUnauthorized))
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("username", claims.Username)
		return next(c)
	}
}

// optionalAuthMiddleware attaches identity when a valid access token is
// present and lets the request through either way.
func (s *Server) optionalAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := auth.ExtractBearer(c.Request().Header.Get("Authorization"))
		if token != "" {
			if claims, err := s.tokens.Verify(token); err == nil && claims.Type == auth.TokenTypeAccess {
				c.Set("user_id", claims.UserID)
				c.Set("email", claims.Email)
				c.Set("username", claims.Username)
			}
		}
		return next(c)
	}
}

// userID returns the authenticated caller's id set by authMiddleware.
func userID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}
