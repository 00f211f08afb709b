package server

import (
	"fmt"
	"net/http"

	"github.com/blossomhq/blossom/internal/model"
	"github.com/labstack/echo/v4"
)

// handleListCategories returns the caller's categories, alphabetical.
func (s *Server) handleListCategories(c echo.Context) error {
	categories, err := s.categories.List(c.Request().Context(), userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Categories gathered", echo.Map{"categories": categories})
}

// handleCreateCategory creates a category.
func (s *Server) handleCreateCategory(c echo.Context) error {
	var req model.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: invalid request body", model.ErrValidation))
	}

	category, err := s.categories.Create(c.Request().Context(), userID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusCreated, "Category created successfully", echo.Map{"category": category})
}

// handleUpdateCategory applies a partial update to a category.
func (s *Server) handleUpdateCategory(c echo.Context) error {
	var req model.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: invalid request body", model.ErrValidation))
	}

	category, err := s.categories.Update(c.Request().Context(), c.Param("id"), userID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Category updated successfully", echo.Map{"category": category})
}

// handleDeleteCategory deletes a category. Tasks that referenced it become
// uncategorized.
func (s *Server) handleDeleteCategory(c echo.Context) error {
	category, err := s.categories.Delete(c.Request().Context(), c.Param("id"), userID(c))
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Category deleted successfully", echo.Map{
		"deletedCategory": category,
	})
}
