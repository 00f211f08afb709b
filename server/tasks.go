package server

import (
	"fmt"
	"net/http"

	"github.com/blossomhq/blossom/internal/model"
	"github.com/labstack/echo/v4"
)

// handleListTasks lists the caller's tasks. Filters come from query
// params; archived tasks only show up when status=archived is asked for.
func (s *Server) handleListTasks(c echo.Context) error {
	filter := model.TaskFilter{
		Status:     c.QueryParam("status"),
		Priority:   c.QueryParam("priority"),
		CategoryID: c.QueryParam("categoryId"),
	}

	tasks, err := s.tasks.List(c.Request().Context(), userID(c), filter)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, fmt.Sprintf("Found %d petals in your garden!", len(tasks)), echo.Map{
		"tasks": tasks,
		"meta": echo.Map{
			"count": len(tasks),
		},
	})
}

// handleGetTask returns one task.
func (s *Server) handleGetTask(c echo.Context) error {
	task, err := s.tasks.Get(c.Request().Context(), c.Param("id"), userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Petal found in your garden!", echo.Map{"task": task})
}

// handleCreateTask creates a task, with subtasks if supplied.
func (s *Server) handleCreateTask(c echo.Context) error {
	var req model.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: invalid request body", model.ErrValidation))
	}

	task, err := s.tasks.Create(c.Request().Context(), userID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusCreated, "New petal added to your blossom!", echo.Map{"task": task})
}

// handleUpdateTask applies a partial update.
func (s *Server) handleUpdateTask(c echo.Context) error {
	var req model.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: invalid request body", model.ErrValidation))
	}

	task, err := s.tasks.Update(c.Request().Context(), c.Param("id"), userID(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Petal refreshed!", echo.Map{"task": task})
}

// handleDeleteTask hard-deletes a task.
func (s *Server) handleDeleteTask(c echo.Context) error {
	task, err := s.tasks.Delete(c.Request().Context(), c.Param("id"), userID(c))
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Petal released to blossom again elsewhere!", echo.Map{
		"deletedTask": task,
	})
}

// handleToggleTask flips completion.
func (s *Server) handleToggleTask(c echo.Context) error {
	var req model.ToggleRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: invalid request body", model.ErrValidation))
	}

	task, err := s.tasks.Toggle(c.Request().Context(), c.Param("id"), userID(c), req.Completed)
	if err != nil {
		return respondError(c, err)
	}

	message := "Petal reopened!"
	if task.Status == model.StatusCompleted {
		message = "Petal completed, nicely done!"
	}
	return respond(c, http.StatusOK, message, echo.Map{"task": task})
}

// handleStats returns aggregate statistics for the caller's garden.
func (s *Server) handleStats(c echo.Context) error {
	stats, err := s.stats.Stats(c.Request().Context(), userID(c))
	if err != nil {
		return respondError(c, err)
	}

	gardenHealth := "needs care"
	if stats.CompletionRate > 50 {
		gardenHealth = "thriving"
	}

	return respond(c, http.StatusOK, "Garden statistics gathered!", echo.Map{
		"stats": stats,
		"blossom": echo.Map{
			"gardenHealth": gardenHealth,
		},
	})
}

// handleArchiveCompleted bulk-archives every completed task. Archiving
// nothing is still a success.
func (s *Server) handleArchiveCompleted(c echo.Context) error {
	count, err := s.tasks.ArchiveCompleted(c.Request().Context(), userID(c))
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, fmt.Sprintf("Archived %d completed petals", count), echo.Map{
		"archivedCount": count,
	})
}

// handleListArchived lists the archive.
func (s *Server) handleListArchived(c echo.Context) error {
	filter := model.TaskFilter{
		Priority:   c.QueryParam("priority"),
		CategoryID: c.QueryParam("categoryId"),
	}

	tasks, err := s.tasks.ListArchived(c.Request().Context(), userID(c), filter)
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, fmt.Sprintf("Found %d archived petals", len(tasks)), echo.Map{
		"tasks": tasks,
		"meta": echo.Map{
			"count": len(tasks),
		},
	})
}

// handleRestoreTask moves an archived task back to pending.
func (s *Server) handleRestoreTask(c echo.Context) error {
	task, err := s.tasks.Restore(c.Request().Context(), c.Param("id"), userID(c))
	if err != nil {
		return respondError(c, err)
	}

	return respond(c, http.StatusOK, "Task restored to your garden!", echo.Map{"task": task})
}
