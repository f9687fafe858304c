package handlers

import (
	"net/http"

	"github.com/anonto42/snapfeed/backend/internal/models"
	"github.com/anonto42/snapfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/sync-user", h.SyncUser)
}

// SyncUser mirrors the caller's identity into the users table.
func (h *UserHandler) SyncUser(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	user, created, err := h.users.Sync(c.Request().Context(), viewer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.SyncUserResponse{Success: true, Created: created, User: user})
}
