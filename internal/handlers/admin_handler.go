package handlers

import (
	"net/http"

	"github.com/anonto42/snapfeed/backend/internal/apperr"
	"github.com/anonto42/snapfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AdminHandler exposes development-only maintenance routes.
type AdminHandler struct {
	seed    *services.SeedService
	enabled bool
}

func NewAdminHandler(seed *services.SeedService, enabled bool) *AdminHandler {
	return &AdminHandler{seed: seed, enabled: enabled}
}

func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/admin/seed-posts", h.SeedPosts)
}

// SeedPosts handles POST /admin/seed-posts
func (h *AdminHandler) SeedPosts(c echo.Context) error {
	if !h.enabled {
		return apperr.NotFound("Not found")
	}

	res, err := h.seed.SeedPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
