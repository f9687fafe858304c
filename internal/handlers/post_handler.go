package handlers

import (
	"net/http"

	"github.com/anonto42/snapfeed/backend/internal/models"
	"github.com/anonto42/snapfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler serves the feed and single posts.
type PostHandler struct {
	feed *services.FeedService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(feed *services.FeedService) *PostHandler {
	return &PostHandler{feed: feed}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
}

// GetPosts handles GET /posts?limit=&offset=
func (h *PostHandler) GetPosts(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	page := services.NormalizePage(c.QueryParam("limit"), c.QueryParam("offset"))
	feed, err := h.feed.GetFeed(c.Request().Context(), viewer, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feed)
}

// GetPost handles GET /posts/:id
func (h *PostHandler) GetPost(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	post, err := h.feed.GetPost(c.Request().Context(), viewer, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.PostResponse{Post: post})
}
