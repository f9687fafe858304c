package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/anonto42/snapfeed/backend/internal/apperr"
	"github.com/anonto42/snapfeed/backend/internal/models"
	"github.com/anonto42/snapfeed/backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const maxLikeBodyBytes = 4 << 10

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likes *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likes *services.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes", h.LikePost)
	g.DELETE("/likes", h.UnlikePost)
}

// LikePost handles POST /likes {post_id}
func (h *LikeHandler) LikePost(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	req, err := bindLikeRequest(c)
	if err != nil {
		return err
	}

	if err := h.likes.Like(c.Request().Context(), viewer, req.PostID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.MutationResponse{Success: true, Message: "Post liked successfully"})
}

// UnlikePost handles DELETE /likes {post_id}
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	viewer, err := requireViewer(c)
	if err != nil {
		return err
	}

	req, err := bindLikeRequest(c)
	if err != nil {
		return err
	}

	if err := h.likes.Unlike(c.Request().Context(), viewer, req.PostID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.MutationResponse{Success: true, Message: "Post unliked successfully"})
}

// bindLikeRequest distinguishes an empty body, malformed JSON, a missing id and
// a malformed id, each with its own message.
func bindLikeRequest(c echo.Context) (*models.LikeRequest, error) {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxLikeBodyBytes))
	if err != nil {
		return nil, apperr.Validation("Failed to read request body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, apperr.Validation("Request body is required")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, apperr.Validation("Invalid JSON in request body")
	}

	// A non-string or blank post_id counts as missing.
	var req models.LikeRequest
	if rawID, ok := fields["post_id"]; ok {
		if err := json.Unmarshal(rawID, &req.PostID); err != nil || strings.TrimSpace(req.PostID) == "" {
			req.PostID = ""
		}
	}

	if err := c.Validate(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
			return nil, apperr.Validation("post_id is required")
		}
		return nil, apperr.Validation("Invalid post ID format")
	}
	return &req, nil
}
