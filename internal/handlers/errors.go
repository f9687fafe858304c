package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anonto42/snapfeed/backend/internal/apperr"
	"github.com/anonto42/snapfeed/backend/internal/middleware"
	"github.com/anonto42/snapfeed/backend/pkg/identity"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler renders apperr and echo errors as {"error": message}. Upstream
// failures are logged with their cause and never leak it to the client.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error"

		var appErr *apperr.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			kind := apperr.KindOf(err)
			status = kind.Status()
			message = appErr.Message
			if kind == apperr.KindUpstream {
				logger.Error(appErr.Message,
					zap.String("method", c.Request().Method),
					zap.String("path", c.Path()),
					zap.Error(appErr.Err))
			}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		default:
			logger.Error("unhandled error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, ErrorResponse{Error: message})
		}
		if err != nil {
			logger.Warn("write error response", zap.Error(err))
		}
	}
}

// requireViewer returns the identity stored by the auth middleware.
func requireViewer(c echo.Context) (identity.Identity, error) {
	viewer, ok := middleware.IdentityFrom(c)
	if !ok {
		return identity.Identity{}, apperr.Unauthenticated("Unauthorized")
	}
	return viewer, nil
}
