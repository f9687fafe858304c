package middleware

import (
	"strings"

	"github.com/anonto42/snapfeed/backend/internal/apperr"
	"github.com/anonto42/snapfeed/backend/pkg/identity"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const identityKey = "identity"

// Authenticate verifies the bearer token on every request and stores the
// resulting identity in the echo context. It runs before any body parsing.
func Authenticate(verifier identity.Verifier, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperr.Unauthenticated("Authorization header is missing")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
				return apperr.Unauthenticated("Authorization header must be in Bearer format")
			}

			id, err := verifier.Verify(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				logger.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
				return apperr.Unauthenticated("Unauthorized")
			}

			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(c echo.Context) (identity.Identity, bool) {
	id, ok := c.Get(identityKey).(identity.Identity)
	return id, ok
}
