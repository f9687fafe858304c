package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/snapfeed/backend/internal/apperr"
	"github.com/anonto42/snapfeed/backend/pkg/identity"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func stubVerifier(valid string) identity.Verifier {
	return identity.VerifierFunc(func(_ context.Context, token string) (identity.Identity, error) {
		if token != valid {
			return identity.Identity{}, identity.ErrInvalidToken
		}
		return identity.Identity{ProviderID: "user_123", Name: "Ada"}, nil
	})
}

func runAuth(t *testing.T, header string) (echo.Context, error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	h := Authenticate(stubVerifier("good-token"), zap.NewNop())(func(c echo.Context) error {
		called = true
		return nil
	})
	return c, h(c), called
}

func TestAuthenticate_ValidToken(t *testing.T) {
	c, err, called := runAuth(t, "Bearer good-token")
	require.NoError(t, err)
	assert.True(t, called)

	id, ok := IdentityFrom(c)
	require.True(t, ok)
	assert.Equal(t, "user_123", id.ProviderID)
}

func TestAuthenticate_Rejections(t *testing.T) {
	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic good-token",
		"empty token":    "Bearer ",
		"invalid token":  "Bearer bad-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err, called := runAuth(t, header)
			assert.False(t, called)
			assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
		})
	}
}

func TestIdentityFrom_Missing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := IdentityFrom(c)
	assert.False(t, ok)
}
