package firebase

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/snapfeed/backend/pkg/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	token *auth.Token
	err   error
}

func (s stubClient) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return s.token, s.err
}

func TestTokenVerifier_MapsClaims(t *testing.T) {
	v := NewTokenVerifier(stubClient{token: &auth.Token{
		UID:    "fb-uid-1",
		Claims: map[string]interface{}{"name": "Mina", "email": "mina@example.com"},
	}})

	id, err := v.Verify(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, identity.Identity{ProviderID: "fb-uid-1", Name: "Mina", Email: "mina@example.com"}, id)
}

func TestTokenVerifier_Rejects(t *testing.T) {
	v := NewTokenVerifier(stubClient{err: errors.New("token expired")})

	_, err := v.Verify(context.Background(), "token")
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestInitFirebase_MissingCredentials(t *testing.T) {
	_, err := InitFirebase(context.Background(), "")
	assert.Error(t, err)

	_, err = InitFirebase(context.Background(), "/nonexistent/credentials.json")
	assert.Error(t, err)
}
