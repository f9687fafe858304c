// Package identity verifies bearer tokens issued by the external identity provider
// and turns them into a request-scoped Identity.
package identity

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidToken is returned by a Verifier for any token it does not accept.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the authenticated caller as reported by the identity provider.
type Identity struct {
	// ProviderID is the provider's user id (the users.clerk_id column).
	ProviderID string
	Name       string
	Email      string
}

// DisplayName picks the name to store for a newly synced user.
func (i Identity) DisplayName() string {
	if name := strings.TrimSpace(i.Name); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(i.Email, "@"); ok && local != "" {
		return local
	}
	return "user"
}

// Verifier validates a raw bearer token.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(ctx context.Context, token string) (Identity, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Identity, error) {
	return f(ctx, token)
}
