package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

// SessionClaims are the claims read from a provider session token.
// The subject is the provider user id.
type SessionClaims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier validates session JWTs either against a shared HMAC secret or
// against the provider's JWKS endpoint.
type JWTVerifier struct {
	keyFunc jwt.Keyfunc
	issuer  string
	jwks    *keyfunc.JWKS
	methods []string
}

// NewHMACVerifier accepts HS256 tokens signed with secret.
func NewHMACVerifier(secret, issuer string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &JWTVerifier{
		keyFunc: func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		},
		issuer:  issuer,
		methods: []string{jwt.SigningMethodHS256.Alg()},
	}, nil
}

// NewJWKSVerifier accepts RS256 tokens signed by a key published at jwksURL.
// The key set is refreshed in the background until Close is called.
func NewJWKSVerifier(jwksURL, issuer string, onRefreshError func(error)) (*JWTVerifier, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:     time.Hour,
		RefreshRateLimit:    5 * time.Minute,
		RefreshTimeout:      10 * time.Second,
		RefreshUnknownKID:   true,
		RefreshErrorHandler: onRefreshError,
	})
	if err != nil {
		return nil, fmt.Errorf("load jwks from %s: %w", jwksURL, err)
	}
	return &JWTVerifier{
		keyFunc: jwks.Keyfunc,
		issuer:  issuer,
		jwks:    jwks,
		methods: []string{jwt.SigningMethodRS256.Alg()},
	}, nil
}

// Verify parses and validates token, returning the caller's identity.
func (v *JWTVerifier) Verify(_ context.Context, token string) (Identity, error) {
	claims := &SessionClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods(v.methods))
	parsed, err := parser.ParseWithClaims(token, claims, v.keyFunc)
	if err != nil || !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if v.issuer != "" && !claims.VerifyIssuer(v.issuer, true) {
		return Identity{}, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return Identity{
		ProviderID: claims.Subject,
		Name:       claims.Name,
		Email:      claims.Email,
	}, nil
}

// Close stops the JWKS background refresh, if any.
func (v *JWTVerifier) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}
