// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccessToken is a signed bearer token and its expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenClaims represents the claims contained in a JWT token.
type TokenClaims struct {
	TokenID   string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	// GenerateAccessToken signs a new access token for the user.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID, email string) (*AccessToken, error)

	// ValidateAccessToken validates an access token and returns its claims.
	// Revoked tokens are rejected.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// RevokeAccessToken denies the token until it expires.
	RevokeAccessToken(ctx context.Context, claims *TokenClaims) error
}

// TokenDenylist records revoked token ids.
type TokenDenylist interface {
	// Revoke stores the token id for ttl.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether the token id was revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
