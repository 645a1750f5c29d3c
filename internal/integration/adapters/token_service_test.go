package adapters

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainerror "github.com/productivity-app/backend/internal/domain/error"
)

type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (d *memoryDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.revoked == nil {
		d.revoked = map[string]time.Duration{}
	}
	d.revoked[tokenID] = ttl
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[tokenID]
	return ok, nil
}

func TestTokenService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	denylist := &memoryDenylist{}
	svc := NewTokenService("secret", "goal-buddy", time.Hour, denylist)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(ctx, userID, "ana@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(token.ExpiresAt) <= 59*time.Minute {
		t.Errorf("unexpected expiry %s", token.ExpiresAt)
	}

	claims, err := svc.ValidateAccessToken(ctx, token.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID || claims.Email != "ana@example.com" || claims.TokenID == "" {
		t.Errorf("unexpected claims %+v", claims)
	}

	if err := svc.RevokeAccessToken(ctx, claims); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ttl := denylist.revoked[claims.TokenID]
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("expected ttl bounded by token lifetime, got %s", ttl)
	}

	if _, err := svc.ValidateAccessToken(ctx, token.Token); !errors.Is(err, domainerror.ErrRevokedToken) {
		t.Errorf("expected ErrRevokedToken, got %v", err)
	}
}

func TestTokenService_RejectsInvalidTokens(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService("secret", "goal-buddy", time.Hour, nil)
	userID := uuid.New()

	sign := func(secret string, claims CustomClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	valid := func() CustomClaims {
		now := time.Now()
		return CustomClaims{
			UserID:    userID.String(),
			TokenType: tokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "jti",
				Issuer:    "goal-buddy",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	wrongType := valid()
	wrongType.TokenType = "refresh"
	wrongIssuer := valid()
	wrongIssuer.Issuer = "someone-else"
	badUser := valid()
	badUser.UserID = "not-a-uuid"

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.jwt"},
		{name: "wrong secret", token: sign("other", valid())},
		{name: "expired", token: sign("secret", expired)},
		{name: "wrong type", token: sign("secret", wrongType)},
		{name: "wrong issuer", token: sign("secret", wrongIssuer)},
		{name: "bad user id", token: sign("secret", badUser)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(ctx, tt.token)
			if !errors.Is(err, domainerror.ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestTokenService_RevokeWithoutDenylist(t *testing.T) {
	svc := NewTokenService("secret", "goal-buddy", 0, nil)
	token, err := svc.GenerateAccessToken(context.Background(), uuid.New(), "ana@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(token.ExpiresAt) < 23*time.Hour {
		t.Errorf("expected default 24h lifetime, got %s", token.ExpiresAt)
	}

	claims, err := svc.ValidateAccessToken(context.Background(), token.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := svc.RevokeAccessToken(context.Background(), claims); err != nil {
		t.Errorf("expected revoke to be a no-op, got %v", err)
	}
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordServiceWithCost(4)

	hash, err := svc.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("password was not hashed")
	}

	if err := svc.VerifyPassword(hash, "correct horse"); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if err := svc.VerifyPassword(hash, "wrong"); !errors.Is(err, domainerror.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	tests := []struct {
		password string
		wantErr  bool
	}{
		{password: "short", wantErr: true},
		{password: "12345678", wantErr: false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := svc.ValidatePasswordStrength(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePasswordStrength(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domainerror.ErrWeakPassword) {
				t.Errorf("expected ErrWeakPassword, got %v", err)
			}
		})
	}
}
