// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"

	"github.com/productivity-app/backend/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	Claims *adapter.TokenClaims
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute revokes the caller's access token until it expires.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) error {
	if input.Claims == nil {
		return nil
	}
	if err := uc.tokenService.RevokeAccessToken(ctx, input.Claims); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
