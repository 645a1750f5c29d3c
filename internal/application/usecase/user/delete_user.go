package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
)

// DeleteUserInput represents the input for account deletion.
type DeleteUserInput struct {
	ActorID uuid.UUID
	UserID  uuid.UUID
	Claims  *adapter.TokenClaims
}

// DeleteUserUseCase handles account deletion.
type DeleteUserUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewDeleteUserUseCase creates a new DeleteUserUseCase instance.
func NewDeleteUserUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute deletes the account with its goals, checkpoints and buddy requests,
// then revokes the token used for the call.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, input DeleteUserInput) error {
	if err := requireSelf(input.ActorID, input.UserID); err != nil {
		return err
	}

	if _, err := findUser(ctx, uc.userRepo, input.UserID); err != nil {
		return err
	}

	if err := uc.userRepo.Delete(ctx, input.UserID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if input.Claims != nil {
		if err := uc.tokenService.RevokeAccessToken(ctx, input.Claims); err != nil {
			return fmt.Errorf("failed to revoke token: %w", err)
		}
	}
	return nil
}
