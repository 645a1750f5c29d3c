// Package user contains profile use cases.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
)

// GetUserInput represents the input for reading a profile.
type GetUserInput struct {
	UserID uuid.UUID
}

// GetUserOutput represents the output of reading a profile.
type GetUserOutput struct {
	User *entity.User
}

// GetUserUseCase reads a user profile.
type GetUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetUserUseCase creates a new GetUserUseCase instance.
func NewGetUserUseCase(userRepo adapter.UserRepository) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
	}
}

// Execute returns the profile.
func (uc *GetUserUseCase) Execute(ctx context.Context, input GetUserInput) (*GetUserOutput, error) {
	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetUserOutput{User: user}, nil
}

func findUser(ctx context.Context, repo adapter.UserRepository, id uuid.UUID) (*entity.User, error) {
	user, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeProfileNotFound,
				"User not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func requireSelf(actorID, userID uuid.UUID) error {
	if actorID != userID {
		return domainerror.NewUserError(
			domainerror.ErrCodeForbiddenProfileAccess,
			"you can only manage your own profile",
			domainerror.ErrForbiddenUserAccess,
		)
	}
	return nil
}
