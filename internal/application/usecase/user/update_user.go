package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/application/usecase/auth"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
)

// UpdateUserInput represents the input for a profile update.
type UpdateUserInput struct {
	ActorID  uuid.UUID
	UserID   uuid.UUID
	Username *string // Optional
	Email    *string // Optional
}

// UpdateUserOutput represents the output of a profile update.
type UpdateUserOutput struct {
	User *entity.User
}

// UpdateUserUseCase handles profile updates.
type UpdateUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateUserUseCase creates a new UpdateUserUseCase instance.
func NewUpdateUserUseCase(userRepo adapter.UserRepository) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo: userRepo,
	}
}

// Execute performs the profile update.
func (uc *UpdateUserUseCase) Execute(ctx context.Context, input UpdateUserInput) (*UpdateUserOutput, error) {
	if err := requireSelf(input.ActorID, input.UserID); err != nil {
		return nil, err
	}

	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username != "" && username != user.Username {
			exists, err := uc.userRepo.ExistsByUsername(ctx, username)
			if err != nil {
				return nil, fmt.Errorf("failed to check username existence: %w", err)
			}
			if exists {
				return nil, domainerror.NewUserError(
					domainerror.ErrCodeProfileUsernameExists,
					"username already exists",
					domainerror.ErrUsernameAlreadyExists,
				)
			}
			user.Username = username
		}
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != "" && email != user.Email {
			if !auth.IsValidEmail(email) {
				return nil, domainerror.NewUserError(
					domainerror.ErrCodeInvalidProfileEmail,
					"invalid email format",
					domainerror.ErrInvalidEmail,
				)
			}
			exists, err := uc.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email existence: %w", err)
			}
			if exists {
				return nil, domainerror.NewUserError(
					domainerror.ErrCodeProfileEmailExists,
					"email already exists",
					domainerror.ErrEmailAlreadyExists,
				)
			}
			user.Email = email
		}
	}

	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &UpdateUserOutput{User: user}, nil
}
