package goal

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	ActorID     uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	StartDate   valueobject.Date
	EndDate     valueobject.Date
	Status      *entity.GoalStatus // Optional, defaults to ACTIVE
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	userRepo adapter.UserRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, userRepo adapter.UserRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		userRepo: userRepo,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	if input.ActorID != input.UserID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"not authorized to create goals for another user",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"title is required",
			nil,
		)
	}

	if err := validatePeriod(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.FindByID(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("failed to find goal owner: %w", err)
	}

	goal := entity.NewGoal(input.UserID, title, input.Description, input.StartDate, input.EndDate)
	if input.Status != nil {
		if err := validateStatus(*input.Status); err != nil {
			return nil, err
		}
		goal.Status = *input.Status
		if goal.Status == entity.GoalStatusCompleted {
			goal.Progress = entity.MaxProgress
		}
	}

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{Goal: goal}, nil
}
