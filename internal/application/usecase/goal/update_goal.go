package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// UpdateGoalInput represents the input for goal update.
// Nil fields are left unchanged.
type UpdateGoalInput struct {
	GoalID      uuid.UUID
	UserID      uuid.UUID
	Title       *string
	Description *string
	StartDate   *valueobject.Date
	EndDate     *valueobject.Date
	Status      *entity.GoalStatus
	Progress    *int
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := FindOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeMissingGoalFields,
				"title cannot be empty",
				nil,
			)
		}
		goal.Title = title
	}

	if input.Description != nil {
		goal.Description = *input.Description
	}

	if input.StartDate != nil {
		goal.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		goal.EndDate = *input.EndDate
	}
	if err := validatePeriod(goal.StartDate, goal.EndDate); err != nil {
		return nil, err
	}

	if input.Status != nil {
		if err := validateStatus(*input.Status); err != nil {
			return nil, err
		}
		goal.Status = *input.Status
	}

	if input.Progress != nil {
		if err := validateProgress(*input.Progress); err != nil {
			return nil, err
		}
		goal.Progress = *input.Progress
	}

	goal.UpdatedAt = time.Now().UTC()

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &UpdateGoalOutput{Goal: goal}, nil
}
