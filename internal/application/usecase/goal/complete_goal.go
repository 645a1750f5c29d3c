package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/entity"
)

// CompleteGoalInput represents the input for completing a goal.
type CompleteGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// CompleteGoalOutput represents the output of completing a goal.
type CompleteGoalOutput struct {
	Goal *entity.Goal
}

// CompleteGoalUseCase marks a goal as completed.
type CompleteGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewCompleteGoalUseCase creates a new CompleteGoalUseCase instance.
func NewCompleteGoalUseCase(goalRepo adapter.GoalRepository) *CompleteGoalUseCase {
	return &CompleteGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute sets status COMPLETED and progress 100.
func (uc *CompleteGoalUseCase) Execute(ctx context.Context, input CompleteGoalInput) (*CompleteGoalOutput, error) {
	goal, err := FindOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	goal.Complete()

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to complete goal: %w", err)
	}

	return &CompleteGoalOutput{Goal: goal}, nil
}
