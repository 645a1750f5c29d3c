package checkpoint

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/entity"
)

// ListCheckpointsInput represents the input for listing checkpoints.
type ListCheckpointsInput struct {
	UserID uuid.UUID
	GoalID *uuid.UUID // Optional, restricts the list to one goal
}

// ListCheckpointsOutput represents the output of listing checkpoints.
type ListCheckpointsOutput struct {
	Checkpoints []*entity.Checkpoint
}

// ListCheckpointsUseCase lists the checkpoints visible to a user.
type ListCheckpointsUseCase struct {
	checkpointRepo adapter.CheckpointRepository
	goalRepo       adapter.GoalRepository
}

// NewListCheckpointsUseCase creates a new ListCheckpointsUseCase instance.
func NewListCheckpointsUseCase(checkpointRepo adapter.CheckpointRepository, goalRepo adapter.GoalRepository) *ListCheckpointsUseCase {
	return &ListCheckpointsUseCase{
		checkpointRepo: checkpointRepo,
		goalRepo:       goalRepo,
	}
}

// Execute performs the checkpoint listing.
func (uc *ListCheckpointsUseCase) Execute(ctx context.Context, input ListCheckpointsInput) (*ListCheckpointsOutput, error) {
	if input.GoalID != nil {
		if _, err := findGoalFor(ctx, uc.goalRepo, *input.GoalID, input.UserID); err != nil {
			return nil, err
		}
		checkpoints, err := uc.checkpointRepo.FindByGoalID(ctx, *input.GoalID)
		if err != nil {
			return nil, fmt.Errorf("failed to list checkpoints: %w", err)
		}
		return &ListCheckpointsOutput{Checkpoints: checkpoints}, nil
	}

	checkpoints, err := uc.checkpointRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	return &ListCheckpointsOutput{Checkpoints: checkpoints}, nil
}
