package checkpoint

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
)

// DeleteCheckpointInput represents the input for checkpoint deletion.
type DeleteCheckpointInput struct {
	CheckpointID uuid.UUID
	UserID       uuid.UUID
}

// DeleteCheckpointUseCase handles checkpoint deletion.
type DeleteCheckpointUseCase struct {
	checkpointRepo adapter.CheckpointRepository
	goalRepo       adapter.GoalRepository
}

// NewDeleteCheckpointUseCase creates a new DeleteCheckpointUseCase instance.
func NewDeleteCheckpointUseCase(checkpointRepo adapter.CheckpointRepository, goalRepo adapter.GoalRepository) *DeleteCheckpointUseCase {
	return &DeleteCheckpointUseCase{
		checkpointRepo: checkpointRepo,
		goalRepo:       goalRepo,
	}
}

// Execute deletes the checkpoint and recomputes the goal progress.
func (uc *DeleteCheckpointUseCase) Execute(ctx context.Context, input DeleteCheckpointInput) error {
	_, goal, err := findOwnedCheckpoint(ctx, uc.checkpointRepo, uc.goalRepo, input.CheckpointID, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.checkpointRepo.Delete(ctx, input.CheckpointID); err != nil {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}

	return refreshProgress(ctx, uc.checkpointRepo, uc.goalRepo, goal)
}
