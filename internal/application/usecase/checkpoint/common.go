// Package checkpoint contains checkpoint use cases.
package checkpoint

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
)

// findGoalFor loads the parent goal and checks that userID owns it.
func findGoalFor(ctx context.Context, goalRepo adapter.GoalRepository, goalID, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := goalRepo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewCheckpointError(
				domainerror.ErrCodeCheckpointGoalNotFound,
				"Goal not found",
				domainerror.ErrCheckpointGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	if goal.UserID != userID {
		return nil, domainerror.NewCheckpointError(
			domainerror.ErrCodeUnauthorizedCheckpointAccess,
			"not authorized to access this checkpoint",
			domainerror.ErrUnauthorizedCheckpointAccess,
		)
	}
	return goal, nil
}

// findOwnedCheckpoint loads a checkpoint together with its goal.
func findOwnedCheckpoint(
	ctx context.Context,
	checkpointRepo adapter.CheckpointRepository,
	goalRepo adapter.GoalRepository,
	checkpointID, userID uuid.UUID,
) (*entity.Checkpoint, *entity.Goal, error) {
	cp, err := checkpointRepo.FindByID(ctx, checkpointID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCheckpointNotFound) {
			return nil, nil, domainerror.NewCheckpointError(
				domainerror.ErrCodeCheckpointNotFound,
				"Checkpoint not found",
				domainerror.ErrCheckpointNotFound,
			)
		}
		return nil, nil, fmt.Errorf("failed to find checkpoint: %w", err)
	}

	goal, err := findGoalFor(ctx, goalRepo, cp.GoalID, userID)
	if err != nil {
		return nil, nil, err
	}
	return cp, goal, nil
}

// refreshProgress recomputes the goal progress from its checkpoints. Only the
// progress column is written, so concurrent goal edits are kept.
func refreshProgress(
	ctx context.Context,
	checkpointRepo adapter.CheckpointRepository,
	goalRepo adapter.GoalRepository,
	goal *entity.Goal,
) error {
	total, completed, err := checkpointRepo.CountByGoalID(ctx, goal.ID)
	if err != nil {
		return fmt.Errorf("failed to count checkpoints: %w", err)
	}

	goal.ApplyCheckpointProgress(completed, total)
	if err := goalRepo.UpdateProgress(ctx, goal.ID, goal.Progress); err != nil {
		return fmt.Errorf("failed to update goal progress: %w", err)
	}
	return nil
}

func validateStatus(status entity.CheckpointStatus) error {
	if !status.Valid() {
		return domainerror.NewCheckpointError(
			domainerror.ErrCodeInvalidCheckpointStatus,
			"status must be PENDING, IN_PROGRESS, COMPLETED or OVERDUE",
			domainerror.ErrInvalidCheckpointStatus,
		)
	}
	return nil
}
