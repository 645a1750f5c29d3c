package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/domain/entity"
)

// CheckpointRepository defines the interface for checkpoint persistence operations.
type CheckpointRepository interface {
	// Create creates a new checkpoint.
	Create(ctx context.Context, checkpoint *entity.Checkpoint) error

	// FindByID retrieves a checkpoint by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Checkpoint, error)

	// FindByGoalID retrieves the checkpoints of one goal ordered by due date.
	FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*entity.Checkpoint, error)

	// FindByUserID retrieves the checkpoints of every goal owned by a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Checkpoint, error)

	// Update updates an existing checkpoint.
	Update(ctx context.Context, checkpoint *entity.Checkpoint) error

	// Delete removes a checkpoint.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByGoalID returns the total and completed checkpoint counts of a goal.
	CountByGoalID(ctx context.Context, goalID uuid.UUID) (total int, completed int, err error)
}
