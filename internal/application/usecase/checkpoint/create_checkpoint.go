package checkpoint

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

// CreateCheckpointInput represents the input for checkpoint creation.
type CreateCheckpointInput struct {
	UserID      uuid.UUID
	GoalID      uuid.UUID
	Title       string
	Description string
	DueDate     valueobject.Date
	Status      *entity.CheckpointStatus // Optional, defaults to PENDING
}

// CreateCheckpointOutput represents the output of checkpoint creation.
type CreateCheckpointOutput struct {
	Checkpoint *entity.Checkpoint
}

// CreateCheckpointUseCase adds a checkpoint to a goal.
type CreateCheckpointUseCase struct {
	checkpointRepo adapter.CheckpointRepository
	goalRepo       adapter.GoalRepository
}

// NewCreateCheckpointUseCase creates a new CreateCheckpointUseCase instance.
func NewCreateCheckpointUseCase(checkpointRepo adapter.CheckpointRepository, goalRepo adapter.GoalRepository) *CreateCheckpointUseCase {
	return &CreateCheckpointUseCase{
		checkpointRepo: checkpointRepo,
		goalRepo:       goalRepo,
	}
}

// Execute creates the checkpoint and recomputes the goal progress.
func (uc *CreateCheckpointUseCase) Execute(ctx context.Context, input CreateCheckpointInput) (*CreateCheckpointOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.GoalID == uuid.Nil {
		return nil, domainerror.NewCheckpointError(
			domainerror.ErrCodeMissingCheckpointFields,
			"goalId and title are required",
			nil,
		)
	}

	goal, err := findGoalFor(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	cp := entity.NewCheckpoint(goal.ID, title, input.Description, input.DueDate)
	if input.Status != nil {
		if err := validateStatus(*input.Status); err != nil {
			return nil, err
		}
		cp.SetStatus(*input.Status, valueobject.Today())
	}

	if err := uc.checkpointRepo.Create(ctx, cp); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint: %w", err)
	}

	if err := refreshProgress(ctx, uc.checkpointRepo, uc.goalRepo, goal); err != nil {
		return nil, err
	}

	return &CreateCheckpointOutput{Checkpoint: cp}, nil
}
