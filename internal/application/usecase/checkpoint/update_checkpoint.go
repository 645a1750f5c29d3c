package checkpoint

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

// UpdateCheckpointInput represents the input for checkpoint update.
// Nil fields are left unchanged.
type UpdateCheckpointInput struct {
	CheckpointID uuid.UUID
	UserID       uuid.UUID
	Title        *string
	Description  *string
	DueDate      *valueobject.Date
	Status       *entity.CheckpointStatus
}

// UpdateCheckpointOutput represents the output of checkpoint update.
type UpdateCheckpointOutput struct {
	Checkpoint *entity.Checkpoint
}

// UpdateCheckpointUseCase handles checkpoint updates.
type UpdateCheckpointUseCase struct {
	checkpointRepo adapter.CheckpointRepository
	goalRepo       adapter.GoalRepository
}

// NewUpdateCheckpointUseCase creates a new UpdateCheckpointUseCase instance.
func NewUpdateCheckpointUseCase(checkpointRepo adapter.CheckpointRepository, goalRepo adapter.GoalRepository) *UpdateCheckpointUseCase {
	return &UpdateCheckpointUseCase{
		checkpointRepo: checkpointRepo,
		goalRepo:       goalRepo,
	}
}

// Execute performs the update. A status change recomputes the goal progress.
func (uc *UpdateCheckpointUseCase) Execute(ctx context.Context, input UpdateCheckpointInput) (*UpdateCheckpointOutput, error) {
	cp, goal, err := findOwnedCheckpoint(ctx, uc.checkpointRepo, uc.goalRepo, input.CheckpointID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domainerror.NewCheckpointError(
				domainerror.ErrCodeMissingCheckpointFields,
				"title cannot be empty",
				nil,
			)
		}
		cp.Title = title
	}
	if input.Description != nil {
		cp.Description = *input.Description
	}
	if input.DueDate != nil {
		cp.DueDate = *input.DueDate
	}

	statusChanged := false
	if input.Status != nil {
		if err := validateStatus(*input.Status); err != nil {
			return nil, err
		}
		statusChanged = *input.Status != cp.Status
		cp.SetStatus(*input.Status, valueobject.Today())
	}

	cp.UpdatedAt = time.Now().UTC()
	if err := uc.checkpointRepo.Update(ctx, cp); err != nil {
		return nil, fmt.Errorf("failed to update checkpoint: %w", err)
	}

	if statusChanged {
		if err := refreshProgress(ctx, uc.checkpointRepo, uc.goalRepo, goal); err != nil {
			return nil, err
		}
	}

	return &UpdateCheckpointOutput{Checkpoint: cp}, nil
}
