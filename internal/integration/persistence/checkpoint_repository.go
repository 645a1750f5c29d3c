// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
	"github.com/productivity-app/backend/internal/integration/persistence/model"
)

// checkpointRepository implements the adapter.CheckpointRepository interface.
type checkpointRepository struct {
	db *gorm.DB
}

// NewCheckpointRepository creates a new checkpoint repository instance.
func NewCheckpointRepository(db *gorm.DB) adapter.CheckpointRepository {
	return &checkpointRepository{
		db: db,
	}
}

// Create creates a new checkpoint.
func (r *checkpointRepository) Create(ctx context.Context, checkpoint *entity.Checkpoint) error {
	result := r.db.WithContext(ctx).Create(model.CheckpointFromEntity(checkpoint))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a checkpoint by its ID.
func (r *checkpointRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Checkpoint, error) {
	var cpModel model.CheckpointModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&cpModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCheckpointNotFound
		}
		return nil, result.Error
	}
	return cpModel.ToEntity(), nil
}

// FindByGoalID retrieves the checkpoints of one goal ordered by due date.
func (r *checkpointRepository) FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*entity.Checkpoint, error) {
	var models []model.CheckpointModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("due_date ASC").
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toCheckpoints(models), nil
}

// FindByUserID retrieves the checkpoints of every goal owned by a user.
func (r *checkpointRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Checkpoint, error) {
	var models []model.CheckpointModel
	result := r.db.WithContext(ctx).
		Where("goal_id IN (?)", r.db.Model(&model.GoalModel{}).Select("id").Where("user_id = ?", userID)).
		Order("due_date ASC").
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toCheckpoints(models), nil
}

// Update updates an existing checkpoint.
func (r *checkpointRepository) Update(ctx context.Context, checkpoint *entity.Checkpoint) error {
	result := r.db.WithContext(ctx).Save(model.CheckpointFromEntity(checkpoint))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a checkpoint.
func (r *checkpointRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.CheckpointModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCheckpointNotFound
	}
	return nil
}

// CountByGoalID returns the total and completed checkpoint counts of a goal.
func (r *checkpointRepository) CountByGoalID(ctx context.Context, goalID uuid.UUID) (int, int, error) {
	var total, completed int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.CheckpointModel{}).Where("goal_id = ?", goalID).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := db.Model(&model.CheckpointModel{}).
		Where("goal_id = ? AND status = ?", goalID, entity.CheckpointStatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return int(total), int(completed), nil
}

func toCheckpoints(models []model.CheckpointModel) []*entity.Checkpoint {
	checkpoints := make([]*entity.Checkpoint, len(models))
	for i := range models {
		checkpoints[i] = models[i].ToEntity()
	}
	return checkpoints
}
