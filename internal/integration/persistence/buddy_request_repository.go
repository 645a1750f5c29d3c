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

// buddyRequestRepository implements the adapter.BuddyRequestRepository interface.
type buddyRequestRepository struct {
	db *gorm.DB
}

// NewBuddyRequestRepository creates a new buddy request repository instance.
func NewBuddyRequestRepository(db *gorm.DB) adapter.BuddyRequestRepository {
	return &buddyRequestRepository{
		db: db,
	}
}

// Create creates a new buddy request.
func (r *buddyRequestRepository) Create(ctx context.Context, request *entity.BuddyRequest) error {
	result := r.db.WithContext(ctx).Create(model.BuddyRequestFromEntity(request))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a buddy request by its ID.
func (r *buddyRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BuddyRequest, error) {
	var reqModel model.BuddyRequestModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&reqModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBuddyRequestNotFound
		}
		return nil, result.Error
	}
	return reqModel.ToEntity(), nil
}

// FindByUserID retrieves requests where the user is requester or receiver, newest first.
func (r *buddyRequestRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.BuddyRequest, error) {
	return r.find(ctx, r.db.Where("requester_id = ? OR receiver_id = ?", userID, userID))
}

// FindByReceiverAndStatus retrieves requests received by a user with the given status.
func (r *buddyRequestRepository) FindByReceiverAndStatus(ctx context.Context, receiverID uuid.UUID, status entity.BuddyRequestStatus) ([]*entity.BuddyRequest, error) {
	return r.find(ctx, r.db.Where("receiver_id = ? AND status = ?", receiverID, status))
}

// FindByRequesterAndStatus retrieves requests sent by a user with the given status.
func (r *buddyRequestRepository) FindByRequesterAndStatus(ctx context.Context, requesterID uuid.UUID, status entity.BuddyRequestStatus) ([]*entity.BuddyRequest, error) {
	return r.find(ctx, r.db.Where("requester_id = ? AND status = ?", requesterID, status))
}

// ExistsBetween checks if a request exists between the two users in either direction.
func (r *buddyRequestRepository) ExistsBetween(ctx context.Context, requesterID, receiverID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.BuddyRequestModel{}).
		Where("(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)",
			requesterID, receiverID, receiverID, requesterID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// UpdateStatusIfPending writes the request's status only while the stored row
// is still PENDING. It returns domainerror.ErrRequestNotPending otherwise.
func (r *buddyRequestRepository) UpdateStatusIfPending(ctx context.Context, request *entity.BuddyRequest) error {
	result := r.db.WithContext(ctx).
		Model(&model.BuddyRequestModel{}).
		Where("id = ? AND status = ?", request.ID, string(entity.BuddyRequestStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(request.Status),
			"updated_at": request.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRequestNotPending
	}
	return nil
}

func (r *buddyRequestRepository) find(ctx context.Context, scope *gorm.DB) ([]*entity.BuddyRequest, error) {
	var models []model.BuddyRequestModel
	result := r.db.WithContext(ctx).
		Where(scope).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	requests := make([]*entity.BuddyRequest, len(models))
	for i := range models {
		requests[i] = models[i].ToEntity()
	}
	return requests, nil
}
