package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/domain/entity"
)

// BuddyRequestRepository defines the interface for buddy request persistence operations.
type BuddyRequestRepository interface {
	// Create creates a new buddy request.
	Create(ctx context.Context, request *entity.BuddyRequest) error

	// FindByID retrieves a buddy request by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BuddyRequest, error)

	// FindByUserID retrieves requests where the user is requester or receiver, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.BuddyRequest, error)

	// FindByReceiverAndStatus retrieves requests received by a user with the given status.
	FindByReceiverAndStatus(ctx context.Context, receiverID uuid.UUID, status entity.BuddyRequestStatus) ([]*entity.BuddyRequest, error)

	// FindByRequesterAndStatus retrieves requests sent by a user with the given status.
	FindByRequesterAndStatus(ctx context.Context, requesterID uuid.UUID, status entity.BuddyRequestStatus) ([]*entity.BuddyRequest, error)

	// ExistsBetween checks if a request from requester to receiver exists.
	ExistsBetween(ctx context.Context, requesterID, receiverID uuid.UUID) (bool, error)

	// UpdateStatusIfPending stores the request's status if the stored request
	// is still PENDING, and returns ErrRequestNotPending otherwise.
	UpdateStatusIfPending(ctx context.Context, request *entity.BuddyRequest) error
}
