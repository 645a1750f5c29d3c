// Package buddy contains buddy request use cases.
package buddy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
)

// ListView selects which requests a listing returns.
type ListView string

const (
	// ViewAll returns every request the user sent or received.
	ViewAll ListView = "all"
	// ViewPending returns pending requests received by the user.
	ViewPending ListView = "pending"
	// ViewSent returns pending requests sent by the user.
	ViewSent ListView = "sent"
	// ViewAccepted returns accepted requests on either side.
	ViewAccepted ListView = "accepted"
)

// ListRequestsInput represents the input for listing buddy requests.
type ListRequestsInput struct {
	ActorID uuid.UUID
	UserID  uuid.UUID
	View    ListView
}

// ListRequestsOutput represents the output of listing buddy requests.
type ListRequestsOutput struct {
	Requests []*entity.BuddyRequest
}

// ListRequestsUseCase lists buddy requests involving a user.
type ListRequestsUseCase struct {
	buddyRepo adapter.BuddyRequestRepository
}

// NewListRequestsUseCase creates a new ListRequestsUseCase instance.
func NewListRequestsUseCase(buddyRepo adapter.BuddyRequestRepository) *ListRequestsUseCase {
	return &ListRequestsUseCase{
		buddyRepo: buddyRepo,
	}
}

// Execute performs the listing.
func (uc *ListRequestsUseCase) Execute(ctx context.Context, input ListRequestsInput) (*ListRequestsOutput, error) {
	if input.ActorID != input.UserID {
		return nil, domainerror.NewBuddyError(
			domainerror.ErrCodeUnauthorizedBuddyAccess,
			"not authorized to list these requests",
			domainerror.ErrUnauthorizedBuddyAccess,
		)
	}

	var (
		requests []*entity.BuddyRequest
		err      error
	)
	switch input.View {
	case ViewPending:
		requests, err = uc.buddyRepo.FindByReceiverAndStatus(ctx, input.UserID, entity.BuddyRequestStatusPending)
	case ViewSent:
		requests, err = uc.buddyRepo.FindByRequesterAndStatus(ctx, input.UserID, entity.BuddyRequestStatusPending)
	case ViewAccepted:
		requests, err = uc.acceptedFor(ctx, input.UserID)
	default:
		requests, err = uc.buddyRepo.FindByUserID(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list buddy requests: %w", err)
	}

	return &ListRequestsOutput{Requests: requests}, nil
}

func (uc *ListRequestsUseCase) acceptedFor(ctx context.Context, userID uuid.UUID) ([]*entity.BuddyRequest, error) {
	all, err := uc.buddyRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	accepted := make([]*entity.BuddyRequest, 0, len(all))
	for _, r := range all {
		if r.Status == entity.BuddyRequestStatusAccepted {
			accepted = append(accepted, r)
		}
	}
	return accepted, nil
}
