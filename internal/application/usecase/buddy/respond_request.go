package buddy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
)

// RespondRequestInput represents the input for answering a buddy request.
type RespondRequestInput struct {
	RequestID uuid.UUID
	UserID    uuid.UUID
	Status    entity.BuddyRequestStatus
}

// RespondRequestOutput represents the output of answering a buddy request.
type RespondRequestOutput struct {
	Request *entity.BuddyRequest
}

// RespondRequestUseCase accepts or rejects a pending request.
type RespondRequestUseCase struct {
	buddyRepo adapter.BuddyRequestRepository
	userRepo  adapter.UserRepository
	notifier  adapter.BuddyNotifier
}

// NewRespondRequestUseCase creates a new RespondRequestUseCase instance.
// notifier may be nil.
func NewRespondRequestUseCase(
	buddyRepo adapter.BuddyRequestRepository,
	userRepo adapter.UserRepository,
	notifier adapter.BuddyNotifier,
) *RespondRequestUseCase {
	return &RespondRequestUseCase{
		buddyRepo: buddyRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// Execute moves the request to ACCEPTED or REJECTED. Only the receiver may
// answer, and only once.
func (uc *RespondRequestUseCase) Execute(ctx context.Context, input RespondRequestInput) (*RespondRequestOutput, error) {
	if !input.Status.IsTerminal() {
		return nil, domainerror.NewBuddyError(
			domainerror.ErrCodeInvalidBuddyStatus,
			"status must be ACCEPTED or REJECTED",
			domainerror.ErrInvalidBuddyStatus,
		)
	}

	request, err := uc.buddyRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBuddyRequestNotFound) {
			return nil, domainerror.NewBuddyError(
				domainerror.ErrCodeBuddyRequestNotFound,
				"Buddy request not found",
				domainerror.ErrBuddyRequestNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find buddy request: %w", err)
	}

	if request.ReceiverID != input.UserID {
		return nil, domainerror.NewBuddyError(
			domainerror.ErrCodeNotRequestReceiver,
			"You can only accept requests sent to you",
			domainerror.ErrNotRequestReceiver,
		)
	}

	if !request.IsPending() {
		return nil, notPendingError()
	}

	// The write only lands if no other response got there first.
	request.Resolve(input.Status)
	if err := uc.buddyRepo.UpdateStatusIfPending(ctx, request); err != nil {
		if errors.Is(err, domainerror.ErrRequestNotPending) {
			return nil, notPendingError()
		}
		return nil, fmt.Errorf("failed to update buddy request: %w", err)
	}

	if request.Status == entity.BuddyRequestStatusAccepted {
		uc.notifyAccepted(ctx, request)
	}

	return &RespondRequestOutput{Request: request}, nil
}

func notPendingError() error {
	return domainerror.NewBuddyError(
		domainerror.ErrCodeRequestNotPending,
		"Request is not pending",
		domainerror.ErrRequestNotPending,
	)
}

func (uc *RespondRequestUseCase) notifyAccepted(ctx context.Context, request *entity.BuddyRequest) {
	if uc.notifier == nil {
		return
	}

	requester, err := uc.userRepo.FindByID(ctx, request.RequesterID)
	if err != nil {
		slog.Error("Failed to load requester for notification", "error", err, "requestID", request.ID)
		return
	}
	receiver, err := uc.userRepo.FindByID(ctx, request.ReceiverID)
	if err != nil {
		slog.Error("Failed to load receiver for notification", "error", err, "requestID", request.ID)
		return
	}

	err = uc.notifier.NotifyBuddyAccepted(ctx, adapter.BuddyAcceptedNotification{
		RequesterName:  requester.Username,
		RequesterEmail: requester.Email,
		ReceiverName:   receiver.Username,
	})
	if err != nil {
		slog.Error("Failed to queue buddy accepted email", "error", err, "requestID", request.ID)
	}
}
