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
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// SendRequestInput represents the input for sending a buddy request.
type SendRequestInput struct {
	ActorID     uuid.UUID
	RequesterID uuid.UUID // Defaults to ActorID when zero
	ReceiverID  uuid.UUID
}

// SendRequestOutput represents the output of sending a buddy request.
type SendRequestOutput struct {
	Request *entity.BuddyRequest
}

// SendRequestUseCase creates a pending buddy request.
type SendRequestUseCase struct {
	buddyRepo adapter.BuddyRequestRepository
	userRepo  adapter.UserRepository
	notifier  adapter.BuddyNotifier
}

// NewSendRequestUseCase creates a new SendRequestUseCase instance.
// notifier may be nil.
func NewSendRequestUseCase(
	buddyRepo adapter.BuddyRequestRepository,
	userRepo adapter.UserRepository,
	notifier adapter.BuddyNotifier,
) *SendRequestUseCase {
	return &SendRequestUseCase{
		buddyRepo: buddyRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// Execute validates the pair, stores the request and queues a notification
// for the receiver.
func (uc *SendRequestUseCase) Execute(ctx context.Context, input SendRequestInput) (*SendRequestOutput, error) {
	requesterID := input.RequesterID
	if requesterID == uuid.Nil {
		requesterID = input.ActorID
	}
	if requesterID != input.ActorID {
		return nil, domainerror.NewBuddyError(
			domainerror.ErrCodeUnauthorizedBuddyAccess,
			"you can only send requests as yourself",
			domainerror.ErrUnauthorizedBuddyAccess,
		)
	}

	if input.ReceiverID == uuid.Nil {
		return nil, domainerror.NewBuddyError(
			domainerror.ErrCodeMissingBuddyFields,
			"receiverId is required",
			nil,
		)
	}

	if requesterID == input.ReceiverID {
		return nil, domainerror.NewBuddyError(
			domainerror.ErrCodeSelfBuddyRequest,
			"Cannot send request to yourself",
			domainerror.ErrSelfBuddyRequest,
		)
	}

	requester, err := uc.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewBuddyError(
				domainerror.ErrCodeRequesterNotFound,
				"Requester not found",
				domainerror.ErrRequesterNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find requester: %w", err)
	}

	receiver, err := uc.userRepo.FindByID(ctx, input.ReceiverID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewBuddyError(
				domainerror.ErrCodeReceiverNotFound,
				"Receiver not found",
				domainerror.ErrReceiverNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find receiver: %w", err)
	}

	exists, err := uc.buddyRepo.ExistsBetween(ctx, requester.ID, receiver.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing requests: %w", err)
	}
	if exists {
		return nil, domainerror.NewBuddyError(
			domainerror.ErrCodeBuddyRequestExists,
			"Buddy request already exists",
			domainerror.ErrBuddyRequestExists,
		)
	}

	request := entity.NewBuddyRequest(requester.ID, receiver.ID, valueobject.Today())
	if err := uc.buddyRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create buddy request: %w", err)
	}

	if uc.notifier != nil {
		err := uc.notifier.NotifyBuddyRequest(ctx, adapter.BuddyRequestNotification{
			RequesterName:  requester.Username,
			RequesterEmail: requester.Email,
			ReceiverName:   receiver.Username,
			ReceiverEmail:  receiver.Email,
		})
		if err != nil {
			// The request stands even when mail cannot be queued
			slog.Error("Failed to queue buddy request email", "error", err, "requestID", request.ID)
		}
	}

	return &SendRequestOutput{Request: request}, nil
}
