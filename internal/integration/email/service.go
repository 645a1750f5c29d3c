package email

import (
	"context"
	"fmt"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
)

// Service queues buddy notifications for the worker.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// NotifyBuddyRequest queues the "new buddy request" email for the receiver.
func (s *Service) NotifyBuddyRequest(ctx context.Context, input adapter.BuddyRequestNotification) error {
	job := entity.NewEmailJob(
		entity.TemplateBuddyRequest,
		input.ReceiverEmail,
		input.ReceiverName,
		fmt.Sprintf("%s wants to be your goal buddy", input.RequesterName),
		map[string]interface{}{
			"requester_name":  input.RequesterName,
			"requester_email": input.RequesterEmail,
			"receiver_name":   input.ReceiverName,
			"buddies_url":     s.appBaseURL + "/buddies",
		},
	)
	return s.enqueue(ctx, job, "buddy request")
}

// NotifyBuddyAccepted queues the "request accepted" email for the requester.
func (s *Service) NotifyBuddyAccepted(ctx context.Context, input adapter.BuddyAcceptedNotification) error {
	job := entity.NewEmailJob(
		entity.TemplateBuddyAccepted,
		input.RequesterEmail,
		input.RequesterName,
		fmt.Sprintf("%s accepted your buddy request", input.ReceiverName),
		map[string]interface{}{
			"requester_name": input.RequesterName,
			"receiver_name":  input.ReceiverName,
			"buddies_url":    s.appBaseURL + "/buddies",
		},
	)
	return s.enqueue(ctx, job, "buddy accepted")
}

func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob, kind string) error {
	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue "+kind+" email",
			err,
		)
	}
	return nil
}

var _ adapter.BuddyNotifier = (*Service)(nil)
