package buddy

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/application/usecase/usecasetest"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
)

func TestSendRequestUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request and notifies the receiver", func(t *testing.T) {
		store := usecasetest.NewStore()
		ana, bob := store.AddUser("ana"), store.AddUser("bob")
		notifier := &usecasetest.Notifier{}

		out, err := NewSendRequestUseCase(store.BuddyRequests(), store.Users(), notifier).Execute(ctx, SendRequestInput{ActorID: ana.ID, ReceiverID: bob.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Request.Status != entity.BuddyRequestStatusPending {
			t.Errorf("expected PENDING, got %s", out.Request.Status)
		}
		if out.Request.RequesterID != ana.ID || out.Request.ReceiverID != bob.ID {
			t.Errorf("unexpected parties %+v", out.Request)
		}
		if len(notifier.Requests) != 1 || notifier.Requests[0].ReceiverEmail != bob.Email {
			t.Errorf("expected one notification to bob, got %+v", notifier.Requests)
		}
	})

	t.Run("notification failure does not fail the request", func(t *testing.T) {
		store := usecasetest.NewStore()
		ana, bob := store.AddUser("ana"), store.AddUser("bob")
		notifier := &usecasetest.Notifier{Err: errors.New("queue down")}

		if _, err := NewSendRequestUseCase(store.BuddyRequests(), store.Users(), notifier).Execute(ctx, SendRequestInput{ActorID: ana.ID, ReceiverID: bob.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	tests := []struct {
		name            string
		input           func(ana, bob uuid.UUID) SendRequestInput
		preexisting     bool
		expectedCode    domainerror.BuddyErrorCode
		expectedMessage string
	}{
		{
			name:            "self request",
			input:           func(ana, _ uuid.UUID) SendRequestInput { return SendRequestInput{ActorID: ana, ReceiverID: ana} },
			expectedCode:    domainerror.ErrCodeSelfBuddyRequest,
			expectedMessage: "Cannot send request to yourself",
		},
		{
			name:            "unknown receiver",
			input:           func(ana, _ uuid.UUID) SendRequestInput { return SendRequestInput{ActorID: ana, ReceiverID: uuid.New()} },
			expectedCode:    domainerror.ErrCodeReceiverNotFound,
			expectedMessage: "Receiver not found",
		},
		{
			name:            "duplicate pair",
			input:           func(ana, bob uuid.UUID) SendRequestInput { return SendRequestInput{ActorID: ana, ReceiverID: bob} },
			preexisting:     true,
			expectedCode:    domainerror.ErrCodeBuddyRequestExists,
			expectedMessage: "Buddy request already exists",
		},
		{
			name: "impersonated requester",
			input: func(ana, bob uuid.UUID) SendRequestInput {
				return SendRequestInput{ActorID: ana, RequesterID: bob, ReceiverID: ana}
			},
			expectedCode:    domainerror.ErrCodeUnauthorizedBuddyAccess,
			expectedMessage: "you can only send requests as yourself",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := usecasetest.NewStore()
			ana, bob := store.AddUser("ana"), store.AddUser("bob")
			uc := NewSendRequestUseCase(store.BuddyRequests(), store.Users(), nil)
			if tt.preexisting {
				if _, err := uc.Execute(ctx, SendRequestInput{ActorID: ana.ID, ReceiverID: bob.ID}); err != nil {
					t.Fatalf("seed request: %v", err)
				}
			}

			_, err := uc.Execute(ctx, tt.input(ana.ID, bob.ID))

			var buddyErr *domainerror.BuddyError
			if !errors.As(err, &buddyErr) {
				t.Fatalf("expected BuddyError, got %v", err)
			}
			if buddyErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, buddyErr.Code)
			}
			if buddyErr.Message != tt.expectedMessage {
				t.Errorf("expected message %q, got %q", tt.expectedMessage, buddyErr.Message)
			}
		})
	}
}

func TestRespondRequestUseCase(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*usecasetest.Store, *entity.User, *entity.User, *entity.BuddyRequest, *usecasetest.Notifier) {
		t.Helper()
		store := usecasetest.NewStore()
		ana, bob := store.AddUser("ana"), store.AddUser("bob")
		out, err := NewSendRequestUseCase(store.BuddyRequests(), store.Users(), nil).Execute(ctx, SendRequestInput{ActorID: ana.ID, ReceiverID: bob.ID})
		if err != nil {
			t.Fatalf("seed request: %v", err)
		}
		return store, ana, bob, out.Request, &usecasetest.Notifier{}
	}

	t.Run("receiver accepts and requester is notified", func(t *testing.T) {
		store, ana, bob, req, notifier := setup(t)
		uc := NewRespondRequestUseCase(store.BuddyRequests(), store.Users(), notifier)

		out, err := uc.Execute(ctx, RespondRequestInput{RequestID: req.ID, UserID: bob.ID, Status: entity.BuddyRequestStatusAccepted})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Request.Status != entity.BuddyRequestStatusAccepted {
			t.Errorf("expected ACCEPTED, got %s", out.Request.Status)
		}
		if len(notifier.Accepted) != 1 || notifier.Accepted[0].RequesterEmail != ana.Email {
			t.Errorf("expected one acceptance email to ana, got %+v", notifier.Accepted)
		}
	})

	t.Run("rejection sends no email", func(t *testing.T) {
		store, _, bob, req, notifier := setup(t)
		uc := NewRespondRequestUseCase(store.BuddyRequests(), store.Users(), notifier)

		if _, err := uc.Execute(ctx, RespondRequestInput{RequestID: req.ID, UserID: bob.ID, Status: entity.BuddyRequestStatusRejected}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.Accepted) != 0 {
			t.Errorf("expected no acceptance email, got %d", len(notifier.Accepted))
		}
	})

	t.Run("requester cannot answer", func(t *testing.T) {
		store, ana, _, req, _ := setup(t)
		uc := NewRespondRequestUseCase(store.BuddyRequests(), store.Users(), nil)

		_, err := uc.Execute(ctx, RespondRequestInput{RequestID: req.ID, UserID: ana.ID, Status: entity.BuddyRequestStatusAccepted})
		if !errors.Is(err, domainerror.ErrNotRequestReceiver) {
			t.Errorf("expected ErrNotRequestReceiver, got %v", err)
		}
	})

	t.Run("status moves exactly once", func(t *testing.T) {
		store, _, bob, req, _ := setup(t)
		uc := NewRespondRequestUseCase(store.BuddyRequests(), store.Users(), nil)

		if _, err := uc.Execute(ctx, RespondRequestInput{RequestID: req.ID, UserID: bob.ID, Status: entity.BuddyRequestStatusRejected}); err != nil {
			t.Fatalf("first answer: %v", err)
		}
		_, err := uc.Execute(ctx, RespondRequestInput{RequestID: req.ID, UserID: bob.ID, Status: entity.BuddyRequestStatusAccepted})
		if !errors.Is(err, domainerror.ErrRequestNotPending) {
			t.Errorf("expected ErrRequestNotPending, got %v", err)
		}
		stored, _ := store.BuddyRequests().FindByID(ctx, req.ID)
		if stored.Status != entity.BuddyRequestStatusRejected {
			t.Errorf("expected REJECTED to stick, got %s", stored.Status)
		}
	})

	t.Run("simultaneous answers resolve once", func(t *testing.T) {
		store, _, bob, req, notifier := setup(t)
		repo := &lockstepBuddyRepo{BuddyRequestRepository: store.BuddyRequests()}
		repo.reads.Add(2)
		uc := NewRespondRequestUseCase(repo, store.Users(), notifier)

		statuses := []entity.BuddyRequestStatus{entity.BuddyRequestStatusAccepted, entity.BuddyRequestStatusRejected}
		errs := make([]error, len(statuses))
		var wg sync.WaitGroup
		for i, status := range statuses {
			wg.Add(1)
			go func(i int, status entity.BuddyRequestStatus) {
				defer wg.Done()
				_, errs[i] = uc.Execute(ctx, RespondRequestInput{RequestID: req.ID, UserID: bob.ID, Status: status})
			}(i, status)
		}
		wg.Wait()

		winner := -1
		for i, err := range errs {
			switch {
			case err == nil:
				if winner != -1 {
					t.Fatalf("both answers succeeded")
				}
				winner = i
			case !errors.Is(err, domainerror.ErrRequestNotPending):
				t.Errorf("expected ErrRequestNotPending for the losing answer, got %v", err)
			}
		}
		if winner == -1 {
			t.Fatalf("no answer succeeded: %v", errs)
		}

		stored, _ := store.BuddyRequests().FindByID(ctx, req.ID)
		if stored.Status != statuses[winner] {
			t.Errorf("expected stored status %s, got %s", statuses[winner], stored.Status)
		}
		wantEmails := 0
		if statuses[winner] == entity.BuddyRequestStatusAccepted {
			wantEmails = 1
		}
		if len(notifier.Accepted) != wantEmails {
			t.Errorf("expected %d acceptance emails, got %d", wantEmails, len(notifier.Accepted))
		}
	})

	t.Run("pending is not an answer", func(t *testing.T) {
		store, _, bob, req, _ := setup(t)
		uc := NewRespondRequestUseCase(store.BuddyRequests(), store.Users(), nil)

		_, err := uc.Execute(ctx, RespondRequestInput{RequestID: req.ID, UserID: bob.ID, Status: entity.BuddyRequestStatusPending})
		if !errors.Is(err, domainerror.ErrInvalidBuddyStatus) {
			t.Errorf("expected ErrInvalidBuddyStatus, got %v", err)
		}
	})
}

func TestListRequestsUseCase_Views(t *testing.T) {
	ctx := context.Background()
	store := usecasetest.NewStore()
	ana, bob, cid := store.AddUser("ana"), store.AddUser("bob"), store.AddUser("cid")
	send := NewSendRequestUseCase(store.BuddyRequests(), store.Users(), nil)
	respond := NewRespondRequestUseCase(store.BuddyRequests(), store.Users(), nil)

	toBob, _ := send.Execute(ctx, SendRequestInput{ActorID: ana.ID, ReceiverID: bob.ID})
	_, _ = send.Execute(ctx, SendRequestInput{ActorID: cid.ID, ReceiverID: ana.ID})
	if _, err := respond.Execute(ctx, RespondRequestInput{RequestID: toBob.Request.ID, UserID: bob.ID, Status: entity.BuddyRequestStatusAccepted}); err != nil {
		t.Fatalf("accept: %v", err)
	}

	uc := NewListRequestsUseCase(store.BuddyRequests())
	tests := []struct {
		view     ListView
		expected int
	}{
		{ViewAll, 2},
		{ViewPending, 1},
		{ViewSent, 0},
		{ViewAccepted, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			out, err := uc.Execute(ctx, ListRequestsInput{ActorID: ana.ID, UserID: ana.ID, View: tt.view})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out.Requests) != tt.expected {
				t.Errorf("expected %d requests, got %d", tt.expected, len(out.Requests))
			}
		})
	}

	_, err := uc.Execute(ctx, ListRequestsInput{ActorID: bob.ID, UserID: ana.ID})
	if !errors.Is(err, domainerror.ErrUnauthorizedBuddyAccess) {
		t.Errorf("expected ErrUnauthorizedBuddyAccess, got %v", err)
	}
}

// lockstepBuddyRepo holds every FindByID until all expected readers have
// loaded the request, so they all see it PENDING.
type lockstepBuddyRepo struct {
	adapter.BuddyRequestRepository
	reads sync.WaitGroup
}

func (r *lockstepBuddyRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.BuddyRequest, error) {
	req, err := r.BuddyRequestRepository.FindByID(ctx, id)
	r.reads.Done()
	r.reads.Wait()
	return req, err
}
