package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/usecase/usecasetest"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

func strPtr(s string) *string { return &s }

func TestUpdateUserUseCase(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		actorIsOther bool
		input        UpdateUserInput
		expectedCode domainerror.UserErrorCode
	}{
		{name: "another user", actorIsOther: true, expectedCode: domainerror.ErrCodeForbiddenProfileAccess},
		{name: "duplicate username", input: UpdateUserInput{Username: strPtr("bob")}, expectedCode: domainerror.ErrCodeProfileUsernameExists},
		{name: "duplicate email", input: UpdateUserInput{Email: strPtr("bob@example.com")}, expectedCode: domainerror.ErrCodeProfileEmailExists},
		{name: "invalid email", input: UpdateUserInput{Email: strPtr("nope")}, expectedCode: domainerror.ErrCodeInvalidProfileEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := usecasetest.NewStore()
			ana := store.AddUser("ana")
			store.AddUser("bob")

			input := tt.input
			input.UserID = ana.ID
			input.ActorID = ana.ID
			if tt.actorIsOther {
				input.ActorID = uuid.New()
			}

			_, err := NewUpdateUserUseCase(store.Users()).Execute(ctx, input)

			var userErr *domainerror.UserError
			if !errors.As(err, &userErr) {
				t.Fatalf("expected UserError, got %v", err)
			}
			if userErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, userErr.Code)
			}
		})
	}

	t.Run("updates own profile", func(t *testing.T) {
		store := usecasetest.NewStore()
		ana := store.AddUser("ana")

		out, err := NewUpdateUserUseCase(store.Users()).Execute(ctx, UpdateUserInput{
			ActorID:  ana.ID,
			UserID:   ana.ID,
			Username: strPtr("ana-maria"),
			Email:    strPtr("ANA.MARIA@example.com"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.User.Username != "ana-maria" || out.User.Email != "ana.maria@example.com" {
			t.Errorf("unexpected profile %+v", out.User)
		}
	})
}

func TestGetUserUseCase_NotFound(t *testing.T) {
	store := usecasetest.NewStore()

	_, err := NewGetUserUseCase(store.Users()).Execute(context.Background(), GetUserInput{UserID: uuid.New()})

	if !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUserUseCase(t *testing.T) {
	ctx := context.Background()
	store := usecasetest.NewStore()
	ana := store.AddUser("ana")
	bob := store.AddUser("bob")

	goal := entity.NewGoal(ana.ID, "Run", "", valueobject.MustParseDate("2026-01-01"), valueobject.MustParseDate("2026-02-01"))
	_ = store.Goals().Create(ctx, goal)
	_ = store.BuddyRequests().Create(ctx, entity.NewBuddyRequest(bob.ID, ana.ID, valueobject.Today()))

	tokens := &usecasetest.TokenService{}
	uc := NewDeleteUserUseCase(store.Users(), tokens)

	if err := uc.Execute(ctx, DeleteUserInput{ActorID: bob.ID, UserID: ana.ID}); !errors.Is(err, domainerror.ErrForbiddenUserAccess) {
		t.Fatalf("expected ErrForbiddenUserAccess, got %v", err)
	}

	if err := uc.Execute(ctx, DeleteUserInput{ActorID: ana.ID, UserID: ana.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Goals().FindByID(ctx, goal.ID); !errors.Is(err, domainerror.ErrGoalNotFound) {
		t.Errorf("expected goals to be deleted with the user, got %v", err)
	}
	requests, _ := store.BuddyRequests().FindByUserID(ctx, bob.ID)
	if len(requests) != 0 {
		t.Errorf("expected buddy requests to be deleted, got %d", len(requests))
	}
}
