package goal

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

func date(s string) valueobject.Date { return valueobject.MustParseDate(s) }

func TestCreateGoalUseCase(t *testing.T) {
	ctx := context.Background()
	cancelled := entity.GoalStatusCancelled
	bogus := entity.GoalStatus("DONE")

	tests := []struct {
		name         string
		input        func(owner uuid.UUID) CreateGoalInput
		expectedCode domainerror.GoalErrorCode
	}{
		{
			name: "another user",
			input: func(owner uuid.UUID) CreateGoalInput {
				return CreateGoalInput{ActorID: uuid.New(), UserID: owner, Title: "Run"}
			},
			expectedCode: domainerror.ErrCodeUnauthorizedGoalAccess,
		},
		{
			name: "missing title",
			input: func(owner uuid.UUID) CreateGoalInput {
				return CreateGoalInput{ActorID: owner, UserID: owner, Title: "  "}
			},
			expectedCode: domainerror.ErrCodeMissingGoalFields,
		},
		{
			name: "end before start",
			input: func(owner uuid.UUID) CreateGoalInput {
				return CreateGoalInput{ActorID: owner, UserID: owner, Title: "Run", StartDate: date("2026-03-01"), EndDate: date("2026-02-01")}
			},
			expectedCode: domainerror.ErrCodeInvalidGoalPeriod,
		},
		{
			name: "unknown status",
			input: func(owner uuid.UUID) CreateGoalInput {
				return CreateGoalInput{ActorID: owner, UserID: owner, Title: "Run", Status: &bogus}
			},
			expectedCode: domainerror.ErrCodeInvalidGoalStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := usecasetest.NewStore()
			owner := store.AddUser("ana")

			_, err := NewCreateGoalUseCase(store.Goals(), store.Users()).Execute(ctx, tt.input(owner.ID))

			var goalErr *domainerror.GoalError
			if !errors.As(err, &goalErr) {
				t.Fatalf("expected GoalError, got %v", err)
			}
			if goalErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, goalErr.Code)
			}
		})
	}

	t.Run("defaults to active with zero progress", func(t *testing.T) {
		store := usecasetest.NewStore()
		owner := store.AddUser("ana")

		out, err := NewCreateGoalUseCase(store.Goals(), store.Users()).Execute(ctx, CreateGoalInput{
			ActorID: owner.ID, UserID: owner.ID, Title: "Run", StartDate: date("2026-01-01"), EndDate: date("2026-01-01"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Goal.Status != entity.GoalStatusActive || out.Goal.Progress != 0 {
			t.Errorf("expected ACTIVE/0, got %s/%d", out.Goal.Status, out.Goal.Progress)
		}
	})

	t.Run("accepts explicit status", func(t *testing.T) {
		store := usecasetest.NewStore()
		owner := store.AddUser("ana")

		out, err := NewCreateGoalUseCase(store.Goals(), store.Users()).Execute(ctx, CreateGoalInput{
			ActorID: owner.ID, UserID: owner.ID, Title: "Run", Status: &cancelled,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Goal.Status != entity.GoalStatusCancelled {
			t.Errorf("expected CANCELLED, got %s", out.Goal.Status)
		}
	})
}

func TestGoalOwnership(t *testing.T) {
	ctx := context.Background()
	store := usecasetest.NewStore()
	owner := store.AddUser("ana")
	stranger := store.AddUser("bob")
	g := entity.NewGoal(owner.ID, "Run", "", date("2026-01-01"), date("2026-02-01"))
	_ = store.Goals().Create(ctx, g)

	checks := map[string]func() error{
		"get": func() error {
			_, err := NewGetGoalUseCase(store.Goals()).Execute(ctx, GetGoalInput{GoalID: g.ID, UserID: stranger.ID})
			return err
		},
		"update": func() error {
			title := "Walk"
			_, err := NewUpdateGoalUseCase(store.Goals()).Execute(ctx, UpdateGoalInput{GoalID: g.ID, UserID: stranger.ID, Title: &title})
			return err
		},
		"delete": func() error {
			return NewDeleteGoalUseCase(store.Goals()).Execute(ctx, DeleteGoalInput{GoalID: g.ID, UserID: stranger.ID})
		},
		"complete": func() error {
			_, err := NewCompleteGoalUseCase(store.Goals()).Execute(ctx, CompleteGoalInput{GoalID: g.ID, UserID: stranger.ID})
			return err
		},
		"list": func() error {
			_, err := NewListGoalsUseCase(store.Goals()).Execute(ctx, ListGoalsInput{ActorID: stranger.ID, UserID: owner.ID})
			return err
		},
	}

	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			if err := check(); !errors.Is(err, domainerror.ErrUnauthorizedGoalAccess) {
				t.Errorf("expected ErrUnauthorizedGoalAccess, got %v", err)
			}
		})
	}

	if _, err := store.Goals().FindByID(ctx, g.ID); err != nil {
		t.Errorf("goal should survive rejected calls, got %v", err)
	}
}

func TestGetGoalUseCase_NotFound(t *testing.T) {
	store := usecasetest.NewStore()

	_, err := NewGetGoalUseCase(store.Goals()).Execute(context.Background(), GetGoalInput{GoalID: uuid.New(), UserID: uuid.New()})

	var goalErr *domainerror.GoalError
	if !errors.As(err, &goalErr) || goalErr.Code != domainerror.ErrCodeGoalNotFound {
		t.Fatalf("expected goal not found error, got %v", err)
	}
	if goalErr.Message != "Goal not found" {
		t.Errorf("expected message %q, got %q", "Goal not found", goalErr.Message)
	}
}

func TestUpdateGoalUseCase(t *testing.T) {
	ctx := context.Background()
	paused := entity.GoalStatusPaused

	tests := []struct {
		name         string
		input        UpdateGoalInput
		expectedCode domainerror.GoalErrorCode
	}{
		{"progress above 100", UpdateGoalInput{Progress: intPtr(101)}, domainerror.ErrCodeInvalidProgress},
		{"negative progress", UpdateGoalInput{Progress: intPtr(-1)}, domainerror.ErrCodeInvalidProgress},
		{"end before existing start", UpdateGoalInput{EndDate: datePtr("2025-12-31")}, domainerror.ErrCodeInvalidGoalPeriod},
		{"empty title", UpdateGoalInput{Title: strPtr("")}, domainerror.ErrCodeMissingGoalFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := usecasetest.NewStore()
			owner := store.AddUser("ana")
			g := entity.NewGoal(owner.ID, "Run", "", date("2026-01-01"), date("2026-02-01"))
			_ = store.Goals().Create(ctx, g)

			input := tt.input
			input.GoalID = g.ID
			input.UserID = owner.ID
			_, err := NewUpdateGoalUseCase(store.Goals()).Execute(ctx, input)

			var goalErr *domainerror.GoalError
			if !errors.As(err, &goalErr) {
				t.Fatalf("expected GoalError, got %v", err)
			}
			if goalErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, goalErr.Code)
			}
		})
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		store := usecasetest.NewStore()
		owner := store.AddUser("ana")
		g := entity.NewGoal(owner.ID, "Run", "5k", date("2026-01-01"), date("2026-02-01"))
		_ = store.Goals().Create(ctx, g)

		out, err := NewUpdateGoalUseCase(store.Goals()).Execute(ctx, UpdateGoalInput{GoalID: g.ID, UserID: owner.ID, Status: &paused})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Goal.Status != entity.GoalStatusPaused {
			t.Errorf("expected PAUSED, got %s", out.Goal.Status)
		}
		if out.Goal.Title != "Run" || out.Goal.Description != "5k" {
			t.Errorf("expected untouched fields, got %+v", out.Goal)
		}
	})
}

func TestCompleteGoalUseCase(t *testing.T) {
	ctx := context.Background()
	store := usecasetest.NewStore()
	owner := store.AddUser("ana")
	g := entity.NewGoal(owner.ID, "Run", "", date("2026-01-01"), date("2026-02-01"))
	g.Progress = 40
	_ = store.Goals().Create(ctx, g)

	out, err := NewCompleteGoalUseCase(store.Goals()).Execute(ctx, CompleteGoalInput{GoalID: g.ID, UserID: owner.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Goal.Status != entity.GoalStatusCompleted || out.Goal.Progress != 100 {
		t.Errorf("expected COMPLETED/100, got %s/%d", out.Goal.Status, out.Goal.Progress)
	}

	stored, _ := store.Goals().FindByID(ctx, g.ID)
	if stored.Status != entity.GoalStatusCompleted {
		t.Errorf("expected stored goal to be COMPLETED, got %s", stored.Status)
	}
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }
func datePtr(s string) *valueobject.Date {
	d := date(s)
	return &d
}
