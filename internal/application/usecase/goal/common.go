// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// FindOwnedGoal loads a goal and checks that userID owns it.
func FindOwnedGoal(ctx context.Context, repo adapter.GoalRepository, goalID, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"Goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if goal.UserID != userID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"not authorized to access this goal",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	return goal, nil
}

func validatePeriod(start, end valueobject.Date) error {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalPeriod,
			"end date must not precede start date",
			domainerror.ErrInvalidGoalPeriod,
		)
	}
	return nil
}

func validateStatus(status entity.GoalStatus) error {
	if !status.Valid() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalStatus,
			"status must be ACTIVE, COMPLETED, PAUSED or CANCELLED",
			domainerror.ErrInvalidGoalStatus,
		)
	}
	return nil
}

func validateProgress(progress int) error {
	if progress < 0 || progress > entity.MaxProgress {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidProgress,
			"progress must be between 0 and 100",
			domainerror.ErrInvalidProgress,
		)
	}
	return nil
}
