// Package suggestion contains AI-assisted planning use cases.
package suggestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/application/usecase/goal"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
)

// MaxSuggestions caps the number of proposals per call.
const MaxSuggestions = 5

// SuggestCheckpointsInput represents the input for checkpoint suggestions.
type SuggestCheckpointsInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// SuggestCheckpointsOutput represents the output of checkpoint suggestions.
type SuggestCheckpointsOutput struct {
	Suggestions []*adapter.CheckpointSuggestion
}

// SuggestCheckpointsUseCase asks the AI provider to plan checkpoints for a goal.
type SuggestCheckpointsUseCase struct {
	goalRepo       adapter.GoalRepository
	checkpointRepo adapter.CheckpointRepository
	aiService      adapter.CheckpointSuggestionService
}

// NewSuggestCheckpointsUseCase creates a new SuggestCheckpointsUseCase instance.
func NewSuggestCheckpointsUseCase(
	goalRepo adapter.GoalRepository,
	checkpointRepo adapter.CheckpointRepository,
	aiService adapter.CheckpointSuggestionService,
) *SuggestCheckpointsUseCase {
	return &SuggestCheckpointsUseCase{
		goalRepo:       goalRepo,
		checkpointRepo: checkpointRepo,
		aiService:      aiService,
	}
}

// Execute returns at most MaxSuggestions proposals dated within the goal period.
func (uc *SuggestCheckpointsUseCase) Execute(ctx context.Context, input SuggestCheckpointsInput) (*SuggestCheckpointsOutput, error) {
	if uc.aiService == nil || !uc.aiService.IsAvailable() {
		return nil, domainerror.NewSuggestionError(
			domainerror.ErrCodeSuggestionUnavailable,
			"checkpoint suggestions are not configured",
			domainerror.ErrSuggestionUnavailable,
		)
	}

	g, err := goal.FindOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.checkpointRepo.FindByGoalID(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}

	suggestions, err := uc.aiService.Suggest(ctx, &adapter.SuggestionRequest{
		Goal:     g,
		Existing: existing,
		Limit:    MaxSuggestions,
	})
	if err != nil {
		slog.Error("Checkpoint suggestion failed", "error", err, "goalID", g.ID)
		return nil, classifyError(err)
	}

	filtered := make([]*adapter.CheckpointSuggestion, 0, MaxSuggestions)
	for _, s := range suggestions {
		if len(filtered) == MaxSuggestions {
			break
		}
		if s == nil || s.Title == "" {
			continue
		}
		if !g.StartDate.IsZero() && s.DueDate.Before(g.StartDate) {
			s.DueDate = g.StartDate
		}
		if !g.EndDate.IsZero() && s.DueDate.After(g.EndDate) {
			s.DueDate = g.EndDate
		}
		filtered = append(filtered, s)
	}

	return &SuggestCheckpointsOutput{Suggestions: filtered}, nil
}
