package adapter

import (
	"context"

	"github.com/productivity-app/backend/internal/domain/entity"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// CheckpointSuggestion is a proposed checkpoint for a goal.
type CheckpointSuggestion struct {
	Title       string
	Description string
	DueDate     valueobject.Date
}

// SuggestionRequest describes the goal to plan for.
type SuggestionRequest struct {
	Goal     *entity.Goal
	Existing []*entity.Checkpoint
	Limit    int
}

// CheckpointSuggestionService proposes checkpoints for a goal.
type CheckpointSuggestionService interface {
	// Suggest returns up to request.Limit checkpoint proposals.
	Suggest(ctx context.Context, request *SuggestionRequest) ([]*CheckpointSuggestion, error)

	// IsAvailable reports whether the provider is configured.
	IsAvailable() bool
}
