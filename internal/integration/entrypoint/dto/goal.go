package dto

import (
	"time"

	"github.com/productivity-app/backend/internal/domain/entity"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	StartDate   valueobject.Date `json:"startDate"`
	EndDate     valueobject.Date `json:"endDate"`
	Status      *string          `json:"status,omitempty"`
}

// UpdateGoalRequest represents the request body for a partial goal update.
type UpdateGoalRequest struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	StartDate   *valueobject.Date `json:"startDate,omitempty"`
	EndDate     *valueobject.Date `json:"endDate,omitempty"`
	Status      *string           `json:"status,omitempty"`
	Progress    *int              `json:"progress,omitempty"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	StartDate   valueobject.Date `json:"startDate"`
	EndDate     valueobject.Date `json:"endDate"`
	Progress    int              `json:"progress"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:          g.ID.String(),
		UserID:      g.UserID.String(),
		Title:       g.Title,
		Description: g.Description,
		StartDate:   g.StartDate,
		EndDate:     g.EndDate,
		Progress:    g.Progress,
		Status:      string(g.Status),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// ToGoalListResponse converts goals to a JSON array; an empty list encodes as [].
func ToGoalListResponse(goals []*entity.Goal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, ToGoalResponse(g))
	}
	return out
}

// SuggestionResponse is one proposed checkpoint.
type SuggestionResponse struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	DueDate     valueobject.Date `json:"dueDate"`
}

// SuggestionListResponse wraps checkpoint proposals for a goal.
type SuggestionListResponse struct {
	GoalID      string               `json:"goalId"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}
