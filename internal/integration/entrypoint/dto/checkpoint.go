package dto

import (
	"time"

	"github.com/productivity-app/backend/internal/domain/entity"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// CreateCheckpointRequest represents the request body for checkpoint creation.
type CreateCheckpointRequest struct {
	GoalID      string           `json:"goalId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	DueDate     valueobject.Date `json:"dueDate"`
	Status      *string          `json:"status,omitempty"`
}

// UpdateCheckpointRequest represents the request body for a partial checkpoint update.
type UpdateCheckpointRequest struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	DueDate     *valueobject.Date `json:"dueDate,omitempty"`
	Status      *string           `json:"status,omitempty"`
}

// CheckpointResponse represents a single checkpoint in API responses.
type CheckpointResponse struct {
	ID            string            `json:"id"`
	GoalID        string            `json:"goalId"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	DueDate       valueobject.Date  `json:"dueDate"`
	Status        string            `json:"status"`
	CompletedDate *valueobject.Date `json:"completedDate"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// ToCheckpointResponse converts a domain Checkpoint entity to a CheckpointResponse DTO.
func ToCheckpointResponse(cp *entity.Checkpoint) CheckpointResponse {
	return CheckpointResponse{
		ID:            cp.ID.String(),
		GoalID:        cp.GoalID.String(),
		Title:         cp.Title,
		Description:   cp.Description,
		DueDate:       cp.DueDate,
		Status:        string(cp.Status),
		CompletedDate: cp.CompletedDate,
		CreatedAt:     cp.CreatedAt,
	}
}

// ToCheckpointListResponse converts checkpoints to a JSON array.
func ToCheckpointListResponse(cps []*entity.Checkpoint) []CheckpointResponse {
	out := make([]CheckpointResponse, 0, len(cps))
	for _, cp := range cps {
		out = append(out, ToCheckpointResponse(cp))
	}
	return out
}
