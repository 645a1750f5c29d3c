package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// CheckpointStatus represents the status of a checkpoint.
type CheckpointStatus string

const (
	CheckpointStatusPending    CheckpointStatus = "PENDING"
	CheckpointStatusInProgress CheckpointStatus = "IN_PROGRESS"
	CheckpointStatusCompleted  CheckpointStatus = "COMPLETED"
	CheckpointStatusOverdue    CheckpointStatus = "OVERDUE"
)

// Valid reports whether s is a known checkpoint status.
func (s CheckpointStatus) Valid() bool {
	switch s {
	case CheckpointStatusPending, CheckpointStatusInProgress, CheckpointStatusCompleted, CheckpointStatusOverdue:
		return true
	}
	return false
}

// ParseCheckpointStatus converts a wire value into a CheckpointStatus.
func ParseCheckpointStatus(s string) (CheckpointStatus, error) {
	status := CheckpointStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown checkpoint status %q", s)
	}
	return status, nil
}

// Checkpoint is a milestone belonging to a goal.
type Checkpoint struct {
	ID            uuid.UUID
	GoalID        uuid.UUID
	Title         string
	Description   string
	DueDate       valueobject.Date
	Status        CheckpointStatus
	CompletedDate *valueobject.Date
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCheckpoint creates a new pending checkpoint for a goal.
func NewCheckpoint(goalID uuid.UUID, title, description string, dueDate valueobject.Date) *Checkpoint {
	now := time.Now().UTC()
	return &Checkpoint{
		ID:          uuid.New(),
		GoalID:      goalID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      CheckpointStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetStatus changes the status and keeps CompletedDate consistent with it.
func (c *Checkpoint) SetStatus(status CheckpointStatus, today valueobject.Date) {
	if status == CheckpointStatusCompleted && c.Status != CheckpointStatusCompleted {
		c.CompletedDate = &today
	}
	if status != CheckpointStatusCompleted {
		c.CompletedDate = nil
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
}

// IsCompleted reports whether the checkpoint is completed.
func (c *Checkpoint) IsCompleted() bool {
	return c.Status == CheckpointStatusCompleted
}
