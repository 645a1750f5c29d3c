// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// GoalStatus represents the lifecycle status of a goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "ACTIVE"
	GoalStatusCompleted GoalStatus = "COMPLETED"
	GoalStatusPaused    GoalStatus = "PAUSED"
	GoalStatusCancelled GoalStatus = "CANCELLED"
)

// GoalStatuses lists every goal status in display order.
var GoalStatuses = []GoalStatus{
	GoalStatusActive,
	GoalStatusCompleted,
	GoalStatusPaused,
	GoalStatusCancelled,
}

// Valid reports whether s is a known goal status.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled:
		return true
	}
	return false
}

// ParseGoalStatus converts a wire value into a GoalStatus.
func ParseGoalStatus(s string) (GoalStatus, error) {
	status := GoalStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown goal status %q", s)
	}
	return status, nil
}

// MaxProgress is the progress value of a finished goal.
const MaxProgress = 100

// Goal represents a user objective tracked through checkpoints.
type Goal struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	StartDate   valueobject.Date
	EndDate     valueobject.Date
	Progress    int
	Status      GoalStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewGoal creates a new active Goal with zero progress.
func NewGoal(userID uuid.UUID, title, description string, startDate, endDate valueobject.Date) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		StartDate:   startDate,
		EndDate:     endDate,
		Progress:    0,
		Status:      GoalStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Complete marks the goal as completed with full progress.
func (g *Goal) Complete() {
	g.Status = GoalStatusCompleted
	g.Progress = MaxProgress
	g.UpdatedAt = time.Now().UTC()
}

// ApplyCheckpointProgress recomputes progress from checkpoint counts.
// A completed goal keeps its full progress.
func (g *Goal) ApplyCheckpointProgress(completed, total int) {
	if g.Status == GoalStatusCompleted {
		return
	}
	g.Progress = CalculateProgress(completed, total)
	g.UpdatedAt = time.Now().UTC()
}

// CalculateProgress returns completed*100/total, or 0 when there are no checkpoints.
func CalculateProgress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return completed * MaxProgress / total
}
