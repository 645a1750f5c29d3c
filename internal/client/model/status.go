// Package model holds the client-side copies of the entities owned by the API.
package model

import "fmt"

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "ACTIVE"
	GoalCompleted GoalStatus = "COMPLETED"
	GoalPaused    GoalStatus = "PAUSED"
	GoalCancelled GoalStatus = "CANCELLED"
)

// GoalStatuses lists every goal status in display order.
var GoalStatuses = []GoalStatus{GoalActive, GoalCompleted, GoalPaused, GoalCancelled}

// Valid reports whether s is a known goal status.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalPaused, GoalCancelled:
		return true
	}
	return false
}

// ParseGoalStatus converts s to a GoalStatus.
func ParseGoalStatus(s string) (GoalStatus, error) {
	status := GoalStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown goal status %q", s)
	}
	return status, nil
}

// CheckpointStatus is the lifecycle state of a checkpoint.
type CheckpointStatus string

const (
	CheckpointPending    CheckpointStatus = "PENDING"
	CheckpointInProgress CheckpointStatus = "IN_PROGRESS"
	CheckpointCompleted  CheckpointStatus = "COMPLETED"
	CheckpointOverdue    CheckpointStatus = "OVERDUE"
)

// CheckpointStatuses lists every checkpoint status in display order.
var CheckpointStatuses = []CheckpointStatus{CheckpointPending, CheckpointInProgress, CheckpointCompleted, CheckpointOverdue}

// Valid reports whether s is a known checkpoint status.
func (s CheckpointStatus) Valid() bool {
	switch s {
	case CheckpointPending, CheckpointInProgress, CheckpointCompleted, CheckpointOverdue:
		return true
	}
	return false
}

// ParseCheckpointStatus converts s to a CheckpointStatus.
func ParseCheckpointStatus(s string) (CheckpointStatus, error) {
	status := CheckpointStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown checkpoint status %q", s)
	}
	return status, nil
}

// BuddyRequestStatus is the state of a buddy request.
type BuddyRequestStatus string

const (
	BuddyPending  BuddyRequestStatus = "PENDING"
	BuddyAccepted BuddyRequestStatus = "ACCEPTED"
	BuddyRejected BuddyRequestStatus = "REJECTED"
)

// BuddyRequestStatuses lists every buddy request status in display order.
var BuddyRequestStatuses = []BuddyRequestStatus{BuddyPending, BuddyAccepted, BuddyRejected}

// Valid reports whether s is a known buddy request status.
func (s BuddyRequestStatus) Valid() bool {
	switch s {
	case BuddyPending, BuddyAccepted, BuddyRejected:
		return true
	}
	return false
}

// ParseBuddyRequestStatus converts s to a BuddyRequestStatus.
func ParseBuddyRequestStatus(s string) (BuddyRequestStatus, error) {
	status := BuddyRequestStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown buddy request status %q", s)
	}
	return status, nil
}
