// Package viewmodel derives dashboard figures from cached collections.
// Every function is pure.
package viewmodel

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/client/model"
)

// UnknownStatusError reports a status outside the known enumeration.
type UnknownStatusError struct {
	Entity string
	ID     uuid.UUID
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("%s %s has unknown status %q", e.Entity, e.ID, e.Status)
}

// GoalPartition splits goals by status.
type GoalPartition struct {
	Active    []model.Goal
	Completed []model.Goal
	Paused    []model.Goal
	Cancelled []model.Goal
}

// Total is the number of partitioned goals.
func (p GoalPartition) Total() int {
	return len(p.Active) + len(p.Completed) + len(p.Paused) + len(p.Cancelled)
}

// ByStatus returns the list holding status.
func (p GoalPartition) ByStatus(status model.GoalStatus) []model.Goal {
	switch status {
	case model.GoalActive:
		return p.Active
	case model.GoalCompleted:
		return p.Completed
	case model.GoalPaused:
		return p.Paused
	case model.GoalCancelled:
		return p.Cancelled
	}
	return nil
}

// PartitionGoals places every goal in exactly one list, keeping input order.
func PartitionGoals(goals []model.Goal) (GoalPartition, error) {
	var p GoalPartition
	for _, g := range goals {
		switch g.Status {
		case model.GoalActive:
			p.Active = append(p.Active, g)
		case model.GoalCompleted:
			p.Completed = append(p.Completed, g)
		case model.GoalPaused:
			p.Paused = append(p.Paused, g)
		case model.GoalCancelled:
			p.Cancelled = append(p.Cancelled, g)
		default:
			return GoalPartition{}, &UnknownStatusError{Entity: "goal", ID: g.ID, Status: string(g.Status)}
		}
	}
	return p, nil
}

// CheckpointPartition splits checkpoints by status.
type CheckpointPartition struct {
	Pending    []model.Checkpoint
	InProgress []model.Checkpoint
	Completed  []model.Checkpoint
	Overdue    []model.Checkpoint
}

// PartitionCheckpoints places every checkpoint in exactly one list.
func PartitionCheckpoints(checkpoints []model.Checkpoint) (CheckpointPartition, error) {
	var p CheckpointPartition
	for _, cp := range checkpoints {
		switch cp.Status {
		case model.CheckpointPending:
			p.Pending = append(p.Pending, cp)
		case model.CheckpointInProgress:
			p.InProgress = append(p.InProgress, cp)
		case model.CheckpointCompleted:
			p.Completed = append(p.Completed, cp)
		case model.CheckpointOverdue:
			p.Overdue = append(p.Overdue, cp)
		default:
			return CheckpointPartition{}, &UnknownStatusError{Entity: "checkpoint", ID: cp.ID, Status: string(cp.Status)}
		}
	}
	return p, nil
}

// BuddyPartition splits buddy requests by status.
type BuddyPartition struct {
	Pending  []model.BuddyRequest
	Accepted []model.BuddyRequest
	Rejected []model.BuddyRequest
}

// PartitionBuddyRequests places every request in exactly one list.
func PartitionBuddyRequests(requests []model.BuddyRequest) (BuddyPartition, error) {
	var p BuddyPartition
	for _, r := range requests {
		switch r.Status {
		case model.BuddyPending:
			p.Pending = append(p.Pending, r)
		case model.BuddyAccepted:
			p.Accepted = append(p.Accepted, r)
		case model.BuddyRejected:
			p.Rejected = append(p.Rejected, r)
		default:
			return BuddyPartition{}, &UnknownStatusError{Entity: "buddy request", ID: r.ID, Status: string(r.Status)}
		}
	}
	return p, nil
}
