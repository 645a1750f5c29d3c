package viewmodel

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/productivity-app/backend/internal/client/model"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

// MaxRecentActivity caps the activity feed.
const MaxRecentActivity = 10

// DashboardStats are the headline counters.
type DashboardStats struct {
	TotalGoals           int
	Active               int
	Completed            int
	PendingBuddyRequests int
}

// NewDashboardStats counts goals and pending buddy requests.
func NewDashboardStats(goals []model.Goal, requests []model.BuddyRequest) (DashboardStats, error) {
	gp, err := PartitionGoals(goals)
	if err != nil {
		return DashboardStats{}, err
	}
	bp, err := PartitionBuddyRequests(requests)
	if err != nil {
		return DashboardStats{}, err
	}
	return DashboardStats{
		TotalGoals:           gp.Total(),
		Active:               len(gp.Active),
		Completed:            len(gp.Completed),
		PendingBuddyRequests: len(bp.Pending),
	}, nil
}

// BuddyStats summarises buddy requests. TotalBuddies counts accepted requests.
type BuddyStats struct {
	Pending      int
	Accepted     int
	Rejected     int
	TotalBuddies int
}

func NewBuddyStats(requests []model.BuddyRequest) (BuddyStats, error) {
	p, err := PartitionBuddyRequests(requests)
	if err != nil {
		return BuddyStats{}, err
	}
	return BuddyStats{
		Pending:      len(p.Pending),
		Accepted:     len(p.Accepted),
		Rejected:     len(p.Rejected),
		TotalBuddies: len(p.Accepted),
	}, nil
}

// CheckpointStats summarises checkpoints.
type CheckpointStats struct {
	Total     int
	Pending   int
	Completed int
}

func NewCheckpointStats(checkpoints []model.Checkpoint) (CheckpointStats, error) {
	p, err := PartitionCheckpoints(checkpoints)
	if err != nil {
		return CheckpointStats{}, err
	}
	return CheckpointStats{
		Total:     len(checkpoints),
		Pending:   len(p.Pending),
		Completed: len(p.Completed),
	}, nil
}

// ActivityKind says which collection an activity came from.
type ActivityKind string

const (
	ActivityGoal       ActivityKind = "goal"
	ActivityCheckpoint ActivityKind = "checkpoint"
)

// Activity is one row of the recent activity feed.
type Activity struct {
	Kind   ActivityKind
	ID     string
	Title  string
	Status string
	Date   valueobject.Date
}

// RecentActivity merges goals (by start date) and checkpoints (by due date),
// newest first, capped at MaxRecentActivity. Equal dates keep goals before
// checkpoints and input order within each kind.
func RecentActivity(goals []model.Goal, checkpoints []model.Checkpoint) []Activity {
	items := make([]Activity, 0, len(goals)+len(checkpoints))
	for _, g := range goals {
		items = append(items, Activity{
			Kind:   ActivityGoal,
			ID:     "goal-" + g.ID.String(),
			Title:  g.Title,
			Status: string(g.Status),
			Date:   g.StartDate,
		})
	}
	for _, cp := range checkpoints {
		items = append(items, Activity{
			Kind:   ActivityCheckpoint,
			ID:     "checkpoint-" + cp.ID.String(),
			Title:  cp.Title,
			Status: string(cp.Status),
			Date:   cp.DueDate,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})

	if len(items) > MaxRecentActivity {
		items = items[:MaxRecentActivity]
	}
	return items
}

// ChartSlice is one segment of the goal status chart.
type ChartSlice struct {
	Status model.GoalStatus
	Label  string
	Count  int
	Color  string
	// Share is the percentage of all goals, rounded to two places.
	Share decimal.Decimal
}

var chartStyle = map[model.GoalStatus]struct {
	label string
	color string
}{
	model.GoalActive:    {"Active", "#3B82F6"},
	model.GoalCompleted: {"Completed", "#10B981"},
	model.GoalPaused:    {"Paused", "#F59E0B"},
	model.GoalCancelled: {"Cancelled", "#EF4444"},
}

// ProgressChart returns one slice per goal status with a non-zero count, in
// canonical status order.
func ProgressChart(goals []model.Goal) ([]ChartSlice, error) {
	p, err := PartitionGoals(goals)
	if err != nil {
		return nil, err
	}

	total := decimal.NewFromInt(int64(p.Total()))
	hundred := decimal.NewFromInt(100)
	var slices []ChartSlice
	for _, status := range model.GoalStatuses {
		count := len(p.ByStatus(status))
		if count == 0 {
			continue
		}
		style := chartStyle[status]
		slices = append(slices, ChartSlice{
			Status: status,
			Label:  style.label,
			Count:  count,
			Color:  style.color,
			Share:  decimal.NewFromInt(int64(count)).Mul(hundred).Div(total).Round(2),
		})
	}
	return slices, nil
}
