package viewmodel

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/client/model"
	"github.com/productivity-app/backend/internal/domain/valueobject"
)

func goal(status model.GoalStatus, start string) model.Goal {
	g := model.Goal{ID: uuid.New(), Title: "goal " + start, Status: status}
	if start != "" {
		g.StartDate = valueobject.MustParseDate(start)
	}
	return g
}

func checkpoint(status model.CheckpointStatus, due string) model.Checkpoint {
	return model.Checkpoint{ID: uuid.New(), Title: "cp " + due, Status: status, DueDate: valueobject.MustParseDate(due)}
}

func buddy(status model.BuddyRequestStatus) model.BuddyRequest {
	return model.BuddyRequest{ID: uuid.New(), Status: status}
}

func TestPartitionGoals(t *testing.T) {
	goals := []model.Goal{
		goal(model.GoalActive, "2024-01-01"),
		goal(model.GoalCompleted, "2024-01-02"),
		goal(model.GoalPaused, "2024-01-03"),
		goal(model.GoalActive, "2024-01-04"),
		goal(model.GoalCancelled, "2024-01-05"),
	}

	p, err := PartitionGoals(goals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Active) != 2 || len(p.Completed) != 1 || len(p.Paused) != 1 || len(p.Cancelled) != 1 {
		t.Errorf("unexpected partition sizes: %+v", p)
	}
	if p.Total() != len(goals) {
		t.Errorf("union must equal input: %d vs %d", p.Total(), len(goals))
	}

	seen := map[uuid.UUID]int{}
	for _, status := range model.GoalStatuses {
		for _, g := range p.ByStatus(status) {
			if g.Status != status {
				t.Errorf("goal %s in wrong list %s", g.ID, status)
			}
			seen[g.ID]++
		}
	}
	for _, g := range goals {
		if seen[g.ID] != 1 {
			t.Errorf("goal %s appears %d times", g.ID, seen[g.ID])
		}
	}
	if p.Active[0].ID != goals[0].ID || p.Active[1].ID != goals[3].ID {
		t.Error("expected input order within a partition")
	}
}

func TestPartitions_UnknownStatus(t *testing.T) {
	bad := goal("ARCHIVED", "2024-01-01")
	_, err := PartitionGoals([]model.Goal{goal(model.GoalActive, "2024-01-01"), bad})

	var unknown *UnknownStatusError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownStatusError, got %v", err)
	}
	if unknown.ID != bad.ID || unknown.Status != "ARCHIVED" || unknown.Entity != "goal" {
		t.Errorf("unexpected error detail %+v", unknown)
	}

	if _, err := PartitionCheckpoints([]model.Checkpoint{{ID: uuid.New(), Status: "DONE"}}); !errors.As(err, &unknown) {
		t.Errorf("expected checkpoint error, got %v", err)
	}
	if _, err := PartitionBuddyRequests([]model.BuddyRequest{buddy("")}); !errors.As(err, &unknown) {
		t.Errorf("expected buddy error, got %v", err)
	}
	if _, err := ProgressChart([]model.Goal{bad}); !errors.As(err, &unknown) {
		t.Errorf("chart must surface unknown status, got %v", err)
	}
	if _, err := NewDashboardStats(nil, []model.BuddyRequest{buddy("MAYBE")}); !errors.As(err, &unknown) {
		t.Errorf("stats must surface unknown status, got %v", err)
	}
}

func TestPartitionCheckpoints(t *testing.T) {
	cps := []model.Checkpoint{
		checkpoint(model.CheckpointPending, "2024-02-01"),
		checkpoint(model.CheckpointInProgress, "2024-02-02"),
		checkpoint(model.CheckpointCompleted, "2024-02-03"),
		checkpoint(model.CheckpointOverdue, "2024-02-04"),
		checkpoint(model.CheckpointCompleted, "2024-02-05"),
	}
	p, err := PartitionCheckpoints(cps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Pending)+len(p.InProgress)+len(p.Completed)+len(p.Overdue) != len(cps) {
		t.Error("every checkpoint must land in exactly one list")
	}

	stats, err := NewCheckpointStats(cps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats != (CheckpointStats{Total: 5, Pending: 1, Completed: 2}) {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestBuddyStats(t *testing.T) {
	reqs := []model.BuddyRequest{
		buddy(model.BuddyPending),
		buddy(model.BuddyAccepted),
		buddy(model.BuddyAccepted),
		buddy(model.BuddyRejected),
	}
	stats, err := NewBuddyStats(reqs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalBuddies != stats.Accepted || stats.Accepted != 2 {
		t.Errorf("TotalBuddies must equal accepted count: %+v", stats)
	}
	if stats.Pending != 1 || stats.Rejected != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestDashboardStats(t *testing.T) {
	goals := []model.Goal{goal(model.GoalActive, ""), goal(model.GoalCompleted, ""), goal(model.GoalPaused, "")}
	reqs := []model.BuddyRequest{buddy(model.BuddyPending), buddy(model.BuddyPending), buddy(model.BuddyRejected)}

	stats, err := NewDashboardStats(goals, reqs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := DashboardStats{TotalGoals: 3, Active: 1, Completed: 1, PendingBuddyRequests: 2}
	if stats != want {
		t.Errorf("expected %+v, got %+v", want, stats)
	}
}

func TestRecentActivity(t *testing.T) {
	t.Run("sorted and capped", func(t *testing.T) {
		var goals []model.Goal
		var cps []model.Checkpoint
		for i := 1; i <= 7; i++ {
			goals = append(goals, goal(model.GoalActive, fmt.Sprintf("2024-03-%02d", i)))
			cps = append(cps, checkpoint(model.CheckpointPending, fmt.Sprintf("2024-04-%02d", i)))
		}

		feed := RecentActivity(goals, cps)
		if len(feed) != MaxRecentActivity {
			t.Fatalf("expected %d items, got %d", MaxRecentActivity, len(feed))
		}
		for i := 1; i < len(feed); i++ {
			if feed[i].Date.After(feed[i-1].Date) {
				t.Errorf("feed not descending at %d: %s after %s", i, feed[i].Date, feed[i-1].Date)
			}
		}
		if feed[0].Kind != ActivityCheckpoint || feed[0].Date.String() != "2024-04-07" {
			t.Errorf("unexpected head %+v", feed[0])
		}
	})

	t.Run("ties keep goals first and input order", func(t *testing.T) {
		g1 := goal(model.GoalActive, "2024-05-01")
		g2 := goal(model.GoalPaused, "2024-05-01")
		c1 := checkpoint(model.CheckpointPending, "2024-05-01")

		feed := RecentActivity([]model.Goal{g1, g2}, []model.Checkpoint{c1})
		want := []string{"goal-" + g1.ID.String(), "goal-" + g2.ID.String(), "checkpoint-" + c1.ID.String()}
		for i, id := range want {
			if feed[i].ID != id {
				t.Errorf("position %d: expected %s, got %s", i, id, feed[i].ID)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		if feed := RecentActivity(nil, nil); len(feed) != 0 {
			t.Errorf("expected empty feed, got %v", feed)
		}
	})
}

func TestProgressChart(t *testing.T) {
	slices, err := ProgressChart([]model.Goal{
		goal(model.GoalActive, ""),
		goal(model.GoalCompleted, ""),
		goal(model.GoalCompleted, ""),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slices) != 2 {
		t.Fatalf("expected zero counts to be excluded, got %+v", slices)
	}

	tests := []struct {
		status model.GoalStatus
		count  int
		color  string
		share  string
	}{
		{model.GoalActive, 1, "#3B82F6", "33.33"},
		{model.GoalCompleted, 2, "#10B981", "66.67"},
	}
	for i, tt := range tests {
		s := slices[i]
		if s.Status != tt.status || s.Count != tt.count || s.Color != tt.color {
			t.Errorf("slice %d: got %+v", i, s)
		}
		if s.Share.StringFixed(2) != tt.share {
			t.Errorf("slice %d: expected share %s, got %s", i, tt.share, s.Share.StringFixed(2))
		}
	}

	all, err := ProgressChart([]model.Goal{goal(model.GoalCancelled, ""), goal(model.GoalPaused, "")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all[0].Status != model.GoalPaused || all[0].Color != "#F59E0B" || all[1].Color != "#EF4444" {
		t.Errorf("expected canonical order, got %+v", all)
	}

	if empty, err := ProgressChart(nil); err != nil || len(empty) != 0 {
		t.Errorf("expected empty chart, got %+v, %v", empty, err)
	}
}
