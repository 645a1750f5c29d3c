package mutation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/client/api"
	"github.com/productivity-app/backend/internal/client/model"
	"github.com/productivity-app/backend/internal/client/query"
	"github.com/productivity-app/backend/internal/client/session"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

type fixedConfirmer struct {
	answer  bool
	prompts []string
}

func (c *fixedConfirmer) Confirm(prompt string) bool {
	c.prompts = append(c.prompts, prompt)
	return c.answer
}

type recordingCache struct {
	patterns []query.Pattern
}

func (c *recordingCache) Invalidate(p query.Pattern) {
	c.patterns = append(c.patterns, p)
}

type fakeGoals struct {
	calls   []string
	err     error
	block   chan struct{}
	started chan struct{}
}

func (f *fakeGoals) Create(ctx context.Context, userID uuid.UUID, request api.GoalCreate) (*model.Goal, error) {
	f.calls = append(f.calls, "create")
	return &model.Goal{}, f.err
}

func (f *fakeGoals) Update(ctx context.Context, id uuid.UUID, update api.GoalUpdate) (*model.Goal, error) {
	f.calls = append(f.calls, "update:"+string(*update.Status))
	return &model.Goal{}, f.err
}

func (f *fakeGoals) Delete(ctx context.Context, id uuid.UUID) error {
	f.calls = append(f.calls, "delete")
	return f.err
}

func (f *fakeGoals) Complete(ctx context.Context, id uuid.UUID) (*model.Goal, error) {
	f.calls = append(f.calls, "complete")
	if f.block != nil {
		close(f.started)
		<-f.block
	}
	return &model.Goal{}, f.err
}

type fakeCheckpoints struct {
	calls []string
}

func (f *fakeCheckpoints) Create(ctx context.Context, request api.CheckpointCreate) (*model.Checkpoint, error) {
	f.calls = append(f.calls, "create")
	return &model.Checkpoint{}, nil
}

func (f *fakeCheckpoints) Update(ctx context.Context, id uuid.UUID, update api.CheckpointUpdate) (*model.Checkpoint, error) {
	f.calls = append(f.calls, "update:"+string(*update.Status))
	return &model.Checkpoint{}, nil
}

func (f *fakeCheckpoints) Delete(ctx context.Context, id uuid.UUID) error {
	f.calls = append(f.calls, "delete")
	return nil
}

type fakeBuddies struct {
	statuses []model.BuddyRequestStatus
	err      error
}

func (f *fakeBuddies) Create(ctx context.Context, receiverID uuid.UUID) (*model.BuddyRequest, error) {
	return &model.BuddyRequest{}, f.err
}

func (f *fakeBuddies) Update(ctx context.Context, id uuid.UUID, status model.BuddyRequestStatus) (*model.BuddyRequest, error) {
	f.statuses = append(f.statuses, status)
	return &model.BuddyRequest{}, f.err
}

func TestCompleteGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates goals and notifies", func(t *testing.T) {
		goals := &fakeGoals{}
		cache := &recordingCache{}
		notifier := &recordingNotifier{}
		o := New(Services{Goals: goals}, cache, notifier, nil)

		m, err := o.CompleteGoal(ctx, uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.State() != Succeeded {
			t.Errorf("expected succeeded, got %s", m.State())
		}
		if len(cache.patterns) != 1 || cache.patterns[0] != query.Goals {
			t.Errorf("expected goals invalidation, got %v", cache.patterns)
		}
		if !reflect.DeepEqual(notifier.successes, []string{"Goal completed successfully"}) {
			t.Errorf("unexpected notifications %v", notifier.successes)
		}
	})

	t.Run("failure notifies only", func(t *testing.T) {
		goals := &fakeGoals{err: &api.Error{Kind: api.KindServer, Status: 500, Message: "database down"}}
		cache := &recordingCache{}
		notifier := &recordingNotifier{}
		o := New(Services{Goals: goals}, cache, notifier, nil)

		m, err := o.CompleteGoal(ctx, uuid.New())
		if err == nil || m.State() != Failed || m.Err() == nil {
			t.Fatalf("expected failed mutation, got %v / %v", m.State(), err)
		}
		if len(cache.patterns) != 0 {
			t.Errorf("failure must not invalidate, got %v", cache.patterns)
		}
		if !reflect.DeepEqual(notifier.errors, []string{"Failed to complete goal"}) {
			t.Errorf("unexpected error notifications %v", notifier.errors)
		}
	})
}

func TestChangeGoalStatus(t *testing.T) {
	ctx := context.Background()
	goals := &fakeGoals{}
	notifier := &recordingNotifier{}
	o := New(Services{Goals: goals}, &recordingCache{}, notifier, nil)

	if _, err := o.ChangeGoalStatus(ctx, uuid.New(), model.GoalPaused); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := o.ChangeGoalStatus(ctx, uuid.New(), model.GoalCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(goals.calls, []string{"update:PAUSED", "complete"}) {
		t.Errorf("unexpected calls %v", goals.calls)
	}
	want := []string{"Goal updated successfully", "Goal completed successfully"}
	if !reflect.DeepEqual(notifier.successes, want) {
		t.Errorf("expected %v, got %v", want, notifier.successes)
	}
}

func TestDeleteGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("declined confirmation", func(t *testing.T) {
		goals := &fakeGoals{}
		notifier := &recordingNotifier{}
		confirmer := &fixedConfirmer{answer: false}
		o := New(Services{Goals: goals}, &recordingCache{}, notifier, confirmer)

		m, err := o.DeleteGoal(ctx, uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.State() != Cancelled {
			t.Errorf("expected cancelled, got %s", m.State())
		}
		if len(goals.calls) != 0 || len(notifier.successes)+len(notifier.errors) != 0 {
			t.Errorf("declined delete must not call or notify: %v %v %v", goals.calls, notifier.successes, notifier.errors)
		}
		if !reflect.DeepEqual(confirmer.prompts, []string{"Are you sure you want to delete this goal?"}) {
			t.Errorf("unexpected prompts %v", confirmer.prompts)
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		goals := &fakeGoals{}
		notifier := &recordingNotifier{}
		o := New(Services{Goals: goals}, &recordingCache{}, notifier, &fixedConfirmer{answer: true})

		m, err := o.DeleteGoal(ctx, uuid.New())
		if err != nil || m.State() != Succeeded {
			t.Fatalf("expected success, got %v / %v", m.State(), err)
		}
		if !reflect.DeepEqual(notifier.successes, []string{"Goal deleted successfully"}) {
			t.Errorf("unexpected notifications %v", notifier.successes)
		}
	})

	t.Run("validation message is shown verbatim", func(t *testing.T) {
		goals := &fakeGoals{err: &api.Error{Kind: api.KindValidation, Status: 404, Message: "Goal not found"}}
		notifier := &recordingNotifier{}
		o := New(Services{Goals: goals}, &recordingCache{}, notifier, &fixedConfirmer{answer: true})

		if _, err := o.DeleteGoal(ctx, uuid.New()); err == nil {
			t.Fatal("expected error")
		}
		if !reflect.DeepEqual(notifier.errors, []string{"Goal not found"}) {
			t.Errorf("unexpected error notifications %v", notifier.errors)
		}
	})
}

func TestRespondToBuddyRequest(t *testing.T) {
	ctx := context.Background()
	buddies := &fakeBuddies{}
	cache := &recordingCache{}
	notifier := &recordingNotifier{}
	o := New(Services{Buddies: buddies}, cache, notifier, nil)

	if _, err := o.RespondToBuddyRequest(ctx, uuid.New(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := o.RespondToBuddyRequest(ctx, uuid.New(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(buddies.statuses, []model.BuddyRequestStatus{model.BuddyAccepted, model.BuddyRejected}) {
		t.Errorf("unexpected statuses %v", buddies.statuses)
	}
	if !reflect.DeepEqual(notifier.successes, []string{"Buddy request accepted", "Buddy request rejected"}) {
		t.Errorf("unexpected notifications %v", notifier.successes)
	}
	for _, p := range cache.patterns {
		if p != query.BuddyRequests {
			t.Errorf("unexpected invalidation %v", p)
		}
	}

	buddies.err = &api.Error{Kind: api.KindTransport, Err: errors.New("connection refused")}
	if _, err := o.RespondToBuddyRequest(ctx, uuid.New(), true); err == nil {
		t.Fatal("expected error")
	}
	if !reflect.DeepEqual(notifier.errors, []string{"Failed to update buddy request"}) {
		t.Errorf("unexpected error notifications %v", notifier.errors)
	}
}

func TestCheckpointMutationsInvalidateGoals(t *testing.T) {
	ctx := context.Background()
	checkpoints := &fakeCheckpoints{}
	cache := &recordingCache{}
	o := New(Services{Checkpoints: checkpoints}, cache, nil, nil)

	if _, err := o.CompleteCheckpoint(ctx, uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := o.DeleteCheckpoint(ctx, uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(checkpoints.calls, []string{"update:COMPLETED", "delete"}) {
		t.Errorf("unexpected calls %v", checkpoints.calls)
	}
	want := []query.Pattern{query.Checkpoints, query.Goals, query.Checkpoints, query.Goals}
	if !reflect.DeepEqual(cache.patterns, want) {
		t.Errorf("expected %v, got %v", want, cache.patterns)
	}
}

func TestMutationInFlight(t *testing.T) {
	ctx := context.Background()
	goals := &fakeGoals{block: make(chan struct{}), started: make(chan struct{})}
	o := New(Services{Goals: goals}, &recordingCache{}, nil, nil)
	id := uuid.New()

	done := make(chan error, 1)
	go func() {
		_, err := o.CompleteGoal(ctx, id)
		done <- err
	}()
	<-goals.started

	if _, err := o.ChangeGoalStatus(ctx, id, model.GoalPaused); !errors.Is(err, ErrMutationInFlight) {
		t.Errorf("expected ErrMutationInFlight, got %v", err)
	}

	close(goals.block)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := o.ChangeGoalStatus(ctx, id, model.GoalPaused); err != nil {
		t.Errorf("expected lock to be released, got %v", err)
	}
}

func TestMutation_IllegalTransitionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	m := newMutation("test")
	m.transition(Succeeded, nil)
}

// goalServer keeps goals in memory behind the real HTTP routes.
type goalServer struct {
	mu      sync.Mutex
	goals   []model.Goal
	failing bool
}

func (s *goalServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	if s.failing && r.Method != http.MethodGet {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Internal server error"})
		return
	}
	if r.Method == http.MethodGet {
		_ = json.NewEncoder(w).Encode(s.goals)
		return
	}
	for i := range s.goals {
		if "/goals/"+s.goals[i].ID.String()+"/complete" == r.URL.Path {
			s.goals[i].Status = model.GoalCompleted
			s.goals[i].Progress = 100
			_ = json.NewEncoder(w).Encode(s.goals[i])
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Goal not found"})
}

func TestCompleteGoal_CacheShowsServerTruth(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	goalID := uuid.New()
	backend := &goalServer{goals: []model.Goal{{ID: goalID, UserID: userID, Title: "Ship", Status: model.GoalActive, Progress: 50}}}
	server := httptest.NewServer(backend)
	defer server.Close()

	sess, _ := session.New(session.NewMemoryStore(session.State{Token: "tok", UserID: userID.String()}))
	client, err := api.NewClient(api.Config{BaseURL: server.URL}, sess)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	cache := query.New()
	goals := query.NewTyped[[]model.Goal](cache)
	key := query.Key{Family: query.Goals, Scope: userID.String()}
	fetch := func(ctx context.Context) ([]model.Goal, error) {
		return client.Goals().ListByUser(ctx, userID)
	}

	before, err := goals.Fetch(ctx, key, fetch)
	if err != nil || before.Data[0].Status != model.GoalActive {
		t.Fatalf("unexpected initial state %+v, %v", before, err)
	}

	notifier := &recordingNotifier{}
	o := New(ServicesFor(client), cache, notifier, nil)

	t.Run("failed mutation leaves cache untouched", func(t *testing.T) {
		backend.mu.Lock()
		backend.failing = true
		backend.mu.Unlock()
		defer func() {
			backend.mu.Lock()
			backend.failing = false
			backend.mu.Unlock()
		}()

		snapshotBefore, _ := json.Marshal(cache.Get(key).Data)
		if _, err := o.CompleteGoal(ctx, goalID); err == nil {
			t.Fatal("expected failure")
		}
		snapshotAfter, _ := json.Marshal(cache.Get(key).Data)
		if string(snapshotBefore) != string(snapshotAfter) {
			t.Errorf("cache changed after failure:\n%s\n%s", snapshotBefore, snapshotAfter)
		}
		if cache.Get(key).Stale {
			t.Error("failure must not mark the cache stale")
		}
	})

	if _, err := o.CompleteGoal(ctx, goalID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, err := goals.Fetch(ctx, key, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.Data[0].Status != model.GoalCompleted || after.Data[0].Progress != 100 {
		t.Errorf("expected completed goal in cache, got %+v", after.Data[0])
	}
}
