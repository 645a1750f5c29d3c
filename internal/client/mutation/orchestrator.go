package mutation

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/client/api"
	"github.com/productivity-app/backend/internal/client/model"
	"github.com/productivity-app/backend/internal/client/query"
)

// DeleteGoalPrompt is shown before a goal is deleted.
const DeleteGoalPrompt = "Are you sure you want to delete this goal?"

// Notifier shows the outcome of a mutation to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Invalidator marks cached entries stale.
type Invalidator interface {
	Invalidate(pattern query.Pattern)
}

// GoalAPI is the subset of the goal endpoints mutations use.
type GoalAPI interface {
	Create(ctx context.Context, userID uuid.UUID, request api.GoalCreate) (*model.Goal, error)
	Update(ctx context.Context, id uuid.UUID, update api.GoalUpdate) (*model.Goal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Complete(ctx context.Context, id uuid.UUID) (*model.Goal, error)
}

// CheckpointAPI is the subset of the checkpoint endpoints mutations use.
type CheckpointAPI interface {
	Create(ctx context.Context, request api.CheckpointCreate) (*model.Checkpoint, error)
	Update(ctx context.Context, id uuid.UUID, update api.CheckpointUpdate) (*model.Checkpoint, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BuddyAPI is the subset of the buddy endpoints mutations use.
type BuddyAPI interface {
	Create(ctx context.Context, receiverID uuid.UUID) (*model.BuddyRequest, error)
	Update(ctx context.Context, id uuid.UUID, status model.BuddyRequestStatus) (*model.BuddyRequest, error)
}

// Services bundles the endpoints an Orchestrator calls.
type Services struct {
	Goals       GoalAPI
	Checkpoints CheckpointAPI
	Buddies     BuddyAPI
}

// ServicesFor returns the endpoints of client.
func ServicesFor(client *api.Client) Services {
	return Services{
		Goals:       client.Goals(),
		Checkpoints: client.Checkpoints(),
		Buddies:     client.Buddies(),
	}
}

// Orchestrator runs mutations. At most one mutation per entity runs at a time.
type Orchestrator struct {
	services  Services
	cache     Invalidator
	notifier  Notifier
	confirmer Confirmer

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates an orchestrator. A nil notifier discards messages; a nil
// confirmer declines every confirmation.
func New(services Services, cache Invalidator, notifier Notifier, confirmer Confirmer) *Orchestrator {
	if notifier == nil {
		notifier = discard{}
	}
	return &Orchestrator{
		services:  services,
		cache:     cache,
		notifier:  notifier,
		confirmer: confirmer,
		inFlight:  make(map[string]struct{}),
	}
}

type texts struct {
	success string
	failure string
}

var (
	completeGoalTexts       = texts{"Goal completed successfully", "Failed to complete goal"}
	updateGoalTexts         = texts{"Goal updated successfully", "Failed to update goal"}
	deleteGoalTexts         = texts{"Goal deleted successfully", "Failed to delete goal"}
	createGoalTexts         = texts{"Goal created successfully", "Failed to create goal"}
	acceptBuddyTexts        = texts{"Buddy request accepted", "Failed to update buddy request"}
	rejectBuddyTexts        = texts{"Buddy request rejected", "Failed to update buddy request"}
	sendBuddyTexts          = texts{"Buddy request sent", "Failed to send buddy request"}
	createCheckpointTexts   = texts{"Checkpoint created successfully", "Failed to create checkpoint"}
	completeCheckpointTexts = texts{"Checkpoint completed", "Failed to update checkpoint"}
	deleteCheckpointTexts   = texts{"Checkpoint deleted successfully", "Failed to delete checkpoint"}
)

// CompleteGoal marks the goal COMPLETED.
func (o *Orchestrator) CompleteGoal(ctx context.Context, id uuid.UUID) (*Mutation, error) {
	return o.run(ctx, "complete-goal", goalLock(id), completeGoalTexts, []query.Pattern{query.Goals}, func(ctx context.Context) error {
		_, err := o.services.Goals.Complete(ctx, id)
		return err
	})
}

// ChangeGoalStatus moves the goal to status. COMPLETED goes through the
// complete endpoint so the server also sets progress to 100.
func (o *Orchestrator) ChangeGoalStatus(ctx context.Context, id uuid.UUID, status model.GoalStatus) (*Mutation, error) {
	if status == model.GoalCompleted {
		return o.CompleteGoal(ctx, id)
	}
	return o.run(ctx, "update-goal", goalLock(id), updateGoalTexts, []query.Pattern{query.Goals}, func(ctx context.Context) error {
		_, err := o.services.Goals.Update(ctx, id, api.GoalUpdate{Status: &status})
		return err
	})
}

// DeleteGoal removes the goal after the user confirms. A declined prompt
// returns a Cancelled mutation without calling the API or notifying.
func (o *Orchestrator) DeleteGoal(ctx context.Context, id uuid.UUID) (*Mutation, error) {
	if o.confirmer == nil || !o.confirmer.Confirm(DeleteGoalPrompt) {
		m := newMutation("delete-goal")
		m.transition(Cancelled, nil)
		return m, nil
	}
	return o.run(ctx, "delete-goal", goalLock(id), deleteGoalTexts, []query.Pattern{query.Goals}, func(ctx context.Context) error {
		return o.services.Goals.Delete(ctx, id)
	})
}

// CreateGoal adds a goal for userID.
func (o *Orchestrator) CreateGoal(ctx context.Context, userID uuid.UUID, request api.GoalCreate) (*Mutation, error) {
	return o.run(ctx, "create-goal", "", createGoalTexts, []query.Pattern{query.Goals}, func(ctx context.Context) error {
		_, err := o.services.Goals.Create(ctx, userID, request)
		return err
	})
}

// RespondToBuddyRequest accepts or rejects a pending request.
func (o *Orchestrator) RespondToBuddyRequest(ctx context.Context, id uuid.UUID, accept bool) (*Mutation, error) {
	status, t := model.BuddyRejected, rejectBuddyTexts
	if accept {
		status, t = model.BuddyAccepted, acceptBuddyTexts
	}
	return o.run(ctx, "respond-buddy-request", "buddy:"+id.String(), t, []query.Pattern{query.BuddyRequests}, func(ctx context.Context) error {
		_, err := o.services.Buddies.Update(ctx, id, status)
		return err
	})
}

// SendBuddyRequest invites receiverID.
func (o *Orchestrator) SendBuddyRequest(ctx context.Context, receiverID uuid.UUID) (*Mutation, error) {
	return o.run(ctx, "send-buddy-request", "buddy-to:"+receiverID.String(), sendBuddyTexts, []query.Pattern{query.BuddyRequests}, func(ctx context.Context) error {
		_, err := o.services.Buddies.Create(ctx, receiverID)
		return err
	})
}

// CreateCheckpoint adds a checkpoint. Goal progress changes with it.
func (o *Orchestrator) CreateCheckpoint(ctx context.Context, request api.CheckpointCreate) (*Mutation, error) {
	return o.run(ctx, "create-checkpoint", "", createCheckpointTexts, checkpointPatterns, func(ctx context.Context) error {
		_, err := o.services.Checkpoints.Create(ctx, request)
		return err
	})
}

// CompleteCheckpoint marks the checkpoint COMPLETED.
func (o *Orchestrator) CompleteCheckpoint(ctx context.Context, id uuid.UUID) (*Mutation, error) {
	status := model.CheckpointCompleted
	return o.run(ctx, "complete-checkpoint", checkpointLock(id), completeCheckpointTexts, checkpointPatterns, func(ctx context.Context) error {
		_, err := o.services.Checkpoints.Update(ctx, id, api.CheckpointUpdate{Status: &status})
		return err
	})
}

// DeleteCheckpoint removes the checkpoint.
func (o *Orchestrator) DeleteCheckpoint(ctx context.Context, id uuid.UUID) (*Mutation, error) {
	return o.run(ctx, "delete-checkpoint", checkpointLock(id), deleteCheckpointTexts, checkpointPatterns, func(ctx context.Context) error {
		return o.services.Checkpoints.Delete(ctx, id)
	})
}

var checkpointPatterns = []query.Pattern{query.Checkpoints, query.Goals}

func goalLock(id uuid.UUID) string { return "goal:" + id.String() }
func checkpointLock(id uuid.UUID) string { return "checkpoint:" + id.String() }

// run drives one mutation through Idle -> InFlight -> Succeeded|Failed.
// An empty lock skips the per-entity guard.
func (o *Orchestrator) run(ctx context.Context, name, lock string, t texts, invalidate []query.Pattern, call func(context.Context) error) (*Mutation, error) {
	if lock != "" {
		if !o.acquire(lock) {
			return nil, ErrMutationInFlight
		}
		defer o.release(lock)
	}

	m := newMutation(name)
	m.transition(InFlight, nil)

	if err := call(ctx); err != nil {
		m.transition(Failed, err)
		o.notifier.Error(FailureMessage(err, t.failure))
		return m, err
	}

	m.transition(Succeeded, nil)
	if o.cache != nil {
		for _, pattern := range invalidate {
			o.cache.Invalidate(pattern)
		}
	}
	o.notifier.Success(t.success)
	return m, nil
}

func (o *Orchestrator) acquire(lock string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, busy := o.inFlight[lock]; busy {
		return false
	}
	o.inFlight[lock] = struct{}{}
	return true
}

func (o *Orchestrator) release(lock string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, lock)
}

// FailureMessage picks the text shown for err: the server's message for
// validation errors that carry one, fallback otherwise.
func FailureMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind == api.KindValidation && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type discard struct{}

func (discard) Success(string) {}
func (discard) Error(string)   {}
