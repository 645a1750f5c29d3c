// Package usecasetest provides in-memory adapters for use case tests.
package usecasetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/domain/entity"
	domainerror "github.com/productivity-app/backend/internal/domain/error"
)

// Store holds every entity in memory and implements the repository adapters.
type Store struct {
	mu          sync.Mutex
	users       map[uuid.UUID]entity.User
	goals       map[uuid.UUID]entity.Goal
	checkpoints map[uuid.UUID]entity.Checkpoint
	requests    map[uuid.UUID]entity.BuddyRequest
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:       map[uuid.UUID]entity.User{},
		goals:       map[uuid.UUID]entity.Goal{},
		checkpoints: map[uuid.UUID]entity.Checkpoint{},
		requests:    map[uuid.UUID]entity.BuddyRequest{},
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() adapter.UserRepository { return userRepo{s} }

// Goals returns the goal repository view of the store.
func (s *Store) Goals() adapter.GoalRepository { return goalRepo{s} }

// Checkpoints returns the checkpoint repository view of the store.
func (s *Store) Checkpoints() adapter.CheckpointRepository { return checkpointRepo{s} }

// BuddyRequests returns the buddy request repository view of the store.
func (s *Store) BuddyRequests() adapter.BuddyRequestRepository { return buddyRepo{s} }

// AddUser stores a user with the given name and returns it.
func (s *Store) AddUser(username string) *entity.User {
	u := entity.NewUser(username, username+"@example.com", "hash")
	_ = s.Users().Create(context.Background(), u)
	return u
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return &u, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domainerror.ErrUserNotFound
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	for gid, g := range r.s.goals {
		if g.UserID == id {
			r.s.deleteGoalLocked(gid)
		}
	}
	for rid, req := range r.s.requests {
		if req.Involves(id) {
			delete(r.s.requests, rid)
		}
	}
	return nil
}

func (r userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r userRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type goalRepo struct{ s *Store }

func (r goalRepo) Create(_ context.Context, g *entity.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.goals[g.ID] = *g
	return nil
}

func (r goalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.goals[id]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}
	return &g, nil
}

func (r goalRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	goals := make([]*entity.Goal, 0)
	for _, g := range r.s.goals {
		if g.UserID == userID {
			g := g
			goals = append(goals, &g)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].CreatedAt.Before(goals[j].CreatedAt) })
	return goals, nil
}

func (r goalRepo) Update(_ context.Context, g *entity.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.goals[g.ID]; !ok {
		return domainerror.ErrGoalNotFound
	}
	r.s.goals[g.ID] = *g
	return nil
}

func (r goalRepo) UpdateProgress(_ context.Context, id uuid.UUID, progress int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.goals[id]
	if !ok || g.Status == entity.GoalStatusCompleted {
		return nil
	}
	g.Progress = progress
	g.UpdatedAt = time.Now().UTC()
	r.s.goals[id] = g
	return nil
}

func (r goalRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.deleteGoalLocked(id)
	return nil
}

func (s *Store) deleteGoalLocked(id uuid.UUID) {
	delete(s.goals, id)
	for cid, cp := range s.checkpoints {
		if cp.GoalID == id {
			delete(s.checkpoints, cid)
		}
	}
}

type checkpointRepo struct{ s *Store }

func (r checkpointRepo) Create(_ context.Context, cp *entity.Checkpoint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.checkpoints[cp.ID] = *cp
	return nil
}

func (r checkpointRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Checkpoint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp, ok := r.s.checkpoints[id]
	if !ok {
		return nil, domainerror.ErrCheckpointNotFound
	}
	return &cp, nil
}

func (r checkpointRepo) FindByGoalID(_ context.Context, goalID uuid.UUID) ([]*entity.Checkpoint, error) {
	return r.filter(func(cp entity.Checkpoint) bool { return cp.GoalID == goalID }), nil
}

func (r checkpointRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Checkpoint, error) {
	r.s.mu.Lock()
	owned := map[uuid.UUID]bool{}
	for id, g := range r.s.goals {
		owned[id] = g.UserID == userID
	}
	r.s.mu.Unlock()
	return r.filter(func(cp entity.Checkpoint) bool { return owned[cp.GoalID] }), nil
}

func (r checkpointRepo) filter(keep func(entity.Checkpoint) bool) []*entity.Checkpoint {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Checkpoint, 0)
	for _, cp := range r.s.checkpoints {
		if keep(cp) {
			cp := cp
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out
}

func (r checkpointRepo) Update(_ context.Context, cp *entity.Checkpoint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.checkpoints[cp.ID]; !ok {
		return domainerror.ErrCheckpointNotFound
	}
	r.s.checkpoints[cp.ID] = *cp
	return nil
}

func (r checkpointRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.checkpoints, id)
	return nil
}

func (r checkpointRepo) CountByGoalID(_ context.Context, goalID uuid.UUID) (int, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total, completed := 0, 0
	for _, cp := range r.s.checkpoints {
		if cp.GoalID != goalID {
			continue
		}
		total++
		if cp.IsCompleted() {
			completed++
		}
	}
	return total, completed, nil
}

type buddyRepo struct{ s *Store }

func (r buddyRepo) Create(_ context.Context, req *entity.BuddyRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.requests[req.ID] = *req
	return nil
}

func (r buddyRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.BuddyRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, domainerror.ErrBuddyRequestNotFound
	}
	return &req, nil
}

func (r buddyRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.BuddyRequest, error) {
	return r.filter(func(req entity.BuddyRequest) bool { return req.Involves(userID) }), nil
}

func (r buddyRepo) FindByReceiverAndStatus(_ context.Context, receiverID uuid.UUID, status entity.BuddyRequestStatus) ([]*entity.BuddyRequest, error) {
	return r.filter(func(req entity.BuddyRequest) bool {
		return req.ReceiverID == receiverID && req.Status == status
	}), nil
}

func (r buddyRepo) FindByRequesterAndStatus(_ context.Context, requesterID uuid.UUID, status entity.BuddyRequestStatus) ([]*entity.BuddyRequest, error) {
	return r.filter(func(req entity.BuddyRequest) bool {
		return req.RequesterID == requesterID && req.Status == status
	}), nil
}

func (r buddyRepo) ExistsBetween(_ context.Context, requesterID, receiverID uuid.UUID) (bool, error) {
	found := r.filter(func(req entity.BuddyRequest) bool {
		return req.Involves(requesterID) && req.Involves(receiverID)
	})
	return len(found) > 0, nil
}

func (r buddyRepo) UpdateStatusIfPending(_ context.Context, req *entity.BuddyRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.requests[req.ID]
	if !ok || !stored.IsPending() {
		return domainerror.ErrRequestNotPending
	}
	stored.Status = req.Status
	stored.UpdatedAt = req.UpdatedAt
	r.s.requests[req.ID] = stored
	return nil
}

func (r buddyRepo) filter(keep func(entity.BuddyRequest) bool) []*entity.BuddyRequest {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.BuddyRequest, 0)
	for _, req := range r.s.requests {
		if keep(req) {
			req := req
			out = append(out, &req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Notifier records buddy notifications.
type Notifier struct {
	mu       sync.Mutex
	Requests []adapter.BuddyRequestNotification
	Accepted []adapter.BuddyAcceptedNotification
	Err      error
}

// NotifyBuddyRequest implements adapter.BuddyNotifier.
func (n *Notifier) NotifyBuddyRequest(_ context.Context, input adapter.BuddyRequestNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Requests = append(n.Requests, input)
	return n.Err
}

// NotifyBuddyAccepted implements adapter.BuddyNotifier.
func (n *Notifier) NotifyBuddyAccepted(_ context.Context, input adapter.BuddyAcceptedNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Accepted = append(n.Accepted, input)
	return n.Err
}

// TokenService issues opaque tokens and records revocations.
type TokenService struct {
	mu      sync.Mutex
	Revoked []string
}

// GenerateAccessToken implements adapter.TokenService.
func (t *TokenService) GenerateAccessToken(_ context.Context, userID uuid.UUID, _ string) (*adapter.AccessToken, error) {
	return &adapter.AccessToken{Token: "token-" + userID.String(), ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// ValidateAccessToken implements adapter.TokenService.
func (t *TokenService) ValidateAccessToken(_ context.Context, _ string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

// RevokeAccessToken implements adapter.TokenService.
func (t *TokenService) RevokeAccessToken(_ context.Context, claims *adapter.TokenClaims) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Revoked = append(t.Revoked, claims.TokenID)
	return nil
}

// PasswordService compares passwords in clear text.
type PasswordService struct{}

// HashPassword implements adapter.PasswordService.
func (PasswordService) HashPassword(password string) (string, error) { return "hashed:" + password, nil }

// VerifyPassword implements adapter.PasswordService.
func (PasswordService) VerifyPassword(hashed, password string) error {
	if hashed != "hashed:"+password {
		return domainerror.ErrInvalidCredentials
	}
	return nil
}

// ValidatePasswordStrength implements adapter.PasswordService.
func (PasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}
