// Package session holds the bearer token shared by every API request.
package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// State is the persisted part of a session.
type State struct {
	Token  string `yaml:"authToken"`
	UserID string `yaml:"userId,omitempty"`
}

// Store persists session state between runs.
type Store interface {
	Load() (State, error)
	Save(state State) error
	Clear() error
}

// Session guards the current token. Every token change bumps the generation,
// so a request can tell whether the token it was sent with is still current.
type Session struct {
	mu         sync.Mutex
	store      Store
	state      State
	generation uint64
	observers  map[int]func()
	nextID     int
}

// New restores the session from store.
func New(store Store) (*Session, error) {
	state, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Session{
		store:     store,
		state:     state,
		observers: make(map[int]func()),
	}, nil
}

// Snapshot returns the token and the generation it belongs to.
func (s *Session) Snapshot() (string, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token, s.generation
}

// Token returns the current token, or "" when signed out.
func (s *Session) Token() string {
	token, _ := s.Snapshot()
	return token
}

// UserID returns the signed-in user, if any.
func (s *Session) UserID() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Token == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s.state.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SignIn stores a new token for userID.
func (s *Session) SignIn(token string, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Token: token, UserID: userID.String()}
	s.generation++
	return s.store.Save(s.state)
}

// SignOut drops the token without notifying observers.
func (s *Session) SignOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	s.generation++
	return s.store.Clear()
}

// Invalidate clears the token if it still belongs to generation and then
// notifies observers. It reports whether the token was cleared; concurrent
// calls for the same generation clear it once.
func (s *Session) Invalidate(generation uint64) bool {
	s.mu.Lock()
	if generation != s.generation || s.state.Token == "" {
		s.mu.Unlock()
		return false
	}
	s.state = State{}
	s.generation++
	if err := s.store.Clear(); err != nil {
		slog.Warn("Failed to clear stored session", "error", err)
	}
	observers := make([]func(), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
	return true
}

// OnInvalidate registers fn to run after each invalidation and returns a
// function that removes it.
func (s *Session) OnInvalidate(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}
