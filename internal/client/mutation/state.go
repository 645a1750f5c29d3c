// Package mutation runs user actions against the API and keeps the query
// cache in step with the result.
package mutation

import (
	"errors"
	"fmt"
	"sync"
)

// State is the lifecycle of one mutation.
type State int

const (
	Idle State = iota
	InFlight
	Succeeded
	Failed
	// Cancelled means a required confirmation was declined before any call.
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in-flight"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrMutationInFlight is returned when the entity already has a mutation running.
var ErrMutationInFlight = errors.New("mutation: another change to this item is in progress")

var transitions = map[State][]State{
	Idle:     {InFlight, Cancelled},
	InFlight: {Succeeded, Failed},
}

// Mutation records the progress of one call.
type Mutation struct {
	Name string

	mu    sync.Mutex
	state State
	err   error
}

func newMutation(name string) *Mutation {
	return &Mutation{Name: name}
}

// State returns the current state.
func (m *Mutation) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the failure, if the mutation failed.
func (m *Mutation) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Mutation) transition(to State, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, allowed := range transitions[m.state] {
		if allowed == to {
			m.state = to
			m.err = err
			return
		}
	}
	panic(fmt.Sprintf("mutation %s: illegal transition %s -> %s", m.Name, m.state, to))
}
