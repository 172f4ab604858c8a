package client

import (
	"fmt"
	"sync"
)

type State string

const (
	StateIdle     State = "idle"
	StatePending  State = "pending"
	StateComplete State = "complete"
	StateError    State = "error"
)

var transitions = map[State][]State{
	StateIdle:     {StatePending},
	StatePending:  {StateComplete, StateError},
	StateComplete: {StatePending},
	StateError:    {StatePending},
}

// Machine tracks the UI state of one submitter. complete and error both accept
// a new submission; pending accepts nothing but its outcome.
type Machine struct {
	mu       sync.Mutex
	current  State
	onChange func(from, to State)
}

func NewMachine(onChange func(from, to State)) *Machine {
	return &Machine{current: StateIdle, onChange: onChange}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Machine) Transition(next State) error {
	m.mu.Lock()
	from := m.current
	if !allowed(from, next) {
		m.mu.Unlock()
		return fmt.Errorf("invalid transition %s -> %s", from, next)
	}
	m.current = next
	m.mu.Unlock()

	if m.onChange != nil {
		m.onChange(from, next)
	}
	return nil
}

func allowed(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
