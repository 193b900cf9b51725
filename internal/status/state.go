package status

import (
	"fmt"
	"slices"
	"sync"

	"github.com/hrdash/hrdash/internal/bus"
)

// State represents a daemon runtime state.
type State string

const (
	Booting    State = "BOOTING"
	Connecting State = "CONNECTING"
	Ready      State = "READY"
	Degraded   State = "DEGRADED"
	Error      State = "ERROR"
)

// validTransitions defines allowed state transitions.
var validTransitions = map[State][]State{
	Booting:    {Connecting, Error},
	Connecting: {Ready, Degraded, Error},
	Ready:      {Degraded, Error},
	Degraded:   {Ready, Error},
	Error:      {Booting},
}

// Machine tracks and enforces daemon runtime state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	bus     *bus.Bus
}

// NewMachine creates a new state machine starting in Booting state.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{
		current: Booting,
		bus:     b,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition moves to a new state, or returns an error when the move is not
// allowed from the current state.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !slices.Contains(validTransitions[m.current], to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	from := m.current
	m.current = to
	if m.bus != nil {
		m.bus.Publish(bus.NewEvent(bus.KindDaemonStatusChanged, StatusChange{From: from, To: to}))
	}
	return nil
}

// Fail moves to Error from any state. It is a no-op when already failed.
func (m *Machine) Fail() {
	if m.Current() == Error {
		return
	}
	_ = m.Transition(Error)
}

// StatusChange is the payload for status change events.
type StatusChange struct {
	From State
	To   State
}
