package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineStartsIdle(t *testing.T) {
	assert.Equal(t, StateIdle, NewMachine(nil).State())
}

func TestMachineTransitions(t *testing.T) {
	tests := []struct {
		name  string
		path  []State
		valid bool
	}{
		{name: "submit then complete", path: []State{StatePending, StateComplete}, valid: true},
		{name: "submit then error", path: []State{StatePending, StateError}, valid: true},
		{name: "resubmit after complete", path: []State{StatePending, StateComplete, StatePending}, valid: true},
		{name: "resubmit after error", path: []State{StatePending, StateError, StatePending}, valid: true},
		{name: "complete without submit", path: []State{StateComplete}, valid: false},
		{name: "double submit", path: []State{StatePending, StatePending}, valid: false},
		{name: "back to idle", path: []State{StatePending, StateComplete, StateIdle}, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(nil)

			var err error
			for _, next := range tt.path {
				if err = m.Transition(next); err != nil {
					break
				}
			}

			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, tt.path[len(tt.path)-1], m.State())
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMachineRejectedTransitionKeepsState(t *testing.T) {
	m := NewMachine(nil)
	require.NoError(t, m.Transition(StatePending))

	require.Error(t, m.Transition(StatePending))
	assert.Equal(t, StatePending, m.State())
}

func TestMachineNotifiesOnChange(t *testing.T) {
	var seen [][2]State
	m := NewMachine(func(from, to State) {
		seen = append(seen, [2]State{from, to})
	})

	require.NoError(t, m.Transition(StatePending))
	require.NoError(t, m.Transition(StateError))
	require.Error(t, m.Transition(StateComplete))

	assert.Equal(t, [][2]State{
		{StateIdle, StatePending},
		{StatePending, StateError},
	}, seen)
}
