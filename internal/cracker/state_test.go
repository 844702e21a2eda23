package cracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransitions(t *testing.T) {
	tests := []struct {
		from, to State
		ok       bool
	}{
		{StateIdle, StateRunning, true},
		{StateRunning, StateDraining, true},
		{StateDraining, StateFound, true},
		{StateDraining, StateExhausted, true},
		{StateIdle, StateDraining, false},
		{StateIdle, StateFound, false},
		{StateRunning, StateFound, false},
		{StateRunning, StateExhausted, false},
		{StateDraining, StateRunning, false},
		{StateFound, StateRunning, false},
		{StateExhausted, StateDraining, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, ValidTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, StateFound.Terminal())
	assert.True(t, StateExhausted.Terminal())
	assert.False(t, StateIdle.Terminal())
	assert.False(t, StateRunning.Terminal())
	assert.False(t, StateDraining.Terminal())
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "draining", StateDraining.String())
	assert.Equal(t, "found", StateFound.String())
	assert.Equal(t, "exhausted", StateExhausted.String())
}
