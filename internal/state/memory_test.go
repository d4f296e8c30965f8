package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryManagerDefaults(t *testing.T) {
	m := NewMemoryManager()

	assert.Equal(t, StateIdle, m.GetState(1))
	assert.False(t, m.InProgress(1))
	assert.Equal(t, 0, m.EditIndex(1))
	assert.Equal(t, Session{State: StateIdle}, m.Get(1))
}

func TestMemoryManagerTransitions(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(1, StateAwaitingContent)
	assert.Equal(t, StateAwaitingContent, m.GetState(1))
	assert.True(t, m.InProgress(1))

	m.SetState(1, StateAwaitingButtons)
	assert.Equal(t, StateAwaitingButtons, m.GetState(1))

	m.ClearState(1)
	assert.Equal(t, StateIdle, m.GetState(1))
	assert.False(t, m.InProgress(1))
}

func TestMemoryManagerEditIndexScratch(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(1, StateAwaitingButtonEditIndex)
	m.SetEditIndex(1, 2)
	m.SetState(1, StateAwaitingButtonEditLine)

	// clearing the state keeps scratch, clearing the session drops it
	assert.Equal(t, 2, m.EditIndex(1))
	m.ClearState(1)
	assert.Equal(t, 2, m.EditIndex(1))
	m.Clear(1)
	assert.Equal(t, 0, m.EditIndex(1))
}

func TestMemoryManagerSessionsAreIndependent(t *testing.T) {
	m := NewMemoryManager()

	m.SetState(1, StateConfirmAction)
	assert.Equal(t, StateIdle, m.GetState(2))
	assert.True(t, m.InProgress(1))
	assert.False(t, m.InProgress(2))
}
