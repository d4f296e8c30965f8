package state

import "sync"

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryManager constructs an in-memory Manager. The bot serves a single
// operator, so one session is ever populated in practice.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
	}
}

// Get returns a copy of the session for a user, or an idle session if none exists.
func (m *memoryManager) Get(userID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if session, ok := m.sessions[userID]; ok {
		return *session
	}
	return Session{State: StateIdle}
}

func (m *memoryManager) session(userID int64) *Session {
	session, ok := m.sessions[userID]
	if !ok {
		session = &Session{State: StateIdle}
		m.sessions[userID] = session
	}
	return session
}

// SetState sets the conversation state for the given user.
func (m *memoryManager) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(userID).State = st
}

// GetState returns the current state of a user, or StateIdle if none exists.
func (m *memoryManager) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.State
	}
	return StateIdle
}

// ClearState resets the state to idle without removing scratch data.
func (m *memoryManager) ClearState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[userID]; ok {
		sess.State = StateIdle
	}
}

// SetEditIndex stores the index of the button currently being edited.
func (m *memoryManager) SetEditIndex(userID int64, idx int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(userID).EditIndex = idx
}

// EditIndex returns the stored button edit index, zero if none was set.
func (m *memoryManager) EditIndex(userID int64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.EditIndex
	}
	return 0
}

// Clear removes the entire session for a user.
func (m *memoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// InProgress reports whether the user currently has an active state.
func (m *memoryManager) InProgress(userID int64) bool {
	return m.GetState(userID) != StateIdle
}
