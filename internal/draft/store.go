package draft

import "sync"

// Store keeps at most one draft per operator in process memory.
// Drafts do not survive a restart.
type Store struct {
	mu     sync.RWMutex
	drafts map[int64]*Draft
}

// NewStore returns an empty draft store.
func NewStore() *Store {
	return &Store{drafts: make(map[int64]*Draft)}
}

// Get returns the draft for a user, creating an empty one if absent.
func (s *Store) Get(userID int64) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[userID]
	if !ok {
		d = &Draft{Content: Content{Kind: KindNone}}
		s.drafts[userID] = d
	}
	return d
}

// Current returns the draft for a user without creating one.
func (s *Store) Current(userID int64) (*Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[userID]
	return d, ok
}

// Reset discards any existing draft and installs a fresh empty one.
func (s *Store) Reset(userID int64) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := &Draft{Content: Content{Kind: KindNone}}
	s.drafts[userID] = d
	return d
}

// Remove drops the draft for a user entirely.
func (s *Store) Remove(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
}
