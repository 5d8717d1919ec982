package state

import "sync"

// Store serializes access to a Stack. It is a separate lock from the
// application state store and is never held while that one is locked.
type Store struct {
	mu    sync.Mutex
	stack *Stack
}

// NewStore wraps a fresh stack using matcher m.
func NewStore(m Matcher) *Store {
	return &Store{stack: NewStack(m)}
}

// With runs fn with exclusive access to the stack. fn must not retain
// the stack or block on I/O.
func (s *Store) With(fn func(*Stack)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.stack)
}
