package matchmaking

import "sync"

// HandoffStore is a per-user single-slot mailbox for finalized pairing
// results. Deposit overwrites any undelivered descriptor (a user cannot
// be in two simultaneous pairings), and Poll is a destructive read:
// a second poll for the same pairing finds nothing.
type HandoffStore struct {
	mu     sync.Mutex
	byUser map[string]*SessionDescriptor
}

func NewHandoffStore() *HandoffStore {
	return &HandoffStore{byUser: make(map[string]*SessionDescriptor)}
}

// Deposit stores the descriptor for the user, discarding any stale one.
func (s *HandoffStore) Deposit(userID string, desc *SessionDescriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = desc
}

// Poll removes and returns the user's pending descriptor, if any.
func (s *HandoffStore) Poll(userID string) (*SessionDescriptor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	desc, ok := s.byUser[userID]
	if !ok {
		return nil, false
	}
	delete(s.byUser, userID)
	return desc, true
}
