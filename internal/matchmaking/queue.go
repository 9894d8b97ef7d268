package matchmaking

import (
	"sync"
	"time"
)

// Queue is the in-memory registry of players waiting for a random
// pairing. Entries keep arrival order; at most one entry per user.
//
// Membership has no TTL: a player who disconnects without leaving stays
// queued until paired or explicitly removed. Queue state is process-local
// and lost on restart.
type Queue struct {
	mu      sync.Mutex
	entries []*WaitingPlayer
	byUser  map[string]*WaitingPlayer
}

func NewQueue() *Queue {
	return &Queue{byUser: make(map[string]*WaitingPlayer)}
}

// Enqueue inserts the player preserving arrival order. If the user is
// already queued, nothing changes and Enqueue reports false.
func (q *Queue) Enqueue(p WaitingPlayer) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.byUser[p.UserID]; ok {
		return false
	}

	if p.EnqueuedAt.IsZero() {
		p.EnqueuedAt = time.Now()
	}

	entry := &p
	q.entries = append(q.entries, entry)
	q.byUser[p.UserID] = entry
	return true
}

// TakeEarliestTwo atomically removes and returns the two longest-waiting
// entries. It reports false if fewer than two players are queued.
func (q *Queue) TakeEarliestTwo() (first, second WaitingPlayer, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) < 2 {
		return WaitingPlayer{}, WaitingPlayer{}, false
	}

	a, b := q.entries[0], q.entries[1]
	q.entries = q.entries[2:]
	delete(q.byUser, a.UserID)
	delete(q.byUser, b.UserID)
	return *a, *b, true
}

// Remove drops the user's entry if present and reports whether it did.
func (q *Queue) Remove(userID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.byUser[userID]; !ok {
		return false
	}

	delete(q.byUser, userID)
	for i, e := range q.entries {
		if e.UserID == userID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether the user is currently queued.
func (q *Queue) Contains(userID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.byUser[userID]
	return ok
}

// Len returns the number of waiting players.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
