package matchmaking

import (
	"sync"
	"time"
)

// InviteBox holds pending friend-game invitations, keyed by recipient.
// A new invitation from the same sender replaces the prior one, and
// invitations older than the TTL are evicted lazily on the next read.
// State is process-local and lost on restart.
type InviteBox struct {
	mu     sync.Mutex
	ttl    time.Duration
	byUser map[string][]Invitation
	now    func() time.Time
}

func NewInviteBox(ttl time.Duration) *InviteBox {
	return &InviteBox{
		ttl:    ttl,
		byUser: make(map[string][]Invitation),
		now:    time.Now,
	}
}

// Put upserts an invitation for the recipient. An existing invitation
// from the same sender is replaced, refreshing its timestamp.
func (b *InviteBox) Put(recipientID string, inv Invitation) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = b.now()
	}

	list := b.byUser[recipientID]
	for i, existing := range list {
		if existing.SenderID == inv.SenderID {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	b.byUser[recipientID] = append(list, inv)
}

// List returns the recipient's live invitations, evicting expired ones
// first. The swept list is stored back so the next read starts clean.
func (b *InviteBox) List(recipientID string) []Invitation {
	b.mu.Lock()
	defer b.mu.Unlock()

	live := b.sweepLocked(recipientID)
	out := make([]Invitation, len(live))
	copy(out, live)
	return out
}

// Take removes and returns the live invitation from senderID, if any.
// Expired invitations are swept first, so an overdue invite cannot be
// accepted.
func (b *InviteBox) Take(recipientID, senderID string) (Invitation, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	live := b.sweepLocked(recipientID)
	for i, inv := range live {
		if inv.SenderID == senderID {
			b.byUser[recipientID] = append(live[:i], live[i+1:]...)
			return inv, true
		}
	}
	return Invitation{}, false
}

// Remove drops the invitation from senderID and reports whether a live
// one existed.
func (b *InviteBox) Remove(recipientID, senderID string) bool {
	_, ok := b.Take(recipientID, senderID)
	return ok
}

func (b *InviteBox) sweepLocked(recipientID string) []Invitation {
	cutoff := b.now().Add(-b.ttl)
	list := b.byUser[recipientID]
	live := list[:0]
	for _, inv := range list {
		if inv.CreatedAt.After(cutoff) {
			live = append(live, inv)
		}
	}
	if len(live) == 0 {
		delete(b.byUser, recipientID)
		return nil
	}
	b.byUser[recipientID] = live
	return live
}
