package matchmaking

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/chessmate/chess-server-go/internal/errors"
	"github.com/chessmate/chess-server-go/internal/model"
	"github.com/chessmate/chess-server-go/internal/util"
)

// DefaultInviteTTL is how long a friend-game invitation stays live.
const DefaultInviteTTL = 5 * time.Minute

// UserDirectory resolves player identities.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// FriendGraph answers whether two players are confirmed friends.
type FriendGraph interface {
	AreFriends(ctx context.Context, userID, friendID string) (bool, error)
}

// Coordinator pairs players for peer-to-peer chess sessions and hands
// each side the other's network coordinates. It owns the waiting queue,
// the invitation mailboxes and the session handoff store; compound
// operations (enqueue-then-pair, accept-then-bootstrap) run under a
// single mutex so concurrent callers can never pair the same entry
// twice or pair an entry that was just removed.
type Coordinator struct {
	mu      sync.Mutex
	queue   *Queue
	invites *InviteBox
	handoff *HandoffStore
	engine  *Engine
	users   UserDirectory
	friends FriendGraph
}

func NewCoordinator(users UserDirectory, friends FriendGraph, games GameStore, ratings RatingStore, inviteTTL time.Duration) *Coordinator {
	if inviteTTL <= 0 {
		inviteTTL = DefaultInviteTTL
	}
	return &Coordinator{
		queue:   NewQueue(),
		invites: NewInviteBox(inviteTTL),
		handoff: NewHandoffStore(),
		engine:  NewEngine(games, ratings),
		users:   users,
		friends: friends,
	}
}

// JoinQueue enrolls the caller for random pairing. Joining while already
// queued is idempotent. When the queue holds two or more players the two
// longest-waiting entries are paired immediately: the joiner's result is
// returned inline and the other player's descriptor waits in the handoff
// store for their next poll.
func (c *Coordinator) JoinQueue(ctx context.Context, userID string, addr NetworkAddress) (*JoinResult, error) {
	if !util.IsValidPort(addr.Port) {
		return nil, apperrors.ValidationError("A valid listening port is required")
	}

	user, err := c.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	inserted := c.queue.Enqueue(WaitingPlayer{
		UserID:      userID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Address:     addr,
	})
	if !inserted {
		return &JoinResult{Status: StatusSearching}, nil
	}

	log.Info().Str("userId", userID).Int("queueSize", c.queue.Len()).Msg("player joined matchmaking queue")

	first, second, ok := c.queue.TakeEarliestTwo()
	if !ok {
		return &JoinResult{Status: StatusSearching}, nil
	}

	result, err := c.engine.pair(ctx, playerFrom(first), playerFrom(second), model.GameModeRandom)
	if err != nil {
		// Both entries were already removed; neither side receives a
		// descriptor and both may re-join.
		log.Error().Err(err).Msg("pairing bootstrap failed")
		return nil, apperrors.Database(err)
	}

	for id, desc := range result.Descriptors {
		c.handoff.Deposit(id, desc)
	}

	// The inline response is the joiner's delivery; consuming the slot
	// keeps handoff exactly-once for both sides.
	if self, ok := c.handoff.Poll(userID); ok {
		return &JoinResult{Status: StatusPaired, Session: self}, nil
	}
	return &JoinResult{Status: StatusSearching}, nil
}

// PollStatus reports the caller's matchmaking state: a pending descriptor
// (delivered destructively), continued queue membership, or nothing.
func (c *Coordinator) PollStatus(userID string) *PollResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if desc, ok := c.handoff.Poll(userID); ok {
		return &PollResult{Status: StatusPaired, Session: desc}
	}
	if c.queue.Contains(userID) {
		return &PollResult{Status: StatusSearching}
	}
	return &PollResult{Status: StatusNotFound}
}

// LeaveQueue removes the caller from the queue and reports whether an
// entry was removed.
func (c *Coordinator) LeaveQueue(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := c.queue.Remove(userID)
	if removed {
		log.Info().Str("userId", userID).Int("queueSize", c.queue.Len()).Msg("player left matchmaking queue")
	}
	return removed
}

// Invite stores a friend-game invitation in the recipient's mailbox,
// replacing any earlier invitation from the same sender.
func (c *Coordinator) Invite(ctx context.Context, senderID, recipientID string, addr NetworkAddress) error {
	if recipientID == "" {
		return apperrors.MissingRequired("friendId")
	}
	if !util.IsValidPort(addr.Port) {
		return apperrors.ValidationError("A valid listening port is required")
	}
	if senderID == recipientID {
		return apperrors.Forbidden("Cannot invite yourself")
	}

	areFriends, err := c.friends.AreFriends(ctx, senderID, recipientID)
	if err != nil {
		return apperrors.Database(err)
	}
	if !areFriends {
		return apperrors.Forbidden("Can only invite friends")
	}

	sender, err := c.users.FindByID(ctx, senderID)
	if err != nil {
		return apperrors.Database(err)
	}
	if sender == nil {
		return apperrors.NotFound("User")
	}

	name := sender.DisplayName
	if name == "" {
		name = sender.Username
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.invites.Put(recipientID, Invitation{
		SenderID:   senderID,
		SenderName: name,
		Address:    addr,
	})

	log.Info().Str("senderId", senderID).Str("recipientId", recipientID).Msg("game invitation stored")
	return nil
}

// ListInvitations returns the caller's live invitations, expired ones
// having been evicted, each enriched with the sender's username.
func (c *Coordinator) ListInvitations(ctx context.Context, recipientID string) ([]InvitationView, error) {
	c.mu.Lock()
	live := c.invites.List(recipientID)
	c.mu.Unlock()

	views := make([]InvitationView, 0, len(live))
	for _, inv := range live {
		view := InvitationView{
			SenderID:   inv.SenderID,
			SenderName: inv.SenderName,
			IP:         inv.Address.IP,
			Port:       inv.Address.Port,
		}
		sender, err := c.users.FindByID(ctx, inv.SenderID)
		if err != nil {
			return nil, apperrors.Database(err)
		}
		if sender != nil {
			view.SenderUsername = sender.Username
		}
		views = append(views, view)
	}
	return views, nil
}

// AcceptInvitation consumes the invitation from senderID, re-validates
// the friendship, and bootstraps a friend game. Colors are a fresh coin
// flip regardless of who invited. The inviter's descriptor is deposited
// for their next poll; the acceptor's is returned inline. The acceptor
// connects out to the inviter, so only their observed IP travels.
func (c *Coordinator) AcceptInvitation(ctx context.Context, recipientID, senderID, recipientIP string) (*SessionDescriptor, error) {
	if senderID == "" {
		return nil, apperrors.MissingRequired("senderId")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	inv, ok := c.invites.Take(recipientID, senderID)
	if !ok {
		return nil, apperrors.NotFound("Invitation")
	}

	areFriends, err := c.friends.AreFriends(ctx, recipientID, senderID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if !areFriends {
		return nil, apperrors.Forbidden("Not friends")
	}

	sender, err := c.users.FindByID(ctx, senderID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	recipient, err := c.users.FindByID(ctx, recipientID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if sender == nil || recipient == nil {
		return nil, apperrors.NotFound("User")
	}

	senderPlayer := resolvedPlayer{
		UserID:      sender.ID,
		Username:    sender.Username,
		DisplayName: sender.DisplayName,
		Address:     inv.Address,
	}
	recipientPlayer := resolvedPlayer{
		UserID:      recipient.ID,
		Username:    recipient.Username,
		DisplayName: recipient.DisplayName,
		Address:     NetworkAddress{IP: recipientIP, Port: 0},
	}

	result, err := c.engine.pair(ctx, senderPlayer, recipientPlayer, model.GameModeFriend)
	if err != nil {
		log.Error().Err(err).Msg("friend pairing bootstrap failed")
		return nil, apperrors.Database(err)
	}

	for id, desc := range result.Descriptors {
		c.handoff.Deposit(id, desc)
	}

	self, ok := c.handoff.Poll(recipientID)
	if !ok {
		return nil, apperrors.Internal("Pairing produced no descriptor for acceptor")
	}
	return self, nil
}

// DeclineInvitation removes the invitation from senderID, reporting
// NotFound if none is live.
func (c *Coordinator) DeclineInvitation(recipientID, senderID string) error {
	if senderID == "" {
		return apperrors.MissingRequired("senderId")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.invites.Remove(recipientID, senderID) {
		return apperrors.NotFound("Invitation")
	}
	return nil
}

// PollSession delivers the caller's pending descriptor, if any. Like
// PollStatus it is a destructive read, but it does not report queue
// membership; friend-game pollers are never queued.
func (c *Coordinator) PollSession(userID string) (*SessionDescriptor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handoff.Poll(userID)
}

func playerFrom(p WaitingPlayer) resolvedPlayer {
	return resolvedPlayer{
		UserID:      p.UserID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Address:     p.Address,
	}
}
