package matchmaking

import "time"

// Status is the three-way state a player can observe via a status poll.
type Status string

const (
	StatusPaired    Status = "paired"
	StatusSearching Status = "searching"
	StatusNotFound  Status = "not_found"
)

// NetworkAddress is the coordinates a player listens on for the peer
// connection. It is round-tripped into the opponent's descriptor and
// never dialed by this server.
type NetworkAddress struct {
	IP   string `json:"ip"`
	Port int    `json:"port"`
}

// WaitingPlayer is one entry in the matchmaking queue.
type WaitingPlayer struct {
	UserID      string
	Username    string
	DisplayName string
	Address     NetworkAddress
	EnqueuedAt  time.Time
}

// Invitation is a pending friend-game invite held in the recipient's mailbox.
type Invitation struct {
	SenderID   string
	SenderName string
	Address    NetworkAddress
	CreatedAt  time.Time
}

// InvitationView is an invitation enriched with the sender's username,
// as listed to the recipient.
type InvitationView struct {
	SenderID       string `json:"senderId"`
	SenderName     string `json:"senderName"`
	SenderUsername string `json:"senderUsername"`
	IP             string `json:"ip"`
	Port           int    `json:"port"`
}

// Opponent describes the other side of a pairing, including the address
// to connect to and a rating snapshot.
type Opponent struct {
	UserID      string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	IP          string `json:"ip"`
	Port        int    `json:"port"`
	Rating      int    `json:"rating"`
}

// SessionDescriptor is the payload handed to one participant of a
// completed pairing. Delivery is destructive: each participant receives
// theirs at most once.
type SessionDescriptor struct {
	GameID       string   `json:"gameId"`
	Color        string   `json:"color"`
	Opponent     Opponent `json:"opponent"`
	PlayerRating int      `json:"playerRating"`
}

// JoinResult is the outcome of a join-queue call.
type JoinResult struct {
	Status  Status
	Session *SessionDescriptor
}

// PollResult is the outcome of a status poll.
type PollResult struct {
	Status  Status
	Session *SessionDescriptor
}
