package model

import "time"

type Friendship struct {
	ID          string           `db:"id" json:"id"`
	RequesterID string           `db:"requester_id" json:"requesterId"`
	AddresseeID string           `db:"addressee_id" json:"addresseeId"`
	Status      FriendshipStatus `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
}

// FriendRequest is a pending request enriched with the requester's identity.
type FriendRequest struct {
	ID          string    `db:"id" json:"id"`
	RequesterID string    `db:"requester_id" json:"requesterId"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"displayName"`
	Avatar      *string   `db:"avatar" json:"avatar,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
