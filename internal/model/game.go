package model

import "time"

type Game struct {
	ID            string     `db:"id" json:"id"`
	PlayerWhiteID string     `db:"player_white_id" json:"playerWhiteId"`
	PlayerBlackID *string    `db:"player_black_id" json:"playerBlackId,omitempty"`
	Mode          GameMode   `db:"mode" json:"mode"`
	Status        GameStatus `db:"status" json:"status"`
	WinnerID      *string    `db:"winner_id" json:"winnerId,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	EndedAt       *time.Time `db:"ended_at" json:"endedAt,omitempty"`
}

type CreateGameParams struct {
	PlayerWhiteID string
	PlayerBlackID string
	Mode          GameMode
}
