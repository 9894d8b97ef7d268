package model

type Ranking struct {
	UserID      string `db:"user_id" json:"userId"`
	GamesPlayed int    `db:"games_played" json:"gamesPlayed"`
	Wins        int    `db:"wins" json:"wins"`
	Losses      int    `db:"losses" json:"losses"`
	Draws       int    `db:"draws" json:"draws"`
	Score       int    `db:"score" json:"score"`
}

// LeaderboardEntry is a ranking row joined with the player's identity.
type LeaderboardEntry struct {
	UserID      string `db:"id" json:"userId"`
	Username    string `db:"username" json:"username"`
	DisplayName string `db:"display_name" json:"displayName"`
	Score       int    `db:"score" json:"score"`
	Wins        int    `db:"wins" json:"wins"`
	Losses      int    `db:"losses" json:"losses"`
	Draws       int    `db:"draws" json:"draws"`
}
