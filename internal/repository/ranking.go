package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chessmate/chess-server-go/internal/database"
	"github.com/chessmate/chess-server-go/internal/model"
)

type RankingRepository interface {
	FindByUserID(ctx context.Context, userID string) (*model.Ranking, error)
	FindOrCreate(ctx context.Context, userID string) (*model.Ranking, error)
	ApplyResult(ctx context.Context, userID string, result model.GameResult) error
	TopPlayers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) RankingRepository
}

type rankingRepo struct {
	db database.DBTX
}

func NewRankingRepository(db database.DBTX) RankingRepository {
	return &rankingRepo{db: db}
}

func (r *rankingRepo) WithTx(tx *sqlx.Tx) RankingRepository {
	return &rankingRepo{db: tx}
}

func (r *rankingRepo) FindByUserID(ctx context.Context, userID string) (*model.Ranking, error) {
	var rk model.Ranking
	err := r.db.GetContext(ctx, &rk, `SELECT * FROM rankings WHERE user_id = $1`, userID)
	return HandleNotFound(&rk, err)
}

// FindOrCreate returns the user's ranking row, inserting a zeroed one if absent.
func (r *rankingRepo) FindOrCreate(ctx context.Context, userID string) (*model.Ranking, error) {
	var rk model.Ranking
	err := r.db.GetContext(ctx, &rk, `
		INSERT INTO rankings (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING *
	`, userID)
	if err != nil {
		return nil, err
	}
	return &rk, nil
}

// ApplyResult updates the ranking counters for one finished game.
// Scoring: win +3, draw +1, loss +0.
func (r *rankingRepo) ApplyResult(ctx context.Context, userID string, result model.GameResult) error {
	var query string
	switch result {
	case model.ResultWin:
		query = `UPDATE rankings SET games_played = games_played + 1, wins = wins + 1, score = score + 3 WHERE user_id = $1`
	case model.ResultDraw:
		query = `UPDATE rankings SET games_played = games_played + 1, draws = draws + 1, score = score + 1 WHERE user_id = $1`
	case model.ResultLoss:
		query = `UPDATE rankings SET games_played = games_played + 1, losses = losses + 1 WHERE user_id = $1`
	default:
		return fmt.Errorf("unknown game result: %q", result)
	}

	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *rankingRepo) TopPlayers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT u.id, u.username, u.display_name, r.score, r.wins, r.losses, r.draws
		FROM rankings r
		JOIN users u ON r.user_id = u.id
		ORDER BY r.score DESC
		LIMIT $1
	`, limit)
	return entries, err
}
