package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chessmate/chess-server-go/internal/database"
	"github.com/chessmate/chess-server-go/internal/model"
)

type GameRepository interface {
	FindByID(ctx context.Context, id string) (*model.Game, error)
	Create(ctx context.Context, params model.CreateGameParams) (*model.Game, error)
	UpdateStatus(ctx context.Context, id string, status model.GameStatus) error
	SetWinner(ctx context.Context, id string, winnerID string) error
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) GameRepository
}

type gameRepo struct {
	db database.DBTX
}

func NewGameRepository(db database.DBTX) GameRepository {
	return &gameRepo{db: db}
}

func (r *gameRepo) WithTx(tx *sqlx.Tx) GameRepository {
	return &gameRepo{db: tx}
}

func (r *gameRepo) FindByID(ctx context.Context, id string) (*model.Game, error) {
	var g model.Game
	err := r.db.GetContext(ctx, &g, `SELECT * FROM games WHERE id = $1`, id)
	return HandleNotFound(&g, err)
}

func (r *gameRepo) Create(ctx context.Context, params model.CreateGameParams) (*model.Game, error) {
	mode := params.Mode
	if mode != model.GameModeRandom && mode != model.GameModeFriend && mode != model.GameModeBot {
		mode = model.GameModeRandom
	}

	var g model.Game
	err := r.db.GetContext(ctx, &g, `
		INSERT INTO games (player_white_id, player_black_id, mode, status)
		VALUES ($1, $2, $3, 'waiting')
		RETURNING *
	`, params.PlayerWhiteID, params.PlayerBlackID, mode)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gameRepo) UpdateStatus(ctx context.Context, id string, status model.GameStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE games SET status = $2 WHERE id = $1`, id, status)
	return err
}

func (r *gameRepo) SetWinner(ctx context.Context, id string, winnerID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE games SET status = 'finished', winner_id = $2, ended_at = $3
		WHERE id = $1
	`, id, winnerID, time.Now())
	return err
}
