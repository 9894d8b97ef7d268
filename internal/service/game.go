package service

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/chessmate/chess-server-go/internal/database"
	apperrors "github.com/chessmate/chess-server-go/internal/errors"
	"github.com/chessmate/chess-server-go/internal/model"
	"github.com/chessmate/chess-server-go/internal/repository"
)

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn database.TxFunc) error
}

type EndGameParams struct {
	GameID      string
	CallerID    string
	WinnerColor model.Color // ignored when Result is draw
	Result      string      // "win" or "draw"
}

type EndGameResult struct {
	GameID   string  `json:"gameId"`
	WinnerID *string `json:"winnerId"`
	Result   string  `json:"result"`
}

type GameService struct {
	db          TxRunner
	gameRepo    repository.GameRepository
	rankingRepo repository.RankingRepository
}

func NewGameService(db TxRunner, gameRepo repository.GameRepository, rankingRepo repository.RankingRepository) *GameService {
	return &GameService{db: db, gameRepo: gameRepo, rankingRepo: rankingRepo}
}

// EndGame records the outcome of a finished game and updates both
// players' rankings. Only a participant may report the result. The
// game-status update and both ranking updates commit in one
// transaction so a failure leaves neither side half-scored.
func (s *GameService) EndGame(ctx context.Context, params EndGameParams) (*EndGameResult, error) {
	game, err := s.gameRepo.FindByID(ctx, params.GameID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if game == nil {
		return nil, apperrors.NotFound("Game")
	}

	blackID := ""
	if game.PlayerBlackID != nil {
		blackID = *game.PlayerBlackID
	}
	if params.CallerID != game.PlayerWhiteID && params.CallerID != blackID {
		return nil, apperrors.Forbidden("Not a participant of this game")
	}
	if game.Status == model.GameStatusFinished {
		return nil, apperrors.Conflict("Game is already finished")
	}

	var winnerID *string
	whiteResult, blackResult := model.ResultDraw, model.ResultDraw

	switch {
	case params.Result == "draw":
		// both draw
	case params.WinnerColor == model.ColorWhite:
		winnerID = &game.PlayerWhiteID
		whiteResult, blackResult = model.ResultWin, model.ResultLoss
	case params.WinnerColor == model.ColorBlack && blackID != "":
		winnerID = &blackID
		whiteResult, blackResult = model.ResultLoss, model.ResultWin
	default:
		return nil, apperrors.ValidationError("winnerColor must be white or black, or result must be draw")
	}

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		games := s.gameRepo.WithTx(tx)
		rankings := s.rankingRepo.WithTx(tx)

		if winnerID != nil {
			if err := games.SetWinner(ctx, game.ID, *winnerID); err != nil {
				return err
			}
		} else {
			if err := games.UpdateStatus(ctx, game.ID, model.GameStatusFinished); err != nil {
				return err
			}
		}

		if err := applyRanking(ctx, rankings, game.PlayerWhiteID, whiteResult); err != nil {
			return err
		}
		if blackID != "" {
			if err := applyRanking(ctx, rankings, blackID, blackResult); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	result := "draw"
	if winnerID != nil {
		result = "win"
	}

	log.Info().Str("gameId", game.ID).Str("result", result).Msg("game finished")

	return &EndGameResult{GameID: game.ID, WinnerID: winnerID, Result: result}, nil
}

func applyRanking(ctx context.Context, rankings repository.RankingRepository, userID string, result model.GameResult) error {
	// Rating rows normally exist from pairing, but ensure anyway.
	if _, err := rankings.FindOrCreate(ctx, userID); err != nil {
		return err
	}
	return rankings.ApplyResult(ctx, userID, result)
}
