package matchmaking

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/chessmate/chess-server-go/internal/model"
)

// GameStore creates the persistent record for a pairing.
type GameStore interface {
	Create(ctx context.Context, params model.CreateGameParams) (*model.Game, error)
}

// RatingStore resolves a player's rating row, creating a zeroed one if absent.
type RatingStore interface {
	FindOrCreate(ctx context.Context, userID string) (*model.Ranking, error)
}

// resolvedPlayer is one side of a pairing with identity and address in hand.
type resolvedPlayer struct {
	UserID      string
	Username    string
	DisplayName string
	Address     NetworkAddress
}

// pairingResult is the transient output of one pairing event: the game
// record id, the color assignment, and one descriptor per participant.
type pairingResult struct {
	GameID      string
	Descriptors map[string]*SessionDescriptor
}

// Engine performs the game bootstrap once two identities are chosen:
// an unbiased coin flip decides colors, one game record is created, both
// rating rows are ensured, and a descriptor is built for each side.
type Engine struct {
	games   GameStore
	ratings RatingStore
	coin    func() bool
}

func NewEngine(games GameStore, ratings RatingStore) *Engine {
	return &Engine{
		games:   games,
		ratings: ratings,
		coin:    func() bool { return rand.Intn(2) == 0 },
	}
}

// pair bootstraps a game between a and b. The coin flip is independent
// of argument order: a is not favored for white. The game record is
// created before any descriptor exists, so a delivered gameId always
// refers to a persisted row. On error nothing is handed off.
func (e *Engine) pair(ctx context.Context, a, b resolvedPlayer, mode model.GameMode) (*pairingResult, error) {
	white, black := a, b
	if e.coin() {
		white, black = b, a
	}

	game, err := e.games.Create(ctx, model.CreateGameParams{
		PlayerWhiteID: white.UserID,
		PlayerBlackID: black.UserID,
		Mode:          mode,
	})
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	whiteRanking, err := e.ratings.FindOrCreate(ctx, white.UserID)
	if err != nil {
		return nil, fmt.Errorf("white rating: %w", err)
	}
	blackRanking, err := e.ratings.FindOrCreate(ctx, black.UserID)
	if err != nil {
		return nil, fmt.Errorf("black rating: %w", err)
	}

	log.Info().
		Str("gameId", game.ID).
		Str("white", white.UserID).
		Str("black", black.UserID).
		Str("mode", string(mode)).
		Msg("pairing bootstrapped")

	return &pairingResult{
		GameID: game.ID,
		Descriptors: map[string]*SessionDescriptor{
			white.UserID: {
				GameID:       game.ID,
				Color:        string(model.ColorWhite),
				Opponent:     opponentOf(black, blackRanking.Score),
				PlayerRating: whiteRanking.Score,
			},
			black.UserID: {
				GameID:       game.ID,
				Color:        string(model.ColorBlack),
				Opponent:     opponentOf(white, whiteRanking.Score),
				PlayerRating: blackRanking.Score,
			},
		},
	}, nil
}

func opponentOf(p resolvedPlayer, rating int) Opponent {
	return Opponent{
		UserID:      p.UserID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		IP:          p.Address.IP,
		Port:        p.Address.Port,
		Rating:      rating,
	}
}
