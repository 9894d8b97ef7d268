package service

import (
	"context"

	apperrors "github.com/chessmate/chess-server-go/internal/errors"
	"github.com/chessmate/chess-server-go/internal/model"
	"github.com/chessmate/chess-server-go/internal/repository"
)

const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
)

type LeaderboardService struct {
	rankingRepo repository.RankingRepository
}

func NewLeaderboardService(rankingRepo repository.RankingRepository) *LeaderboardService {
	return &LeaderboardService{rankingRepo: rankingRepo}
}

func (s *LeaderboardService) TopPlayers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	if limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}

	entries, err := s.rankingRepo.TopPlayers(ctx, limit)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return entries, nil
}
