package service

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/chessmate/chess-server-go/internal/model"
	"github.com/chessmate/chess-server-go/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, id string, params model.UpdateUserParams) (*model.User, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockUserRepo) Search(ctx context.Context, term string, excludeUserID string, limit int) ([]model.UserSummary, error) {
	args := m.Called(ctx, term, excludeUserID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

type mockTokenRepo struct {
	mock.Mock
}

func (m *mockTokenRepo) Create(ctx context.Context, params model.CreateRefreshTokenParams) (*model.RefreshToken, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *mockTokenRepo) FindByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *mockTokenRepo) Delete(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *mockTokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) FindByID(ctx context.Context, id string) (*model.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Game), args.Error(1)
}

func (m *mockGameRepo) Create(ctx context.Context, params model.CreateGameParams) (*model.Game, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Game), args.Error(1)
}

func (m *mockGameRepo) UpdateStatus(ctx context.Context, id string, status model.GameStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockGameRepo) SetWinner(ctx context.Context, id string, winnerID string) error {
	args := m.Called(ctx, id, winnerID)
	return args.Error(0)
}

func (m *mockGameRepo) WithTx(tx *sqlx.Tx) repository.GameRepository {
	return m
}

type mockRankingRepo struct {
	mock.Mock
}

func (m *mockRankingRepo) FindByUserID(ctx context.Context, userID string) (*model.Ranking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ranking), args.Error(1)
}

func (m *mockRankingRepo) FindOrCreate(ctx context.Context, userID string) (*model.Ranking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ranking), args.Error(1)
}

func (m *mockRankingRepo) ApplyResult(ctx context.Context, userID string, result model.GameResult) error {
	args := m.Called(ctx, userID, result)
	return args.Error(0)
}

func (m *mockRankingRepo) TopPlayers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LeaderboardEntry), args.Error(1)
}

func (m *mockRankingRepo) WithTx(tx *sqlx.Tx) repository.RankingRepository {
	return m
}

type mockFriendshipRepo struct {
	mock.Mock
}

func (m *mockFriendshipRepo) FindBetween(ctx context.Context, userID, otherID string) (*model.Friendship, error) {
	args := m.Called(ctx, userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Friendship), args.Error(1)
}

func (m *mockFriendshipRepo) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	args := m.Called(ctx, userID, friendID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFriendshipRepo) Create(ctx context.Context, requesterID, addresseeID string) (*model.Friendship, error) {
	args := m.Called(ctx, requesterID, addresseeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Friendship), args.Error(1)
}

func (m *mockFriendshipRepo) UpdateStatus(ctx context.Context, requesterID, addresseeID string, status model.FriendshipStatus) (bool, error) {
	args := m.Called(ctx, requesterID, addresseeID, status)
	return args.Bool(0), args.Error(1)
}

func (m *mockFriendshipRepo) DeleteBetween(ctx context.Context, userID, otherID string) error {
	args := m.Called(ctx, userID, otherID)
	return args.Error(0)
}

func (m *mockFriendshipRepo) ListFriends(ctx context.Context, userID string) ([]model.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserSummary), args.Error(1)
}

func (m *mockFriendshipRepo) ListPendingRequests(ctx context.Context, addresseeID string) ([]model.FriendRequest, error) {
	args := m.Called(ctx, addresseeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FriendRequest), args.Error(1)
}
