package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chessmate/chess-server-go/internal/model"
)

type mockTokenRepo struct {
	deleteExpiredCalls atomic.Int64
	deleteExpiredCount int64
}

func (m *mockTokenRepo) Create(ctx context.Context, params model.CreateRefreshTokenParams) (*model.RefreshToken, error) {
	return nil, nil
}

func (m *mockTokenRepo) FindByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	return nil, nil
}

func (m *mockTokenRepo) Delete(ctx context.Context, tokenHash string) error {
	return nil
}

func (m *mockTokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	return nil
}

func (m *mockTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	m.deleteExpiredCalls.Add(1)
	return m.deleteExpiredCount, nil
}

func TestCleanupJob(t *testing.T) {
	t.Run("creates job with correct interval", func(t *testing.T) {
		job := NewCleanupJob(nil, 5*time.Minute)

		assert.NotNil(t, job)
		assert.Equal(t, 5*time.Minute, job.interval)
	})

	t.Run("runs cleanup on start", func(t *testing.T) {
		tokenRepo := &mockTokenRepo{deleteExpiredCount: 3}

		job := NewCleanupJob(tokenRepo, time.Hour)

		job.Start()
		time.Sleep(10 * time.Millisecond)
		job.Stop()

		assert.GreaterOrEqual(t, tokenRepo.deleteExpiredCalls.Load(), int64(1))
	})

	t.Run("starts and stops without panic", func(t *testing.T) {
		job := NewCleanupJob(&mockTokenRepo{}, 100*time.Millisecond)

		job.Start()
		time.Sleep(50 * time.Millisecond)
		job.Stop()
	})
}
