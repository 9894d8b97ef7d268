package repository

import (
	"context"

	"github.com/chessmate/chess-server-go/internal/database"
	"github.com/chessmate/chess-server-go/internal/model"
)

type TokenRepository interface {
	Create(ctx context.Context, params model.CreateRefreshTokenParams) (*model.RefreshToken, error)
	FindByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteByUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type tokenRepo struct {
	db database.DBTX
}

func NewTokenRepository(db database.DBTX) TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) Create(ctx context.Context, params model.CreateRefreshTokenParams) (*model.RefreshToken, error) {
	var t model.RefreshToken
	err := r.db.GetContext(ctx, &t, `
		INSERT INTO tokens (user_id, refresh_token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING *
	`, params.UserID, params.RefreshTokenHash, params.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tokenRepo) FindByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	var t model.RefreshToken
	err := r.db.GetContext(ctx, &t, `
		SELECT * FROM tokens
		WHERE refresh_token_hash = $1 AND expires_at > NOW()
	`, tokenHash)
	return HandleNotFound(&t, err)
}

func (r *tokenRepo) Delete(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE refresh_token_hash = $1`, tokenHash)
	return err
}

func (r *tokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE user_id = $1`, userID)
	return err
}

func (r *tokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
