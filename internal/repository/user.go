package repository

import (
	"context"

	"github.com/chessmate/chess-server-go/internal/database"
	"github.com/chessmate/chess-server-go/internal/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	Update(ctx context.Context, id string, params model.UpdateUserParams) (*model.User, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Search(ctx context.Context, term string, excludeUserID string, limit int) ([]model.UserSummary, error)
}

type userRepo struct {
	db database.DBTX
}

func NewUserRepository(db database.DBTX) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id)
	return HandleNotFound(&u, err)
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE username = $1`, username)
	return HandleNotFound(&u, err)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE email = $1`, email)
	return HandleNotFound(&u, err)
}

func (r *userRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	var u model.User
	err := r.db.GetContext(ctx, &u, `
		INSERT INTO users (username, password, display_name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.Username, params.PasswordHash, params.DisplayName, params.Email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Update(ctx context.Context, id string, params model.UpdateUserParams) (*model.User, error) {
	var u model.User
	err := r.db.GetContext(ctx, &u, `
		UPDATE users SET
			display_name = COALESCE($2, display_name),
			email        = COALESCE($3, email),
			phone        = COALESCE($4, phone),
			avatar       = COALESCE($5, avatar),
			status       = COALESCE($6, status)
		WHERE id = $1
		RETURNING *
	`, id, params.DisplayName, params.Email, params.Phone, params.Avatar, params.Status)
	return HandleNotFound(&u, err)
}

func (r *userRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET status = $2 WHERE id = $1`, id, status)
	return err
}

func (r *userRepo) Search(ctx context.Context, term string, excludeUserID string, limit int) ([]model.UserSummary, error) {
	var users []model.UserSummary
	err := r.db.SelectContext(ctx, &users, `
		SELECT id, username, display_name, avatar, status
		FROM users
		WHERE (username ILIKE $1 OR display_name ILIKE $1)
		  AND id != $2
		  AND is_active = TRUE
		ORDER BY username
		LIMIT $3
	`, "%"+term+"%", excludeUserID, limit)
	return users, err
}
