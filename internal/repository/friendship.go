package repository

import (
	"context"

	"github.com/chessmate/chess-server-go/internal/database"
	"github.com/chessmate/chess-server-go/internal/model"
)

type FriendshipRepository interface {
	FindBetween(ctx context.Context, userID, otherID string) (*model.Friendship, error)
	AreFriends(ctx context.Context, userID, friendID string) (bool, error)
	Create(ctx context.Context, requesterID, addresseeID string) (*model.Friendship, error)
	UpdateStatus(ctx context.Context, requesterID, addresseeID string, status model.FriendshipStatus) (bool, error)
	DeleteBetween(ctx context.Context, userID, otherID string) error
	ListFriends(ctx context.Context, userID string) ([]model.UserSummary, error)
	ListPendingRequests(ctx context.Context, addresseeID string) ([]model.FriendRequest, error)
}

type friendshipRepo struct {
	db database.DBTX
}

func NewFriendshipRepository(db database.DBTX) FriendshipRepository {
	return &friendshipRepo{db: db}
}

func (r *friendshipRepo) FindBetween(ctx context.Context, userID, otherID string) (*model.Friendship, error) {
	var f model.Friendship
	err := r.db.GetContext(ctx, &f, `
		SELECT * FROM friendships
		WHERE (requester_id = $1 AND addressee_id = $2)
		   OR (requester_id = $2 AND addressee_id = $1)
	`, userID, otherID)
	return HandleNotFound(&f, err)
}

func (r *friendshipRepo) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM friendships
		WHERE ((requester_id = $1 AND addressee_id = $2)
		    OR (requester_id = $2 AND addressee_id = $1))
		  AND status = 'accepted'
	`, userID, friendID)
	return count > 0, err
}

func (r *friendshipRepo) Create(ctx context.Context, requesterID, addresseeID string) (*model.Friendship, error) {
	var f model.Friendship
	err := r.db.GetContext(ctx, &f, `
		INSERT INTO friendships (requester_id, addressee_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING *
	`, requesterID, addresseeID)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *friendshipRepo) UpdateStatus(ctx context.Context, requesterID, addresseeID string, status model.FriendshipStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE friendships SET status = $3
		WHERE requester_id = $1 AND addressee_id = $2 AND status = 'pending'
	`, requesterID, addresseeID, status)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

func (r *friendshipRepo) DeleteBetween(ctx context.Context, userID, otherID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM friendships
		WHERE (requester_id = $1 AND addressee_id = $2)
		   OR (requester_id = $2 AND addressee_id = $1)
	`, userID, otherID)
	return err
}

func (r *friendshipRepo) ListFriends(ctx context.Context, userID string) ([]model.UserSummary, error) {
	var friends []model.UserSummary
	err := r.db.SelectContext(ctx, &friends, `
		SELECT u.id, u.username, u.display_name, u.avatar, u.status
		FROM friendships f
		JOIN users u
		  ON (u.id = f.addressee_id AND f.requester_id = $1)
		  OR (u.id = f.requester_id AND f.addressee_id = $1)
		WHERE f.status = 'accepted'
	`, userID)
	return friends, err
}

func (r *friendshipRepo) ListPendingRequests(ctx context.Context, addresseeID string) ([]model.FriendRequest, error) {
	var requests []model.FriendRequest
	err := r.db.SelectContext(ctx, &requests, `
		SELECT f.id, f.requester_id, f.created_at,
		       u.username, u.display_name, u.avatar
		FROM friendships f
		JOIN users u ON u.id = f.requester_id
		WHERE f.addressee_id = $1 AND f.status = 'pending'
		ORDER BY f.created_at DESC
	`, addresseeID)
	return requests, err
}
