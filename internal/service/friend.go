package service

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/chessmate/chess-server-go/internal/errors"
	"github.com/chessmate/chess-server-go/internal/model"
	"github.com/chessmate/chess-server-go/internal/repository"
)

type FriendService struct {
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
}

func NewFriendService(friendshipRepo repository.FriendshipRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{friendshipRepo: friendshipRepo, userRepo: userRepo}
}

// SendRequest creates a pending friend request. A declined request between
// the same pair is replaced; a pending or accepted one is a conflict.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, addresseeID string) (*model.Friendship, error) {
	if addresseeID == "" {
		return nil, apperrors.MissingRequired("friendId")
	}
	if requesterID == addresseeID {
		return nil, apperrors.Forbidden("Cannot befriend yourself")
	}

	addressee, err := s.userRepo.FindByID(ctx, addresseeID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if addressee == nil {
		return nil, apperrors.NotFound("User")
	}

	existing, err := s.friendshipRepo.FindBetween(ctx, requesterID, addresseeID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if existing != nil {
		switch existing.Status {
		case model.FriendshipPending, model.FriendshipAccepted:
			return nil, apperrors.Conflict("Friend request already exists")
		case model.FriendshipDeclined:
			if err := s.friendshipRepo.DeleteBetween(ctx, requesterID, addresseeID); err != nil {
				return nil, apperrors.Database(err)
			}
		}
	}

	friendship, err := s.friendshipRepo.Create(ctx, requesterID, addresseeID)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	log.Info().Str("requesterId", requesterID).Str("addresseeId", addresseeID).Msg("friend request sent")
	return friendship, nil
}

func (s *FriendService) AcceptRequest(ctx context.Context, requesterID, addresseeID string) error {
	updated, err := s.friendshipRepo.UpdateStatus(ctx, requesterID, addresseeID, model.FriendshipAccepted)
	if err != nil {
		return apperrors.Database(err)
	}
	if !updated {
		return apperrors.NotFound("Friend request")
	}
	log.Info().Str("requesterId", requesterID).Str("addresseeId", addresseeID).Msg("friend request accepted")
	return nil
}

func (s *FriendService) DeclineRequest(ctx context.Context, requesterID, addresseeID string) error {
	updated, err := s.friendshipRepo.UpdateStatus(ctx, requesterID, addresseeID, model.FriendshipDeclined)
	if err != nil {
		return apperrors.Database(err)
	}
	if !updated {
		return apperrors.NotFound("Friend request")
	}
	return nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]model.UserSummary, error) {
	friends, err := s.friendshipRepo.ListFriends(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return friends, nil
}

func (s *FriendService) ListPendingRequests(ctx context.Context, userID string) ([]model.FriendRequest, error) {
	requests, err := s.friendshipRepo.ListPendingRequests(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return requests, nil
}

func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	if err := s.friendshipRepo.DeleteBetween(ctx, userID, friendID); err != nil {
		return apperrors.Database(err)
	}
	return nil
}
