package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chessmate/chess-server-go/internal/errors"
	"github.com/chessmate/chess-server-go/internal/model"
)

func TestSendRequest(t *testing.T) {
	t.Run("creates pending request", func(t *testing.T) {
		friendshipRepo := new(mockFriendshipRepo)
		userRepo := new(mockUserRepo)
		svc := NewFriendService(friendshipRepo, userRepo)

		userRepo.On("FindByID", mock.Anything, "u2").Return(&model.User{ID: "u2"}, nil)
		friendshipRepo.On("FindBetween", mock.Anything, "u1", "u2").Return(nil, nil)
		friendshipRepo.On("Create", mock.Anything, "u1", "u2").
			Return(&model.Friendship{RequesterID: "u1", AddresseeID: "u2", Status: model.FriendshipPending}, nil)

		friendship, err := svc.SendRequest(context.Background(), "u1", "u2")
		require.NoError(t, err)
		assert.Equal(t, model.FriendshipPending, friendship.Status)
		friendshipRepo.AssertExpectations(t)
	})

	t.Run("cannot befriend yourself", func(t *testing.T) {
		svc := NewFriendService(new(mockFriendshipRepo), new(mockUserRepo))
		_, err := svc.SendRequest(context.Background(), "u1", "u1")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetCode(err))
	})

	t.Run("unknown addressee", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewFriendService(new(mockFriendshipRepo), userRepo)
		userRepo.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

		_, err := svc.SendRequest(context.Background(), "u1", "ghost")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})

	t.Run("pending request conflicts", func(t *testing.T) {
		friendshipRepo := new(mockFriendshipRepo)
		userRepo := new(mockUserRepo)
		svc := NewFriendService(friendshipRepo, userRepo)

		userRepo.On("FindByID", mock.Anything, "u2").Return(&model.User{ID: "u2"}, nil)
		friendshipRepo.On("FindBetween", mock.Anything, "u1", "u2").
			Return(&model.Friendship{Status: model.FriendshipPending}, nil)

		_, err := svc.SendRequest(context.Background(), "u1", "u2")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeConflict, apperrors.GetCode(err))
	})

	t.Run("declined request is replaced", func(t *testing.T) {
		friendshipRepo := new(mockFriendshipRepo)
		userRepo := new(mockUserRepo)
		svc := NewFriendService(friendshipRepo, userRepo)

		userRepo.On("FindByID", mock.Anything, "u2").Return(&model.User{ID: "u2"}, nil)
		friendshipRepo.On("FindBetween", mock.Anything, "u1", "u2").
			Return(&model.Friendship{Status: model.FriendshipDeclined}, nil)
		friendshipRepo.On("DeleteBetween", mock.Anything, "u1", "u2").Return(nil)
		friendshipRepo.On("Create", mock.Anything, "u1", "u2").
			Return(&model.Friendship{Status: model.FriendshipPending}, nil)

		_, err := svc.SendRequest(context.Background(), "u1", "u2")
		require.NoError(t, err)
		friendshipRepo.AssertExpectations(t)
	})
}

func TestAcceptRequest(t *testing.T) {
	t.Run("accepts pending request", func(t *testing.T) {
		friendshipRepo := new(mockFriendshipRepo)
		svc := NewFriendService(friendshipRepo, new(mockUserRepo))
		friendshipRepo.On("UpdateStatus", mock.Anything, "u1", "u2", model.FriendshipAccepted).Return(true, nil)

		assert.NoError(t, svc.AcceptRequest(context.Background(), "u1", "u2"))
	})

	t.Run("no pending request", func(t *testing.T) {
		friendshipRepo := new(mockFriendshipRepo)
		svc := NewFriendService(friendshipRepo, new(mockUserRepo))
		friendshipRepo.On("UpdateStatus", mock.Anything, "u1", "u2", model.FriendshipAccepted).Return(false, nil)

		err := svc.AcceptRequest(context.Background(), "u1", "u2")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})
}

func TestDeclineRequest(t *testing.T) {
	friendshipRepo := new(mockFriendshipRepo)
	svc := NewFriendService(friendshipRepo, new(mockUserRepo))
	friendshipRepo.On("UpdateStatus", mock.Anything, "u1", "u2", model.FriendshipDeclined).Return(true, nil)

	assert.NoError(t, svc.DeclineRequest(context.Background(), "u1", "u2"))
}

func TestListFriends(t *testing.T) {
	friendshipRepo := new(mockFriendshipRepo)
	svc := NewFriendService(friendshipRepo, new(mockUserRepo))
	friendshipRepo.On("ListFriends", mock.Anything, "u1").
		Return([]model.UserSummary{{ID: "u2", Username: "bob"}}, nil)

	friends, err := svc.ListFriends(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].Username)
}
