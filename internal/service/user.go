package service

import (
	"context"

	apperrors "github.com/chessmate/chess-server-go/internal/errors"
	"github.com/chessmate/chess-server-go/internal/model"
	"github.com/chessmate/chess-server-go/internal/repository"
	"github.com/chessmate/chess-server-go/internal/util"
)

const searchResultLimit = 20

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, params model.UpdateUserParams) (*model.User, error) {
	if params.Email != nil && !util.IsValidEmail(*params.Email) {
		return nil, apperrors.InvalidInput("email", "not a valid address")
	}

	user, err := s.userRepo.Update(ctx, userID, params)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("Email")
		}
		return nil, apperrors.Database(err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}
	return user, nil
}

// Search finds active users by username or display name, excluding the caller.
func (s *UserService) Search(ctx context.Context, term string, excludeUserID string) ([]model.UserSummary, error) {
	if term == "" {
		return nil, apperrors.MissingRequired("q")
	}
	users, err := s.userRepo.Search(ctx, term, excludeUserID, searchResultLimit)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return users, nil
}
