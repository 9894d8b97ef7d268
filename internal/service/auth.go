package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/chessmate/chess-server-go/internal/errors"
	"github.com/chessmate/chess-server-go/internal/model"
	"github.com/chessmate/chess-server-go/internal/repository"
	"github.com/chessmate/chess-server-go/internal/util"
)

type accessClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

type SignUpParams struct {
	Username    string
	Password    string
	Email       string
	DisplayName string
}

type SignInResult struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	UserID       string         `json:"userId"`
	DisplayName  string         `json:"displayName"`
	Role         model.UserRole `json:"role"`
}

type AuthService struct {
	userRepo        repository.UserRepository
	tokenRepo       repository.TokenRepository
	accessSecret    []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	accessSecret string,
	accessTokenTTL, refreshTokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		accessSecret:    []byte(accessSecret),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func (s *AuthService) SignUp(ctx context.Context, params SignUpParams) error {
	switch {
	case params.Username == "":
		return apperrors.MissingRequired("username")
	case params.Password == "":
		return apperrors.MissingRequired("password")
	case params.DisplayName == "":
		return apperrors.MissingRequired("displayName")
	case params.Email == "":
		return apperrors.MissingRequired("email")
	}
	if !util.IsValidEmail(params.Email) {
		return apperrors.InvalidInput("email", "not a valid address")
	}

	if existing, err := s.userRepo.FindByUsername(ctx, params.Username); err != nil {
		return apperrors.Database(err)
	} else if existing != nil {
		return apperrors.AlreadyExists("Username")
	}
	if existing, err := s.userRepo.FindByEmail(ctx, params.Email); err != nil {
		return apperrors.Database(err)
	} else if existing != nil {
		return apperrors.AlreadyExists("Email")
	}

	hash, err := util.HashPassword(params.Password)
	if err != nil {
		return apperrors.Internal("Failed to hash password").WithCause(err)
	}

	user, err := s.userRepo.Create(ctx, model.CreateUserParams{
		Username:     params.Username,
		PasswordHash: hash,
		DisplayName:  params.DisplayName,
		Email:        params.Email,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return apperrors.AlreadyExists("User")
		}
		return apperrors.Database(err)
	}

	log.Info().Str("userId", user.ID).Str("username", user.Username).Msg("user registered")
	return nil
}

func (s *AuthService) SignIn(ctx context.Context, username, password string) (*SignInResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.MissingRequired("username and password")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if user == nil || !util.CheckPasswordHash(password, user.Password) {
		return nil, apperrors.Unauthorized("Invalid username or password")
	}
	if !user.IsActive {
		return nil, apperrors.AccountDisabled()
	}

	accessToken, err := s.issueAccessToken(user.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue access token").WithCause(err)
	}

	refreshToken, err := util.GenerateToken()
	if err != nil {
		return nil, apperrors.Internal("Failed to generate refresh token").WithCause(err)
	}

	if _, err := s.tokenRepo.Create(ctx, model.CreateRefreshTokenParams{
		UserID:           user.ID,
		RefreshTokenHash: util.HashToken(refreshToken),
		ExpiresAt:        time.Now().Add(s.refreshTokenTTL),
	}); err != nil {
		return nil, apperrors.Database(err)
	}

	if err := s.userRepo.UpdateStatus(ctx, user.ID, "online"); err != nil {
		log.Warn().Err(err).Str("userId", user.ID).Msg("failed to mark user online")
	}

	log.Info().Str("userId", user.ID).Msg("user signed in")

	return &SignInResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		DisplayName:  user.DisplayName,
		Role:         user.Role,
	}, nil
}

// SignOut revokes the refresh token. Revoking an unknown token is a no-op.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperrors.MissingRequired("refreshToken")
	}

	tokenHash := util.HashToken(refreshToken)
	stored, err := s.tokenRepo.FindByHash(ctx, tokenHash)
	if err != nil {
		return apperrors.Database(err)
	}
	if stored == nil {
		return nil
	}

	if err := s.tokenRepo.Delete(ctx, tokenHash); err != nil {
		return apperrors.Database(err)
	}
	if err := s.userRepo.UpdateStatus(ctx, stored.UserID, "offline"); err != nil {
		log.Warn().Err(err).Str("userId", stored.UserID).Msg("failed to mark user offline")
	}

	log.Info().Str("userId", stored.UserID).Msg("user signed out")
	return nil
}

// SignOutAll revokes every refresh token the user holds, ending all of
// their sessions at once.
func (s *AuthService) SignOutAll(ctx context.Context, userID string) error {
	if err := s.tokenRepo.DeleteByUser(ctx, userID); err != nil {
		return apperrors.Database(err)
	}
	if err := s.userRepo.UpdateStatus(ctx, userID, "offline"); err != nil {
		log.Warn().Err(err).Str("userId", userID).Msg("failed to mark user offline")
	}

	log.Info().Str("userId", userID).Msg("user signed out of all sessions")
	return nil
}

// Refresh exchanges a live refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", apperrors.MissingRequired("refreshToken")
	}

	stored, err := s.tokenRepo.FindByHash(ctx, util.HashToken(refreshToken))
	if err != nil {
		return "", apperrors.Database(err)
	}
	if stored == nil {
		return "", apperrors.InvalidToken("Refresh token is invalid or expired")
	}

	accessToken, err := s.issueAccessToken(stored.UserID)
	if err != nil {
		return "", apperrors.Internal("Failed to issue access token").WithCause(err)
	}
	return accessToken, nil
}

// VerifyAccessToken parses and validates an access token, returning the
// subject user id.
func (s *AuthService) VerifyAccessToken(tokenString string) (string, error) {
	var claims accessClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return s.accessSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", apperrors.InvalidToken("Access token is invalid or expired").WithCause(err)
	}
	if claims.UserID == "" {
		return "", apperrors.InvalidToken("Access token has no subject")
	}
	return claims.UserID, nil
}

func (s *AuthService) issueAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.accessSecret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}
