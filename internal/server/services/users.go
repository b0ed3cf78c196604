// Package services implements the server-side application logic behind the
// gRPC handlers: accounts and tokens, ledger writes with realtime
// publication, and receipt presigning.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/homeledger/internal/common"
	"github.com/dmitrijs2005/homeledger/internal/server/auth"
	sc "github.com/dmitrijs2005/homeledger/internal/server/config"
	"github.com/dmitrijs2005/homeledger/internal/server/models"
	"github.com/dmitrijs2005/homeledger/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/homeledger/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair carries a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService struct {
	users         users.Repository
	refreshTokens refreshtokens.Repository
	config        *sc.Config
}

func NewUserService(ur users.Repository, rr refreshtokens.Repository, config *sc.Config) *UserService {
	return &UserService{users: ur, refreshTokens: rr, config: config}
}

func (s *UserService) Register(ctx context.Context, username string, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: empty username or password", common.ErrorInternal)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("password hash error: %w", err)
	}

	user := &models.User{ID: uuid.NewString(), Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, username string, password string) (*TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return s.issueTokens(ctx, user.ID)
}

// Refresh rotates the refresh token: the presented token is consumed and a
// new pair is issued. An expired or unknown token returns
// common.ErrRefreshTokenExpired.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.refreshTokens.Consume(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrRefreshTokenExpired
		}
		return nil, err
	}

	if time.Now().After(token.ExpiresAt) {
		return nil, common.ErrRefreshTokenExpired
	}

	return s.issueTokens(ctx, token.UserID)
}

func (s *UserService) issueTokens(ctx context.Context, userID string) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, []byte(s.config.SecretKey), s.config.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	refresh := &models.RefreshToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.config.RefreshTokenValidityDuration),
	}
	if err := s.refreshTokens.Create(ctx, refresh); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh.Token}, nil
}
