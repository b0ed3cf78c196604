package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/homeledger/internal/common"
	sc "github.com/dmitrijs2005/homeledger/internal/server/config"
	"github.com/dmitrijs2005/homeledger/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	byName map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byName: map[string]*models.User{}}
}

func (r *memUsers) Create(ctx context.Context, u *models.User) error {
	if _, ok := r.byName[u.Username]; ok {
		return common.ErrorUsernameTaken
	}
	r.byName[u.Username] = u
	return nil
}

func (r *memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := r.byName[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type memRefreshTokens struct {
	byToken map[string]*models.RefreshToken
}

func newMemRefreshTokens() *memRefreshTokens {
	return &memRefreshTokens{byToken: map[string]*models.RefreshToken{}}
}

func (r *memRefreshTokens) Create(ctx context.Context, t *models.RefreshToken) error {
	r.byToken[t.Token] = t
	return nil
}

func (r *memRefreshTokens) DeleteForUser(ctx context.Context, userID string) error {
	for token, t := range r.byToken {
		if t.UserID == userID {
			delete(r.byToken, token)
		}
	}
	return nil
}

func (r *memRefreshTokens) Consume(ctx context.Context, token string) (*models.RefreshToken, error) {
	t, ok := r.byToken[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(r.byToken, token)
	return t, nil
}

func testConfig() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc := NewUserService(newMemUsers(), newMemRefreshTokens(), testConfig())
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "hunter2", string(user.PasswordHash))

	pair, err := svc.Login(ctx, "alice", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	svc := NewUserService(newMemUsers(), newMemRefreshTokens(), testConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, common.ErrorUsernameTaken)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	svc := NewUserService(newMemUsers(), newMemRefreshTokens(), testConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = svc.Login(ctx, "nobody", "hunter2")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUserService_RefreshRotatesToken(t *testing.T) {
	tokens := newMemRefreshTokens()
	svc := NewUserService(newMemUsers(), tokens, testConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter2")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", "hunter2")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// the consumed token cannot be used again
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}

func TestUserService_RefreshExpiredToken(t *testing.T) {
	tokens := newMemRefreshTokens()
	svc := NewUserService(newMemUsers(), tokens, testConfig())
	ctx := context.Background()

	require.NoError(t, tokens.Create(ctx, &models.RefreshToken{
		Token:     "stale",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := svc.Refresh(ctx, "stale")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)
}
