package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/homeledger/internal/common"
	"github.com/dmitrijs2005/homeledger/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestServer(t *testing.T) *GRPCServer {
	t.Helper()
	return &GRPCServer{jwtSecret: []byte("test-secret")}
}

func ctxWithToken(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	s := newTestServer(t)

	token, err := auth.GenerateToken("user-1", s.jwtSecret, time.Minute)
	require.NoError(t, err)

	authed, err := s.authenticate(ctxWithToken(token))
	require.NoError(t, err)
	assert.Equal(t, "user-1", authed.Value(userIDKey))
}

func TestAuthenticate_MissingToken(t *testing.T) {
	s := newTestServer(t)

	_, err := s.authenticate(context.Background())
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Unauthenticated, st.Code())
}

func TestAuthenticate_ExpiredTokenSignalsRefresh(t *testing.T) {
	s := newTestServer(t)

	token, err := auth.GenerateToken("user-1", s.jwtSecret, -time.Minute)
	require.NoError(t, err)

	_, err = s.authenticate(ctxWithToken(token))
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, common.ErrTokenExpired.Error(), st.Message(),
		"clients rely on this message to trigger a token refresh")
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	s := newTestServer(t)

	token, err := auth.GenerateToken("user-1", []byte("other-secret"), time.Minute)
	require.NoError(t, err)

	_, err = s.authenticate(ctxWithToken(token))
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, "invalid token", st.Message())
}
