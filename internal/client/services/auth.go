package services

import (
	"context"

	"github.com/dmitrijs2005/homeledger/internal/client/client"
	"github.com/dmitrijs2005/homeledger/internal/client/session"
)

// AuthService handles registration and login against the backend. Both
// require connectivity; a household member must sign in once online before
// the client is useful offline.
type AuthService struct {
	client  client.Client
	session *session.Session
}

func NewAuthService(c client.Client, sess *session.Session) *AuthService {
	return &AuthService{client: c, session: sess}
}

func (s *AuthService) Register(ctx context.Context, username string, password string) error {
	return s.client.Register(ctx, username, password)
}

func (s *AuthService) Login(ctx context.Context, username string, password string) error {
	if err := s.client.Login(ctx, username, password); err != nil {
		return err
	}
	s.session.Reset()
	s.session.SetUsername(username)
	return nil
}
