package services

import (
	"context"
	"errors"

	"github.com/iota-uz/tenancy/modules/core/domain/entities/session"
)

var ErrSessionExpired = errors.New("session expired")

// AuthService only consumes sessions; issuing them is the host application's
// concern.
type AuthService struct {
	sessions session.Repository
}

func NewAuthService(sessions session.Repository) *AuthService {
	return &AuthService{sessions: sessions}
}

func (s *AuthService) SessionFromToken(ctx context.Context, token string) (*session.Session, error) {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess.IsExpired() {
		return nil, ErrSessionExpired
	}
	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
