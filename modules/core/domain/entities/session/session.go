package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is consumed, never issued, by this kit: authentication lives in the
// host application. ActiveOrganizationID drives tenant resolution; nil means
// the user has no active organization and resolves to no tenant.
type Session struct {
	Token                string
	UserID               uint
	ActiveOrganizationID *uuid.UUID
	IP                   string
	UserAgent            string
	ExpiresAt            time.Time
	CreatedAt            time.Time
}

func (s *Session) IsExpired() bool {
	return s.ExpiresAt.Before(time.Now())
}

type Repository interface {
	GetByToken(ctx context.Context, token string) (*Session, error)
	Create(ctx context.Context, s *Session) error
	Delete(ctx context.Context, token string) error
}
