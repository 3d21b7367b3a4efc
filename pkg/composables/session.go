package composables

import (
	"context"
	"errors"

	"github.com/iota-uz/tenancy/modules/core/domain/entities/session"
	"github.com/iota-uz/tenancy/pkg/constants"
)

var ErrNoSessionFound = errors.New("no session found in context")

func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, sess)
}

func UseSession(ctx context.Context) (*session.Session, error) {
	sess, ok := TryUseSession(ctx)
	if !ok {
		return nil, ErrNoSessionFound
	}
	return sess, nil
}

func TryUseSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(constants.SessionKey).(*session.Session)
	return sess, ok && sess != nil
}
