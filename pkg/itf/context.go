// Package itf provides test fixtures for code that depends on context-carried
// state: the database pool, an open transaction, the resolved tenant and the
// request session.
package itf

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/tenancy/modules/core/domain/entities/session"
	"github.com/iota-uz/tenancy/pkg/composables"
)

type ContextBuilder struct {
	ctx context.Context
}

func NewContext() *ContextBuilder {
	return &ContextBuilder{ctx: context.Background()}
}

func (b *ContextBuilder) WithPool(pool *pgxpool.Pool) *ContextBuilder {
	b.ctx = composables.WithPool(b.ctx, pool)
	return b
}

func (b *ContextBuilder) WithTx(tx pgx.Tx) *ContextBuilder {
	b.ctx = composables.WithTx(b.ctx, tx)
	return b
}

func (b *ContextBuilder) WithTenantID(id uuid.UUID) *ContextBuilder {
	b.ctx = composables.WithTenantID(b.ctx, id)
	return b
}

func (b *ContextBuilder) WithNoTenant() *ContextBuilder {
	b.ctx = composables.WithNoTenant(b.ctx)
	return b
}

func (b *ContextBuilder) WithSession(sess *session.Session) *ContextBuilder {
	b.ctx = composables.WithSession(b.ctx, sess)
	return b
}

func (b *ContextBuilder) Build() context.Context {
	return b.ctx
}
