package composables

import (
	"context"

	"github.com/google/uuid"

	"github.com/iota-uz/tenancy/pkg/constants"
)

// tenantScope is the request-scoped resolution result. ok == false is the
// explicit "no tenant" marker written for anonymous requests; it is distinct
// from the key being absent, which means resolution never ran.
type tenantScope struct {
	id uuid.UUID
	ok bool
}

// WithTenantID marks the request as resolved to the given tenant.
func WithTenantID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.TenantKey, tenantScope{id: id, ok: true})
}

// WithNoTenant marks the request as resolved to no tenant at all.
func WithNoTenant(ctx context.Context) context.Context {
	return context.WithValue(ctx, constants.TenantKey, tenantScope{})
}

// UseTenantID returns the ambient tenant id. Both an unresolved request and
// one explicitly resolved to "no tenant" yield ErrTenantContextMissing.
func UseTenantID(ctx context.Context) (uuid.UUID, error) {
	scope, resolved := ctx.Value(constants.TenantKey).(tenantScope)
	if !resolved || !scope.ok {
		return uuid.Nil, ErrTenantContextMissing
	}
	return scope.id, nil
}

// TryUseTenantID is UseTenantID without the error plumbing.
func TryUseTenantID(ctx context.Context) (uuid.UUID, bool) {
	scope, resolved := ctx.Value(constants.TenantKey).(tenantScope)
	if !resolved || !scope.ok {
		return uuid.Nil, false
	}
	return scope.id, true
}

// TenantResolved reports whether the resolver already ran for this request,
// regardless of the outcome.
func TenantResolved(ctx context.Context) bool {
	_, resolved := ctx.Value(constants.TenantKey).(tenantScope)
	return resolved
}
