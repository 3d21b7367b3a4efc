package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/tenancy/pkg/constants"
)

var (
	// ErrDatabaseUnavailable is returned when no pool has been attached to the
	// context. No transaction is opened in that case.
	ErrDatabaseUnavailable = errors.New("database is not configured")
	// ErrTenantContextMissing is returned when a tenant-scoped query is
	// attempted on a request that resolved to no tenant, or was never
	// resolved at all. Scoped queries never run unrestricted by default; use
	// InTenantTxAs for pre-authorized cross-tenant work.
	ErrTenantContextMissing = errors.New("tenant context is missing")
)

// InTenantTx runs fn inside a transaction scoped to the ambient tenant. The
// transaction is stamped (role switch, then tenant variable) before fn sees
// it. fn's error aborts the transaction and is returned as-is.
func InTenantTx(ctx context.Context, fn func(context.Context) error) error {
	if existing, ok := ctx.Value(constants.TxKey).(pgx.Tx); ok && existing != nil {
		if err := ApplyTenantRLS(ctx, existing); err != nil {
			return err
		}
		return fn(ctx)
	}

	pool, err := UsePool(ctx)
	if err != nil {
		return ErrDatabaseUnavailable
	}
	tenantID, err := UseTenantID(ctx)
	if err != nil {
		return err
	}
	return inScopedTx(ctx, pool, tenantID, fn)
}

// InTenantTxAs is the explicit-tenant escape hatch: it stamps the supplied
// tenant id instead of reading the ambient one, and works without any
// resolved request context. Callers are responsible for having authorized the
// cross-tenant access; the transaction still goes through RLS stamping.
func InTenantTxAs(ctx context.Context, tenantID uuid.UUID, fn func(context.Context) error) error {
	if existing, ok := ctx.Value(constants.TxKey).(pgx.Tx); ok && existing != nil {
		if err := applyTenantScope(ctx, existing, tenantID); err != nil {
			return err
		}
		return fn(ctx)
	}

	pool, err := UsePool(ctx)
	if err != nil {
		return ErrDatabaseUnavailable
	}
	return inScopedTx(ctx, pool, tenantID, fn)
}

func inScopedTx(ctx context.Context, pool *pgxpool.Pool, tenantID uuid.UUID, fn func(context.Context) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}

	txCtx := WithTx(ctx, tx)
	if err := applyTenantScope(txCtx, tx, tenantID); err != nil {
		if rErr := tx.Rollback(ctx); rErr != nil {
			return errors.Join(err, rErr)
		}
		return err
	}

	if err := fn(txCtx); err != nil {
		if rErr := tx.Rollback(ctx); rErr != nil {
			return errors.Join(err, rErr)
		}
		return err
	}
	return tx.Commit(ctx)
}

func InTenantTxResult[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := InTenantTx(ctx, func(txCtx context.Context) error {
		var innerErr error
		out, innerErr = fn(txCtx)
		return innerErr
	})
	return out, err
}

func InTenantTxResultAs[T any](ctx context.Context, tenantID uuid.UUID, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := InTenantTxAs(ctx, tenantID, func(txCtx context.Context) error {
		var innerErr error
		out, innerErr = fn(txCtx)
		return innerErr
	})
	return out, err
}
