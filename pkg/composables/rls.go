package composables

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/tenancy/pkg/configuration"
)

// ApplyTenantRLS scopes tx to the ambient tenant read from ctx.
func ApplyTenantRLS(ctx context.Context, tx pgx.Tx) error {
	tenantID, err := UseTenantID(ctx)
	if err != nil {
		return err
	}
	return applyTenantScope(ctx, tx, tenantID)
}

// applyTenantScope issues the two statements row-level security depends on:
// first SET LOCAL ROLE to the restricted application role, then the
// transaction-local tenant stamp. The order is a contract with the storage
// layer and must not change. Both statements revert at transaction end, so a
// pooled connection never carries tenant state to its next borrower.
func applyTenantScope(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID) error {
	conf := configuration.Use()
	if _, err := tx.Exec(ctx, "SET LOCAL ROLE "+pgx.Identifier{conf.RLS.Role}.Sanitize()); err != nil {
		return fmt.Errorf("failed to switch to rls role: %w", err)
	}
	if _, err := tx.Exec(ctx, "SELECT set_config($1, $2, true)", conf.RLS.TenantVar, tenantID.String()); err != nil {
		return fmt.Errorf("failed to set rls tenant context: %w", err)
	}
	return nil
}
