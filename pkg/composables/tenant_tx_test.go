package composables_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/tenancy/pkg/composables"
	"github.com/iota-uz/tenancy/pkg/configuration"
)

type execCall struct {
	sql  string
	args []any
}

// fakeTx records the statements the scoped executor issues. Only the methods
// the executor touches are implemented; anything else panics through the nil
// embedded interface.
type fakeTx struct {
	pgx.Tx
	execs    []execCall
	failOn   string
	failWith error
	commits  int
}

func (f *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.failOn != "" && strings.HasPrefix(sql, f.failOn) {
		return pgconn.CommandTag{}, f.failWith
	}
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	return pgconn.CommandTag{}, nil
}

func (f *fakeTx) Commit(ctx context.Context) error {
	f.commits++
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	return nil
}

func TestInTenantTx_StampsRoleBeforeTenant(t *testing.T) {
	conf := configuration.Use()
	tenantID := uuid.New()
	tx := &fakeTx{}

	ctx := composables.WithTenantID(context.Background(), tenantID)
	ctx = composables.WithTx(ctx, tx)

	var fnCalled bool
	err := composables.InTenantTx(ctx, func(txCtx context.Context) error {
		fnCalled = true
		// Statements run by fn must observe role and tenant already applied.
		require.Len(t, tx.execs, 2)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, fnCalled)

	require.Len(t, tx.execs, 2)
	assert.Equal(t, "SET LOCAL ROLE "+pgx.Identifier{conf.RLS.Role}.Sanitize(), tx.execs[0].sql)
	assert.Equal(t, "SELECT set_config($1, $2, true)", tx.execs[1].sql)
	assert.Equal(t, []any{conf.RLS.TenantVar, tenantID.String()}, tx.execs[1].args)
}

func TestInTenantTx_WorkErrorReturnedUnchanged(t *testing.T) {
	tx := &fakeTx{}
	ctx := composables.WithTenantID(context.Background(), uuid.New())
	ctx = composables.WithTx(ctx, tx)

	workErr := errors.New("duplicate key value violates unique constraint")
	err := composables.InTenantTx(ctx, func(context.Context) error {
		return workErr
	})
	require.ErrorIs(t, err, workErr)
	assert.Equal(t, workErr, err)
}

func TestInTenantTx_NoPool(t *testing.T) {
	err := composables.InTenantTx(context.Background(), func(context.Context) error {
		t.Fatal("work must not run without a database")
		return nil
	})
	require.ErrorIs(t, err, composables.ErrDatabaseUnavailable)
}

func TestInTenantTx_NoTenant(t *testing.T) {
	tx := &fakeTx{}
	ctx := composables.WithTx(context.Background(), tx)

	err := composables.InTenantTx(ctx, func(context.Context) error {
		t.Fatal("work must not run without a tenant")
		return nil
	})
	require.ErrorIs(t, err, composables.ErrTenantContextMissing)
	assert.Empty(t, tx.execs)
}

func TestInTenantTx_NoTenantMarker(t *testing.T) {
	tx := &fakeTx{}
	ctx := composables.WithNoTenant(context.Background())
	ctx = composables.WithTx(ctx, tx)

	err := composables.InTenantTx(ctx, func(context.Context) error {
		t.Fatal("work must not run for a request resolved to no tenant")
		return nil
	})
	require.ErrorIs(t, err, composables.ErrTenantContextMissing)
	assert.Empty(t, tx.execs)
}

func TestInTenantTx_StampFailureAbortsBeforeWork(t *testing.T) {
	stampErr := errors.New("role \"tenancy_app\" does not exist")
	tx := &fakeTx{failOn: "SET LOCAL ROLE", failWith: stampErr}

	ctx := composables.WithTenantID(context.Background(), uuid.New())
	ctx = composables.WithTx(ctx, tx)

	err := composables.InTenantTx(ctx, func(context.Context) error {
		t.Fatal("work must not run when stamping fails")
		return nil
	})
	require.ErrorIs(t, err, stampErr)
	assert.Empty(t, tx.execs)
}

func TestInTenantTxAs_WorksWithoutAmbientTenant(t *testing.T) {
	conf := configuration.Use()
	tenantID := uuid.New()
	tx := &fakeTx{}

	// No session, no resolved tenant on the context.
	ctx := composables.WithTx(context.Background(), tx)

	err := composables.InTenantTxAs(ctx, tenantID, func(context.Context) error {
		return nil
	})
	require.NoError(t, err)

	require.Len(t, tx.execs, 2)
	assert.Equal(t, []any{conf.RLS.TenantVar, tenantID.String()}, tx.execs[1].args)
}

func TestInTenantTxAs_OverridesAmbientTenant(t *testing.T) {
	ambient := uuid.New()
	explicit := uuid.New()
	tx := &fakeTx{}

	ctx := composables.WithTenantID(context.Background(), ambient)
	ctx = composables.WithTx(ctx, tx)

	err := composables.InTenantTxAs(ctx, explicit, func(context.Context) error {
		return nil
	})
	require.NoError(t, err)

	require.Len(t, tx.execs, 2)
	assert.Equal(t, explicit.String(), tx.execs[1].args[1])
}

func TestInTenantTxAs_NoPool(t *testing.T) {
	err := composables.InTenantTxAs(context.Background(), uuid.New(), func(context.Context) error {
		t.Fatal("work must not run without a database")
		return nil
	})
	require.ErrorIs(t, err, composables.ErrDatabaseUnavailable)
}

func TestInTenantTxResult(t *testing.T) {
	tx := &fakeTx{}
	ctx := composables.WithTenantID(context.Background(), uuid.New())
	ctx = composables.WithTx(ctx, tx)

	got, err := composables.InTenantTxResult(ctx, func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	workErr := errors.New("boom")
	_, err = composables.InTenantTxResult(ctx, func(context.Context) (int, error) {
		return 0, workErr
	})
	require.ErrorIs(t, err, workErr)
}
