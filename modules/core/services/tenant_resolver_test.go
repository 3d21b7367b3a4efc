package services_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/tenancy/modules/core/domain/entities/organization"
	"github.com/iota-uz/tenancy/modules/core/domain/entities/session"
	"github.com/iota-uz/tenancy/modules/core/services"
	"github.com/iota-uz/tenancy/pkg/composables"
)

// fakeOrgRepository serves GetByID from a fixed map and counts lookups so
// tests can assert the hierarchy is hit at most once per request.
type fakeOrgRepository struct {
	organization.Repository
	orgs    map[uuid.UUID]*organization.Organization
	err     error
	lookups int
}

func (f *fakeOrgRepository) GetByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	org, ok := f.orgs[id]
	if !ok {
		return nil, errors.New("organization not found")
	}
	return org, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sessionWith(orgID *uuid.UUID) *session.Session {
	return &session.Session{
		Token:                "test-token",
		UserID:               1,
		ActiveOrganizationID: orgID,
	}
}

func TestResolve_AnonymousRequest(t *testing.T) {
	repo := &fakeOrgRepository{}
	resolver := services.NewTenantResolverService(repo, quietLogger())

	ctx := resolver.Resolve(context.Background())

	assert.True(t, composables.TenantResolved(ctx))
	_, err := composables.UseTenantID(ctx)
	require.ErrorIs(t, err, composables.ErrTenantContextMissing)
	assert.Zero(t, repo.lookups)
}

func TestResolve_SessionWithoutActiveOrganization(t *testing.T) {
	repo := &fakeOrgRepository{}
	resolver := services.NewTenantResolverService(repo, quietLogger())

	ctx := composables.WithSession(context.Background(), sessionWith(nil))
	ctx = resolver.Resolve(ctx)

	assert.True(t, composables.TenantResolved(ctx))
	_, err := composables.UseTenantID(ctx)
	require.ErrorIs(t, err, composables.ErrTenantContextMissing)
	assert.Zero(t, repo.lookups)
}

func TestResolve_RootOrganizationIsItsOwnTenant(t *testing.T) {
	root := organization.New("acme")
	repo := &fakeOrgRepository{orgs: map[uuid.UUID]*organization.Organization{root.ID(): root}}
	resolver := services.NewTenantResolverService(repo, quietLogger())

	rootID := root.ID()
	ctx := composables.WithSession(context.Background(), sessionWith(&rootID))
	ctx = resolver.Resolve(ctx)

	got, err := composables.UseTenantID(ctx)
	require.NoError(t, err)
	assert.Equal(t, root.ID(), got)
}

func TestResolve_SubOrganizationInheritsParent(t *testing.T) {
	root := organization.New("acme")
	rootID := root.ID()
	sub := organization.New("acme west", organization.WithParentID(&rootID))
	repo := &fakeOrgRepository{orgs: map[uuid.UUID]*organization.Organization{
		root.ID(): root,
		sub.ID():  sub,
	}}
	resolver := services.NewTenantResolverService(repo, quietLogger())

	subID := sub.ID()
	ctx := composables.WithSession(context.Background(), sessionWith(&subID))
	ctx = resolver.Resolve(ctx)

	got, err := composables.UseTenantID(ctx)
	require.NoError(t, err)
	assert.Equal(t, root.ID(), got)
}

func TestResolve_SingleHopIgnoresGrandparent(t *testing.T) {
	grandparent := organization.New("holding")
	grandparentID := grandparent.ID()
	parent := organization.New("acme", organization.WithParentID(&grandparentID))
	parentID := parent.ID()
	child := organization.New("acme west", organization.WithParentID(&parentID))
	repo := &fakeOrgRepository{orgs: map[uuid.UUID]*organization.Organization{
		grandparent.ID(): grandparent,
		parent.ID():      parent,
		child.ID():       child,
	}}
	resolver := services.NewTenantResolverService(repo, quietLogger())

	childID := child.ID()
	ctx := composables.WithSession(context.Background(), sessionWith(&childID))
	ctx = resolver.Resolve(ctx)

	// Inheritance is one hop: the child's tenant is its direct parent even
	// when the parent has a parent of its own.
	got, err := composables.UseTenantID(ctx)
	require.NoError(t, err)
	assert.Equal(t, parent.ID(), got)
	assert.Equal(t, 1, repo.lookups)
}

func TestResolve_LookupFailureFallsBackToActiveOrganization(t *testing.T) {
	repo := &fakeOrgRepository{err: errors.New("connection refused")}
	resolver := services.NewTenantResolverService(repo, quietLogger())

	orgID := uuid.New()
	ctx := composables.WithSession(context.Background(), sessionWith(&orgID))
	ctx = resolver.Resolve(ctx)

	got, err := composables.UseTenantID(ctx)
	require.NoError(t, err)
	assert.Equal(t, orgID, got)
}

func TestResolve_Idempotent(t *testing.T) {
	root := organization.New("acme")
	repo := &fakeOrgRepository{orgs: map[uuid.UUID]*organization.Organization{root.ID(): root}}
	resolver := services.NewTenantResolverService(repo, quietLogger())

	rootID := root.ID()
	ctx := composables.WithSession(context.Background(), sessionWith(&rootID))
	ctx = resolver.Resolve(ctx)
	ctx = resolver.Resolve(ctx)
	ctx = resolver.Resolve(ctx)

	got, err := composables.UseTenantID(ctx)
	require.NoError(t, err)
	assert.Equal(t, root.ID(), got)
	assert.Equal(t, 1, repo.lookups)
}

func TestResolve_IdempotentForAnonymous(t *testing.T) {
	repo := &fakeOrgRepository{}
	resolver := services.NewTenantResolverService(repo, quietLogger())

	ctx := resolver.Resolve(context.Background())
	ctx = resolver.Resolve(ctx)

	assert.True(t, composables.TenantResolved(ctx))
	assert.Zero(t, repo.lookups)
}
