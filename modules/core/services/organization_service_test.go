package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/tenancy/modules/core/domain/entities/organization"
	"github.com/iota-uz/tenancy/modules/core/services"
	"github.com/iota-uz/tenancy/pkg/composables"
	"github.com/iota-uz/tenancy/pkg/eventbus"
	"github.com/iota-uz/tenancy/pkg/itf"
)

// memoryOrgRepository is a map-backed organization.Repository. It requires an
// ambient transaction, mirroring how the real repository behaves inside the
// scoped executor.
type memoryOrgRepository struct {
	orgs map[uuid.UUID]*organization.Organization
}

func newMemoryOrgRepository() *memoryOrgRepository {
	return &memoryOrgRepository{orgs: map[uuid.UUID]*organization.Organization{}}
}

func (r *memoryOrgRepository) GetByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error) {
	org, ok := r.orgs[id]
	if !ok {
		return nil, errOrganizationNotFound
	}
	return org, nil
}

func (r *memoryOrgRepository) GetChildren(ctx context.Context, parentID uuid.UUID) ([]*organization.Organization, error) {
	var out []*organization.Organization
	for _, org := range r.orgs {
		if org.ParentID() != nil && *org.ParentID() == parentID {
			out = append(out, org)
		}
	}
	return out, nil
}

func (r *memoryOrgRepository) Create(ctx context.Context, org *organization.Organization) (*organization.Organization, error) {
	r.orgs[org.ID()] = org
	return org, nil
}

func (r *memoryOrgRepository) Update(ctx context.Context, org *organization.Organization) (*organization.Organization, error) {
	r.orgs[org.ID()] = org
	return org, nil
}

func (r *memoryOrgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.orgs, id)
	return nil
}

func (r *memoryOrgRepository) List(ctx context.Context) ([]*organization.Organization, error) {
	out := make([]*organization.Organization, 0, len(r.orgs))
	for _, org := range r.orgs {
		out = append(out, org)
	}
	return out, nil
}

var errOrganizationNotFound = errors.New("organization not found")

func TestOrganizationService_Create_RootIsStampedAsItself(t *testing.T) {
	repo := newMemoryOrgRepository()
	bus := eventbus.NewEventPublisher(quietLogger())
	service := services.NewOrganizationService(repo, bus)

	var published *organization.CreatedEvent
	bus.Subscribe(func(event *organization.CreatedEvent) {
		published = event
	})

	tx := itf.NewRecordingTx()
	// No resolved tenant: a root organization does not exist yet, so its
	// creation cannot rely on ambient scope.
	ctx := itf.NewContext().WithTx(tx).Build()

	root := organization.New("acme")
	created, err := service.Create(ctx, root)
	require.NoError(t, err)

	stamps := tx.ExecsWithPrefix("SELECT set_config")
	require.Len(t, stamps, 1)
	assert.Equal(t, created.ID().String(), stamps[0].Args[1])

	require.NotNil(t, published)
	assert.Equal(t, created, published.Result)
}

func TestOrganizationService_Create_SubUsesAmbientTenant(t *testing.T) {
	repo := newMemoryOrgRepository()
	bus := eventbus.NewEventPublisher(quietLogger())
	service := services.NewOrganizationService(repo, bus)

	tenantID := uuid.New()
	tx := itf.NewRecordingTx()
	ctx := itf.NewContext().WithTenantID(tenantID).WithTx(tx).Build()

	parentID := uuid.New()
	sub := organization.New("acme west", organization.WithParentID(&parentID))
	_, err := service.Create(ctx, sub)
	require.NoError(t, err)

	stamps := tx.ExecsWithPrefix("SELECT set_config")
	require.Len(t, stamps, 1)
	assert.Equal(t, tenantID.String(), stamps[0].Args[1])
}

func TestOrganizationService_Create_SubWithoutTenantFails(t *testing.T) {
	repo := newMemoryOrgRepository()
	bus := eventbus.NewEventPublisher(quietLogger())
	service := services.NewOrganizationService(repo, bus)

	bus.Subscribe(func(event *organization.CreatedEvent) {
		t.Fatal("no event must be published for a failed create")
	})

	tx := itf.NewRecordingTx()
	ctx := itf.NewContext().WithNoTenant().WithTx(tx).Build()

	parentID := uuid.New()
	sub := organization.New("acme west", organization.WithParentID(&parentID))
	_, err := service.Create(ctx, sub)
	require.ErrorIs(t, err, composables.ErrTenantContextMissing)
	assert.Empty(t, repo.orgs)
}

func TestOrganizationService_Delete_PublishesDeletedEvent(t *testing.T) {
	repo := newMemoryOrgRepository()
	bus := eventbus.NewEventPublisher(quietLogger())
	service := services.NewOrganizationService(repo, bus)

	var published *organization.DeletedEvent
	bus.Subscribe(func(event *organization.DeletedEvent) {
		published = event
	})

	root := organization.New("acme")
	repo.orgs[root.ID()] = root

	tx := itf.NewRecordingTx()
	ctx := itf.NewContext().WithTenantID(root.ID()).WithTx(tx).Build()

	require.NoError(t, service.Delete(ctx, root.ID()))
	assert.Empty(t, repo.orgs)

	require.NotNil(t, published)
	assert.Equal(t, root, published.Result)
}
