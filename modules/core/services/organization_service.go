package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/iota-uz/tenancy/modules/core/domain/entities/organization"
	"github.com/iota-uz/tenancy/pkg/composables"
	"github.com/iota-uz/tenancy/pkg/eventbus"
)

type OrganizationService struct {
	repo      organization.Repository
	publisher eventbus.EventBus
}

func NewOrganizationService(repo organization.Repository, publisher eventbus.EventBus) *OrganizationService {
	return &OrganizationService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *OrganizationService) GetByID(ctx context.Context, id uuid.UUID) (*organization.Organization, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (*organization.Organization, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *OrganizationService) List(ctx context.Context) ([]*organization.Organization, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]*organization.Organization, error) {
		return s.repo.List(txCtx)
	})
}

func (s *OrganizationService) GetChildren(ctx context.Context, parentID uuid.UUID) ([]*organization.Organization, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]*organization.Organization, error) {
		return s.repo.GetChildren(txCtx, parentID)
	})
}

// Create persists a new organization. A root organization is its own tenant
// and does not exist yet when the transaction is stamped, so the write runs
// under its future tenant id explicitly; sub-organizations are created inside
// the ambient tenant scope.
func (s *OrganizationService) Create(ctx context.Context, org *organization.Organization) (*organization.Organization, error) {
	var created *organization.Organization
	var err error
	if org.IsRoot() {
		created, err = composables.InTenantTxResultAs(ctx, org.ID(), func(txCtx context.Context) (*organization.Organization, error) {
			return s.repo.Create(txCtx, org)
		})
	} else {
		created, err = composables.InTenantTxResult(ctx, func(txCtx context.Context) (*organization.Organization, error) {
			return s.repo.Create(txCtx, org)
		})
	}
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(organization.NewCreatedEvent(ctx, created))
	return created, nil
}

func (s *OrganizationService) Update(ctx context.Context, org *organization.Organization) (*organization.Organization, error) {
	updated, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (*organization.Organization, error) {
		return s.repo.Update(txCtx, org)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(organization.NewUpdatedEvent(ctx, updated))
	return updated, nil
}

func (s *OrganizationService) Delete(ctx context.Context, id uuid.UUID) error {
	entity, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = composables.InTenantTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(organization.NewDeletedEvent(ctx, entity))
	return nil
}
