package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/tenancy/modules/core/domain/entities/organization"
	"github.com/iota-uz/tenancy/pkg/composables"
)

// TenantResolverService computes the effective tenant of a request: none for
// anonymous requests, the active organization for roots, its parent for
// sub-organizations. The result is cached on the context for the rest of the
// request.
type TenantResolverService struct {
	orgs   organization.Repository
	logger *logrus.Logger
}

func NewTenantResolverService(orgs organization.Repository, logger *logrus.Logger) *TenantResolverService {
	return &TenantResolverService{
		orgs:   orgs,
		logger: logger,
	}
}

// Resolve returns a context carrying the effective tenant id. Calling it on
// an already-resolved context is a no-op: the hierarchy lookup runs at most
// once per request. Resolution never fails the request; when the lookup
// errors the active organization is used as its own tenant.
func (s *TenantResolverService) Resolve(ctx context.Context) context.Context {
	if composables.TenantResolved(ctx) {
		return ctx
	}

	sess, ok := composables.TryUseSession(ctx)
	if !ok || sess.ActiveOrganizationID == nil {
		return composables.WithNoTenant(ctx)
	}

	active := *sess.ActiveOrganizationID
	org, err := s.orgs.GetByID(ctx, active)
	if err != nil {
		s.logger.WithError(err).
			WithField("organization_id", active).
			Warn("tenant resolution lookup failed, using active organization as tenant")
		return composables.WithTenantID(ctx, active)
	}

	// Sub-organizations inherit the parent's tenant scope. Resolution is a
	// single hop: a parent that itself has a parent is not walked further.
	if parentID := org.ParentID(); parentID != nil {
		return composables.WithTenantID(ctx, *parentID)
	}
	return composables.WithTenantID(ctx, active)
}
