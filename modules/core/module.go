package core

import (
	"github.com/iota-uz/tenancy/modules/core/infrastructure/persistence"
	"github.com/iota-uz/tenancy/modules/core/presentation/controllers"
	"github.com/iota-uz/tenancy/modules/core/services"
	"github.com/iota-uz/tenancy/pkg/application"
)

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "core"
}

func (m *Module) Register(app application.Application) error {
	organizationRepo := persistence.NewOrganizationRepository()
	sessionRepo := persistence.NewSessionRepository()

	app.RegisterServices(
		services.NewOrganizationService(organizationRepo, app.EventPublisher()),
		services.NewTenantResolverService(organizationRepo, app.Logger()),
		services.NewAuthService(sessionRepo),
	)

	app.RegisterControllers(
		controllers.NewHealthController(app),
		controllers.NewOrganizationsAPIController(app),
	)

	return nil
}
