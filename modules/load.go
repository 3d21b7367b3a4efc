package modules

import (
	"github.com/iota-uz/tenancy/modules/core"
	"github.com/iota-uz/tenancy/pkg/application"
)

var BuiltInModules = []application.Module{
	core.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
