package app

import (
	"go.uber.org/fx"

	"github.com/Alijeyrad/reqtrace/internal/service/inspect"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideInspectService,
	),
)

func ProvideInspectService() inspect.Service {
	return inspect.New()
}
