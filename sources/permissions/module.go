package permissions

import "go.uber.org/fx"

var Module = fx.Module("permissions",
	fx.Provide(NewService),
)
