package proxy

import (
	"chatmesh/sources/configuration"
	"chatmesh/sources/tracing"

	"go.uber.org/fx"
)

var Module = fx.Module("proxy",
	fx.Provide(NewDispatcher),
	fx.Provide(func(log *tracing.Logger, dispatcher *Dispatcher, config *configuration.Config) *Proxy {
		return NewProxy(log, dispatcher, config.Servers)
	}),
)
