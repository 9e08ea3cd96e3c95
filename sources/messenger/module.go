package messenger

import (
	"chatmesh/sources/configuration"
	"chatmesh/sources/metrics"
	"chatmesh/sources/permissions"
	"chatmesh/sources/proxy"
	"chatmesh/sources/repository"
	"chatmesh/sources/texting"
	"chatmesh/sources/tracing"

	"go.uber.org/fx"
)

var Module = fx.Module("messenger",
	fx.Provide(func(
		log *tracing.Logger,
		config *configuration.Config,
		sink *proxy.Proxy,
		transformer *texting.Transformer,
		nicknames *repository.NicknamesRepository,
		permissions *permissions.Service,
		metrics *metrics.MetricsService,
	) *Messenger {
		return NewMessenger(log, config, sink, transformer, nicknames, permissions, metrics)
	}),
)
