package main

import (
	"context"

	"chatmesh/sources/bridge"
	"chatmesh/sources/chat"
	"chatmesh/sources/commands"
	"chatmesh/sources/configuration"
	"chatmesh/sources/external"
	"chatmesh/sources/features"
	"chatmesh/sources/messenger"
	"chatmesh/sources/metrics"
	"chatmesh/sources/network"
	"chatmesh/sources/permissions"
	"chatmesh/sources/persistence"
	"chatmesh/sources/proxy"
	"chatmesh/sources/repository"
	"chatmesh/sources/texting"
	"chatmesh/sources/throttler"
	"chatmesh/sources/tracing"

	"go.uber.org/fx"
)

var (
	version   = "0.0.0"
	buildTime = "1970-01-01"
)

func main() {
	fx.New(
		tracing.Module,
		configuration.Module,
		external.Module,
		network.Module,
		persistence.Module,
		metrics.Module,
		features.Module,
		repository.Module,
		throttler.Module,
		texting.Module,
		proxy.Module,
		permissions.Module,
		messenger.Module,
		chat.Module,
		commands.Module,
		bridge.Module,

		fx.Invoke(func(lc fx.Lifecycle, log *tracing.Logger, identity *repository.IdentityRepository) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					if err := identity.Refresh(log); err != nil {
						return err
					}
					log.I("Chatmesh started successfully", "version", version, "build_time", buildTime)
					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.I("Chatmesh stopped", "version", version, "build_time", buildTime)
					return nil
				},
			})
		}),
	).Run()
}
