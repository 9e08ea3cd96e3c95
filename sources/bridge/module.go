package bridge

import (
	"context"

	"chatmesh/sources/configuration"
	"chatmesh/sources/proxy"
	"chatmesh/sources/tracing"

	"go.uber.org/fx"
)

var Module = fx.Module("bridge",
	fx.Provide(
		NewMainBot,
		NewBindings,
		NewCourier,
		NewListener,
	),

	fx.Invoke(func(lc fx.Lifecycle, config *configuration.Config, dispatcher *proxy.Dispatcher, courier *Courier, listener *Listener, log *tracing.Logger) {
		if !config.Bridge.Enable {
			return
		}

		proxy.Subscribe(dispatcher, courier.OnChat)
		proxy.Subscribe(dispatcher, courier.OnMain)

		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go listener.Start()
				log.I("Bridge poller started")
				return nil
			},
			OnStop: func(ctx context.Context) error {
				listener.Stop()
				log.I("Bridge poller stopped")
				return nil
			},
		})
	}),
)
