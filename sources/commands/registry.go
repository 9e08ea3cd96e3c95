package commands

import (
	"errors"

	"chatmesh/sources/metrics"
	"chatmesh/sources/proxy"
	"chatmesh/sources/tracing"
)

var (
	ErrUsage            = errors.New("wrong command usage")
	ErrUnknownPlayer    = errors.New("that player is not known to the network")
	ErrModeratorOnly    = errors.New("this command is reserved for moderators")
	ErrRecipientOffline = errors.New("that player is not online right now")
)

type Handler func(logger *tracing.Logger, player *proxy.Player, args []string) error

// Registry routes issued commands to their handlers. Handler errors are user
// facing and delivered back to the issuer.
type Registry struct {
	log      *tracing.Logger
	metrics  *metrics.MetricsService
	handlers map[string]Handler
}

func NewRegistry(log *tracing.Logger, metrics *metrics.MetricsService) *Registry {
	return &Registry{log: log, metrics: metrics, handlers: map[string]Handler{}}
}

func (x *Registry) Register(name string, handler Handler) {
	x.handlers[name] = handler
}

func (x *Registry) OnCommand(event proxy.CommandEvent) {
	handler, ok := x.handlers[event.Command]
	if !ok {
		return
	}

	logger := x.log.With(tracing.UserName, event.Player.Username, tracing.CommandIssued, event.Command)
	x.metrics.RecordCommandUsed(event.Command)

	if err := handler(logger, event.Player, event.Args); err != nil {
		logger.I("Command rejected", tracing.InnerError, err.Error())
		event.Player.SendMarkup("<red>" + err.Error())
	}
}
