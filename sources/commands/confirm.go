package commands

import (
	"chatmesh/sources/chat"
	"chatmesh/sources/proxy"
	"chatmesh/sources/tracing"
)

// ConfirmCommand releases the issuer's flagged chat line.
func ConfirmCommand(service *chat.ChatService) Handler {
	return func(logger *tracing.Logger, player *proxy.Player, args []string) error {
		return service.Release(logger, player)
	}
}
