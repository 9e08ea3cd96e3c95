package commands

import (
	"fmt"

	"chatmesh/sources/permissions"
	"chatmesh/sources/proxy"
	"chatmesh/sources/repository"
	"chatmesh/sources/tracing"
)

// SpyCommand toggles command mirroring for a moderator.
func SpyCommand(spying *repository.SpyingRepository, permissions *permissions.Service) Handler {
	return func(logger *tracing.Logger, player *proxy.Player, args []string) error {
		if !permissions.IsModerator(logger, player.ID) {
			return ErrModeratorOnly
		}

		var enable bool
		switch {
		case len(args) == 0:
			enable = !spying.IsSpying(logger, player.ID)
		case args[0] == "on":
			enable = true
		case args[0] == "off":
			enable = false
		default:
			return fmt.Errorf("%w: /commandspy [on|off]", ErrUsage)
		}

		if err := spying.SetSpying(logger, player.ID, enable); err != nil {
			return err
		}

		if enable {
			player.SendMarkup("<green>Command spy enabled.")
		} else {
			player.SendMarkup("<gray>Command spy disabled.")
		}
		return nil
	}
}
