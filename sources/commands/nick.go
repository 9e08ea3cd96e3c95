package commands

import (
	"fmt"
	"sort"
	"strings"

	"chatmesh/sources/configuration"
	"chatmesh/sources/permissions"
	"chatmesh/sources/proxy"
	"chatmesh/sources/repository"
	"chatmesh/sources/texting"
	"chatmesh/sources/tracing"
)

// NicknameCommands implements /nick and its subcommands.
type NicknameCommands struct {
	config      *configuration.NicknamesConfig
	nicknames   *repository.NicknamesRepository
	identity    *repository.IdentityRepository
	permissions *permissions.Service
}

func NewNicknameCommands(
	config *configuration.Config,
	nicknames *repository.NicknamesRepository,
	identity *repository.IdentityRepository,
	permissions *permissions.Service,
) *NicknameCommands {
	return &NicknameCommands{
		config:      &config.Nicknames,
		nicknames:   nicknames,
		identity:    identity,
		permissions: permissions,
	}
}

func (x *NicknameCommands) Handle(logger *tracing.Logger, player *proxy.Player, args []string) error {
	var cmd NickCmd
	ctx, err := parseCommand(&cmd, args)
	if err != nil {
		return fmt.Errorf("%w: /nick <color|preset|presets|remove|set>", ErrUsage)
	}

	switch subcommand(ctx) {
	case "color":
		return x.color(logger, player, cmd.Color.Colors)
	case "preset":
		return x.preset(logger, player, cmd.Preset.Name)
	case "presets":
		return x.presets(player)
	case "remove":
		return x.remove(logger, player, cmd.Remove.Username)
	case "set":
		return x.set(logger, player, cmd.Set.Username, strings.Join(cmd.Set.Template, " "))
	default:
		return fmt.Errorf("%w: /nick <color|preset|presets|remove|set>", ErrUsage)
	}
}

// color sets the issuer's nickname to a single color or a gradient over their
// username.
func (x *NicknameCommands) color(logger *tracing.Logger, player *proxy.Player, colors []string) error {
	if len(colors) == 0 || len(colors) > 3 {
		return fmt.Errorf("%w: /nick color <color> [color] [color]", ErrUsage)
	}

	preset, err := texting.ColorOrGradient(colors...)
	if err != nil {
		return err
	}

	if err := x.nicknames.Set(logger, player.ID, preset); err != nil {
		return err
	}

	player.SendMarkup("<green>Your nickname is now " + preset.Render(player.Username))
	return nil
}

func (x *NicknameCommands) preset(logger *tracing.Logger, player *proxy.Player, name string) error {
	format, ok := x.config.Presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q, run /nick presets to list them", name)
	}

	preset := texting.NickPreset{Format: format}
	if err := x.nicknames.Set(logger, player.ID, preset); err != nil {
		return err
	}

	player.SendMarkup("<green>Your nickname is now " + preset.Render(player.Username))
	return nil
}

func (x *NicknameCommands) presets(player *proxy.Player) error {
	if len(x.config.Presets) == 0 {
		player.SendMarkup("<gray>No nickname presets are configured.")
		return nil
	}

	names := make([]string, 0, len(x.config.Presets))
	for name := range x.config.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	player.SendMarkup("<gray>Available presets: <yellow>" + strings.Join(names, "</yellow><gray>, <yellow>") + "</yellow>")
	return nil
}

// remove drops the issuer's nickname, or someone else's when issued by a
// moderator.
func (x *NicknameCommands) remove(logger *tracing.Logger, player *proxy.Player, username string) error {
	target := player.ID
	if username != "" {
		if !x.permissions.IsModerator(logger, player.ID) {
			return ErrModeratorOnly
		}

		id, ok := x.identity.Resolve(username)
		if !ok {
			return ErrUnknownPlayer
		}
		target = id
	}

	if err := x.nicknames.Remove(logger, target); err != nil {
		return err
	}

	player.SendMarkup("<green>Nickname removed.")
	return nil
}

// set assigns an arbitrary nickname template to a player, moderators only.
func (x *NicknameCommands) set(logger *tracing.Logger, player *proxy.Player, username string, template string) error {
	if !x.permissions.IsModerator(logger, player.ID) {
		return ErrModeratorOnly
	}

	id, ok := x.identity.Resolve(username)
	if !ok {
		return ErrUnknownPlayer
	}

	preset := texting.NickPreset{Format: template}
	if err := x.nicknames.Set(logger, id, preset); err != nil {
		return err
	}

	player.SendMarkup("<green>Nickname updated.")
	return nil
}
