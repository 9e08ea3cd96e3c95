package commands

import (
	"fmt"
	"strings"

	"chatmesh/sources/permissions"
	"chatmesh/sources/proxy"
	"chatmesh/sources/repository"
	"chatmesh/sources/texting"
	"chatmesh/sources/tracing"
)

const aboutLimit = 256

// ProfileCommands implements /profile: a public info card per player and a
// self-served about line.
type ProfileCommands struct {
	identity    *repository.IdentityRepository
	nicknames   *repository.NicknamesRepository
	about       *repository.AboutRepository
	permissions *permissions.Service
	proxy       *proxy.Proxy
}

func NewProfileCommands(
	identity *repository.IdentityRepository,
	nicknames *repository.NicknamesRepository,
	about *repository.AboutRepository,
	permissions *permissions.Service,
	sink *proxy.Proxy,
) *ProfileCommands {
	return &ProfileCommands{identity: identity, nicknames: nicknames, about: about, permissions: permissions, proxy: sink}
}

func (x *ProfileCommands) Handle(logger *tracing.Logger, player *proxy.Player, args []string) error {
	var cmd ProfileCmd
	ctx, err := parseCommand(&cmd, args)
	if err != nil {
		return fmt.Errorf("%w: /profile <info|about>", ErrUsage)
	}

	switch subcommand(ctx) {
	case "info":
		return x.info(logger, player, cmd.Info.Username)
	case "about":
		return x.setAbout(logger, player, strings.Join(cmd.About.Text, " "))
	default:
		return fmt.Errorf("%w: /profile <info|about>", ErrUsage)
	}
}

func (x *ProfileCommands) info(logger *tracing.Logger, player *proxy.Player, username string) error {
	id, ok := x.identity.Resolve(username)
	if !ok {
		return ErrUnknownPlayer
	}

	if canonical, known := x.identity.UsernameByID(id); known {
		username = canonical
	}

	display := texting.PlainNick(username)
	if preset, found, err := x.nicknames.Get(logger, id); err == nil && found {
		display = preset
	}

	presence := "<gray>offline</gray>"
	if online, connected := x.proxy.Player(id); connected {
		presence = "<green>online</green> <gray>on</gray> <yellow>" + online.Server + "</yellow>"
	}

	lines := []string{
		"<gold>Profile of " + display.Render(username) + "<gold>:",
		"<gray>Rank: " + x.permissions.Prefix(logger, id),
		"<gray>Status: " + presence,
	}
	if about, found, err := x.about.Get(logger, id); err == nil && found {
		lines = append(lines, "<gray>About: <white>"+about)
	}

	player.SendMarkup(strings.Join(lines, "<newline>"))
	return nil
}

func (x *ProfileCommands) setAbout(logger *tracing.Logger, player *proxy.Player, text string) error {
	if len(text) > aboutLimit {
		return fmt.Errorf("about lines are limited to %d characters", aboutLimit)
	}

	if err := x.about.Set(logger, player.ID, text); err != nil {
		return err
	}

	player.SendMarkup("<green>Your about line is updated.")
	return nil
}
