package chat

import (
	"strings"

	"chatmesh/sources/configuration"
	"chatmesh/sources/messenger"
	"chatmesh/sources/proxy"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
)

type SpyToggles interface {
	IsSpying(logger *tracing.Logger, id uuid.UUID) bool
}

type Moderators interface {
	IsModerator(logger *tracing.Logger, id uuid.UUID) bool
}

// SpyService mirrors issued commands to moderators who opted in with
// /commandspy, and to the main bridge destination. The issuer never sees
// their own mirror line.
type SpyService struct {
	log        *tracing.Logger
	config     *configuration.ChatConfig
	proxy      *proxy.Proxy
	spying     SpyToggles
	moderators Moderators
}

func NewSpyService(
	log *tracing.Logger,
	config *configuration.Config,
	sink *proxy.Proxy,
	spying SpyToggles,
	moderators Moderators,
) *SpyService {
	return &SpyService{
		log:        log,
		config:     &config.Chat,
		proxy:      sink,
		spying:     spying,
		moderators: moderators,
	}
}

func (x *SpyService) OnCommand(event proxy.CommandEvent) {
	logger := x.log.With(tracing.UserName, event.Player.Username, tracing.CommandIssued, event.Command)

	issued := "/" + event.Command
	if len(event.Args) > 0 {
		issued += " " + strings.Join(event.Args, " ")
	}

	line := strings.NewReplacer(
		"<user>", event.Player.Username,
		"<command>", issued,
	).Replace(x.config.SpyFormat)

	for _, watcher := range x.proxy.Players() {
		if watcher.ID == event.Player.ID {
			continue
		}
		if !x.moderators.IsModerator(logger, watcher.ID) {
			continue
		}
		if !x.spying.IsSpying(logger, watcher.ID) {
			continue
		}
		watcher.SendMarkup(line)
	}

	x.proxy.Dispatcher().FireAndForget(messenger.BridgeMainEvent{
		Message: event.Player.Username + " ran " + issued,
	})
}
