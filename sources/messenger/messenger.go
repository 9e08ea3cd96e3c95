package messenger

import (
	"strings"

	"chatmesh/sources/configuration"
	"chatmesh/sources/metrics"
	"chatmesh/sources/proxy"
	"chatmesh/sources/texting"
	"chatmesh/sources/tracing"

	"github.com/google/uuid"
)

// OriginLocal marks messages sent by players connected to this network.
const OriginLocal = "local"

// OriginBridge marks messages mirrored in from the bridge channel.
const OriginBridge = "bridge"

type Permissions interface {
	Prefix(logger *tracing.Logger, id uuid.UUID) string
	CanObfuscate(logger *tracing.Logger, id uuid.UUID) bool
}

type Nicknames interface {
	Get(logger *tracing.Logger, id uuid.UUID) (texting.NickPreset, bool, error)
}

// Messenger renders chat lines and routes them to every connected player, then
// hands a copy to the bridge through the event bus.
type Messenger struct {
	log         *tracing.Logger
	config      *configuration.ChatConfig
	proxy       *proxy.Proxy
	transformer *texting.Transformer
	nicknames   Nicknames
	permissions Permissions
	metrics     *metrics.MetricsService
}

func NewMessenger(
	log *tracing.Logger,
	config *configuration.Config,
	sink *proxy.Proxy,
	transformer *texting.Transformer,
	nicknames Nicknames,
	permissions Permissions,
	metrics *metrics.MetricsService,
) *Messenger {
	return &Messenger{
		log:         log,
		config:      &config.Chat,
		proxy:       sink,
		transformer: transformer,
		nicknames:   nicknames,
		permissions: permissions,
		metrics:     metrics,
	}
}

// Announce delivers already rendered markup to everyone on the network.
func (x *Messenger) Announce(markup string) {
	x.proxy.SendAll(markup)
}

// BroadcastChatMessage renders a player's chat line and delivers it network
// wide. The bridge copy is dispatched asynchronously with the raw text.
func (x *Messenger) BroadcastChatMessage(logger *tracing.Logger, origin string, player *proxy.Player, raw string) {
	defer tracing.ProfilePoint(logger, "Chat line broadcast", "messenger.broadcast",
		tracing.UserName, player.Username,
		tracing.OriginServer, origin,
		tracing.MessageLength, len(raw),
	)()

	prefix := x.permissions.Prefix(logger, player.ID)
	body := x.transformer.Transform(raw, x.permissions.CanObfuscate(logger, player.ID))

	line := strings.NewReplacer(
		"<prefix>", prefix,
		"<sender>", x.senderMarkup(logger, player),
		"<message>", body,
	).Replace(x.config.BroadcastFormat)

	x.proxy.SendAll(line)
	x.metrics.RecordMessageBroadcast(origin)

	x.proxy.Dispatcher().FireAndForget(BridgeChatEvent{
		Prefix:  prefix,
		Sender:  player.Username,
		Server:  strings.ToLower(origin),
		Message: raw,
	})
}

// BroadcastInbound delivers a line mirrored in from the bridge. The body is
// expected to be transformed already.
func (x *Messenger) BroadcastInbound(logger *tracing.Logger, sender string, body string) {
	line := strings.NewReplacer(
		"<sender>", sender,
		"<message>", body,
	).Replace(x.config.BridgeInFormat)

	x.proxy.SendAll(line)
	x.metrics.RecordMessageBroadcast(OriginBridge)
}

// BroadcastJoin announces a player joining the network, locally and on the
// main bridge channel.
func (x *Messenger) BroadcastJoin(logger *tracing.Logger, player *proxy.Player, bridgeFormat string) {
	x.proxy.SendAll(strings.ReplaceAll(x.config.JoinFormat, "<player>", player.Username))
	x.proxy.Dispatcher().FireAndForget(BridgeMainEvent{
		Message: strings.ReplaceAll(bridgeFormat, "%player%", player.Username),
	})
}

// BroadcastLeave announces a player leaving the network, locally and on the
// main bridge channel.
func (x *Messenger) BroadcastLeave(logger *tracing.Logger, player *proxy.Player, bridgeFormat string) {
	x.proxy.SendAll(strings.ReplaceAll(x.config.LeaveFormat, "<player>", player.Username))
	x.proxy.Dispatcher().FireAndForget(BridgeMainEvent{
		Message: strings.ReplaceAll(bridgeFormat, "%player%", player.Username),
	})
}

// senderMarkup renders the player's display name and wraps it so a click on it
// opens their profile.
func (x *Messenger) senderMarkup(logger *tracing.Logger, player *proxy.Player) string {
	preset, ok, err := x.nicknames.Get(logger, player.ID)
	if err != nil {
		logger.W("Nickname lookup failed, using the plain username", tracing.InnerError, err.Error(), tracing.UserId, player.ID.String())
		ok = false
	}
	if !ok {
		preset = texting.PlainNick(player.Username)
	}

	return "<click:run_command:'/profile info " + player.Username + "'>" + preset.Render(player.Username) + "</click>"
}
