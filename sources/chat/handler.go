package chat

import (
	"chatmesh/sources/features"
	"chatmesh/sources/messenger"
	"chatmesh/sources/proxy"
	"chatmesh/sources/throttler"
	"chatmesh/sources/tracing"
)

const slowmodeNotice = "<red>Slow down, you are sending messages too quickly."

// ChatService runs every chat line through the delivery pipeline: the slowmode
// window first, then the moderation gate, then network-wide broadcast.
type ChatService struct {
	log       *tracing.Logger
	gate      *ConfirmationGate
	throttler *throttler.ThrottlerService
	features  *features.FeatureManager
	messenger *messenger.Messenger
	proxy     *proxy.Proxy
}

func NewChatService(
	log *tracing.Logger,
	gate *ConfirmationGate,
	throttler *throttler.ThrottlerService,
	features *features.FeatureManager,
	messenger *messenger.Messenger,
	sink *proxy.Proxy,
) *ChatService {
	return &ChatService{
		log:       log,
		gate:      gate,
		throttler: throttler,
		features:  features,
		messenger: messenger,
		proxy:     sink,
	}
}

func (x *ChatService) OnChat(event proxy.ChatEvent) {
	logger := x.log.With(tracing.UserName, event.Player.Username, tracing.OriginServer, event.Server)

	if !x.throttler.IsAllowed(logger, event.Player.ID) {
		event.Player.SendMarkup(slowmodeNotice)
		return
	}

	if x.features.IsEnabledDefault(features.FeatureModerationConfirmation, true) {
		if ok, preview := x.gate.Screen(logger, event.Player.ID, event.Message); !ok {
			event.Player.SendMarkup(confirmationPrompt(preview))
			return
		}
	}

	x.messenger.BroadcastChatMessage(logger, event.Server, event.Player, event.Message)
}

// Release broadcasts a previously flagged line after /confirm.
func (x *ChatService) Release(logger *tracing.Logger, player *proxy.Player) error {
	message, err := x.gate.Confirm(logger, player.ID)
	if err != nil {
		return err
	}

	x.messenger.BroadcastChatMessage(logger, player.Server, player, message)
	return nil
}

func confirmationPrompt(preview string) string {
	return "<red>Your message may contain disallowed content:</red> " + preview +
		"<newline><click:run_command:'/confirm'><gray>[Run /confirm to send it anyway]</gray></click>"
}
