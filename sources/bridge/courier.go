package bridge

import (
	"regexp"
	"strings"

	"chatmesh/sources/configuration"
	"chatmesh/sources/messenger"
	"chatmesh/sources/metrics"
	"chatmesh/sources/tracing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var markupTagPattern = regexp.MustCompile(`</?[^<>]+>`)

// StripMarkup drops every markup tag, leaving the plain text the mirror
// channel should see.
func StripMarkup(input string) string {
	return markupTagPattern.ReplaceAllString(input, "")
}

// Courier posts mirror copies of network chat into the bridge channels. Every
// send is best-effort: a failed post is logged and dropped, never retried.
type Courier struct {
	log      *tracing.Logger
	config   *configuration.BridgeConfig
	main     *tgbotapi.BotAPI
	bindings Bindings
	metrics  *metrics.MetricsService
}

func NewCourier(log *tracing.Logger, config *configuration.Config, main *tgbotapi.BotAPI, bindings Bindings, metrics *metrics.MetricsService) *Courier {
	return &Courier{
		log:      log,
		config:   &config.Bridge,
		main:     main,
		bindings: bindings,
		metrics:  metrics,
	}
}

// OnChat mirrors a chat line through the bot bound to its origin server.
// Servers without a binding are not mirrored.
func (x *Courier) OnChat(event messenger.BridgeChatEvent) {
	bot, ok := x.bindings[event.Server]
	if !ok {
		return
	}

	logger := x.log.With(tracing.BridgeDestination, event.Server, tracing.BridgeAuthor, event.Sender)

	line := strings.NewReplacer(
		"%prefix%", StripMarkup(event.Prefix),
		"%sender%", event.Sender,
		"%message%", event.Message,
	).Replace(x.config.Format)

	x.post(logger, bot, event.Server, line)
}

// OnMain mirrors a network-wide notice through the main bot.
func (x *Courier) OnMain(event messenger.BridgeMainEvent) {
	if x.main == nil {
		return
	}

	logger := x.log.With(tracing.BridgeDestination, "main")
	x.post(logger, x.main, "main", event.Message)
}

func (x *Courier) post(logger *tracing.Logger, bot *tgbotapi.BotAPI, destination string, text string) {
	if _, err := bot.Send(tgbotapi.NewMessage(x.config.ChannelID, text)); err != nil {
		logger.E("Mirror post failed", tracing.InnerError, err)
		x.metrics.RecordBridgeEvent(destination, "error")
		return
	}

	x.metrics.RecordBridgeEvent(destination, "success")
}
