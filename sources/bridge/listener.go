package bridge

import (
	"strings"

	"chatmesh/sources/configuration"
	"chatmesh/sources/features"
	"chatmesh/sources/messenger"
	"chatmesh/sources/metrics"
	"chatmesh/sources/texting"
	"chatmesh/sources/tracing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Listener polls the main bridge bot and mirrors channel messages back into
// network chat.
type Listener struct {
	log         *tracing.Logger
	config      *configuration.BridgeConfig
	bot         *tgbotapi.BotAPI
	transformer *texting.Transformer
	messenger   *messenger.Messenger
	features    *features.FeatureManager
	metrics     *metrics.MetricsService
}

func NewListener(
	log *tracing.Logger,
	config *configuration.Config,
	bot *tgbotapi.BotAPI,
	transformer *texting.Transformer,
	messenger *messenger.Messenger,
	features *features.FeatureManager,
	metrics *metrics.MetricsService,
) *Listener {
	return &Listener{
		log:         log,
		config:      &config.Bridge,
		bot:         bot,
		transformer: transformer,
		messenger:   messenger,
		features:    features,
		metrics:     metrics,
	}
}

func (x *Listener) Start() {
	update := tgbotapi.NewUpdate(0)
	update.Timeout = x.config.PollerTimeout
	update.AllowedUpdates = x.config.AllowedUpdates

	for update := range x.bot.GetUpdatesChan(update) {
		if msg := update.Message; msg != nil {
			x.handle(msg)
		}
	}
}

func (x *Listener) Stop() {
	x.bot.StopReceivingUpdates()
}

func (x *Listener) handle(msg *tgbotapi.Message) {
	if msg.Chat == nil || msg.Chat.ID != x.config.ChannelID {
		return
	}

	// Our own mirror bots echo everything we post. The service user is the
	// one bot author whose messages are meant for the network.
	if msg.From != nil && msg.From.IsBot && msg.From.ID != x.config.ServiceUserID {
		return
	}

	if !x.features.IsEnabledDefault(features.FeatureInboundMirror, true) {
		x.metrics.RecordBridgeInbound("skipped")
		return
	}

	logger := x.log.With(tracing.BridgeAuthor, authorName(msg))

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	text = x.appendAttachments(logger, msg, text)

	if strings.TrimSpace(text) == "" {
		return
	}

	body := x.transformer.Transform(x.normalize(text), false)
	x.messenger.BroadcastInbound(logger, authorName(msg), body)
	x.metrics.RecordBridgeInbound("success")

	logger.I("Bridge message mirrored into chat", tracing.MessageLength, len(text))
}

// normalize rewrites channel emoji glyphs back into :name: form and flattens
// markdown links so the transformer sees plain text with bare URLs.
func (x *Listener) normalize(text string) string {
	for name, glyph := range x.transformer.Emojis() {
		text = strings.ReplaceAll(text, glyph, ":"+name+":")
	}
	return texting.FlattenMarkdownLinks(text)
}

// appendAttachments resolves direct file URLs for the message's attachments
// and appends them to the text, so they render as link chips in chat.
func (x *Listener) appendAttachments(logger *tracing.Logger, msg *tgbotapi.Message, text string) string {
	var fileIDs []string

	if count := len(msg.Photo); count > 0 {
		fileIDs = append(fileIDs, msg.Photo[count-1].FileID)
	}
	if msg.Document != nil {
		fileIDs = append(fileIDs, msg.Document.FileID)
	}
	if msg.Video != nil {
		fileIDs = append(fileIDs, msg.Video.FileID)
	}
	if msg.Audio != nil {
		fileIDs = append(fileIDs, msg.Audio.FileID)
	}
	if msg.Voice != nil {
		fileIDs = append(fileIDs, msg.Voice.FileID)
	}

	for _, fileID := range fileIDs {
		url, err := x.bot.GetFileDirectURL(fileID)
		if err != nil {
			logger.W("Attachment URL resolution failed", tracing.InnerError, err.Error())
			continue
		}
		text = strings.TrimSpace(text + " " + url)
	}

	return text
}

func authorName(msg *tgbotapi.Message) string {
	if msg.From == nil {
		return "unknown"
	}
	if msg.From.UserName != "" {
		return msg.From.UserName
	}
	return msg.From.FirstName
}
