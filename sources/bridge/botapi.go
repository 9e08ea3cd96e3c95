package bridge

import (
	"net/http"

	"chatmesh/sources/configuration"
	"chatmesh/sources/tracing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// NewMainBot builds the bot for the main mirror channel. Disabled bridge
// yields nil, downstream consumers treat that as "no bridge".
func NewMainBot(log *tracing.Logger, config *configuration.Config, client *http.Client) *tgbotapi.BotAPI {
	if !config.Bridge.Enable {
		log.I("Bridge is disabled, no mirror bots will be started")
		return nil
	}

	bot, err := tgbotapi.NewBotAPIWithClient(config.Bridge.Token, tgbotapi.APIEndpoint, client)
	if err != nil {
		log.F("Failed to initialize main bridge bot", tracing.InnerError, err)
	}

	log.I("Main bridge bot initialized", tracing.UserName, bot.Self.UserName)
	return bot
}
