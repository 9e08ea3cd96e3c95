package bridge

import (
	"net/http"
	"sort"
	"strings"

	"chatmesh/sources/configuration"
	"chatmesh/sources/proxy"
	"chatmesh/sources/tracing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bindings maps a lowercased backend server name to the bot mirroring its
// chat. Servers without a configured token simply have no binding.
type Bindings map[string]*tgbotapi.BotAPI

// matchServers compares the configured per-server tokens against the live
// server set, case-insensitively. It returns the matched tokens plus both
// sides of the mismatch.
func matchServers(configured map[string]string, live []string) (matched map[string]string, unknown []string, unbound []string) {
	matched = map[string]string{}

	liveSet := map[string]bool{}
	for _, server := range live {
		liveSet[strings.ToLower(server)] = true
	}

	for server, token := range configured {
		lowered := strings.ToLower(server)
		if liveSet[lowered] {
			matched[lowered] = token
		} else {
			unknown = append(unknown, lowered)
		}
	}

	for server := range liveSet {
		if _, ok := matched[server]; !ok {
			unbound = append(unbound, server)
		}
	}

	sort.Strings(unknown)
	sort.Strings(unbound)
	return matched, unknown, unbound
}

// NewBindings builds one bot per backend server that has a token configured.
// A mismatch between the token keys and the live server set is reported and
// survived: mirroring is best-effort.
func NewBindings(log *tracing.Logger, config *configuration.Config, sink *proxy.Proxy, client *http.Client) Bindings {
	if !config.Bridge.Enable {
		return Bindings{}
	}

	matched, unknown, unbound := matchServers(config.Bridge.ServerTokens, sink.Servers())
	if len(unknown) > 0 || len(unbound) > 0 {
		log.W("Bridge server tokens do not line up with the live server set",
			"unknown_servers", strings.Join(unknown, ","),
			"unbound_servers", strings.Join(unbound, ","),
		)
	}

	bindings := Bindings{}
	for server, token := range matched {
		bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
		if err != nil {
			log.E("Failed to initialize mirror bot, server will not be mirrored",
				tracing.ServerName, server, tracing.InnerError, err)
			continue
		}

		bindings[server] = bot
		log.I("Mirror bot bound", tracing.ServerName, server, tracing.UserName, bot.Self.UserName)
	}

	return bindings
}
