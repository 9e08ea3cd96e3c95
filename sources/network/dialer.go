package network

import (
	"chatmesh/sources/tracing"

	"golang.org/x/net/proxy"
)

// NewProxyDialer builds the outbound dialer for the bridge client. Without a
// configured proxy address all connections go direct.
func NewProxyDialer(config *ProxyConfig, log *tracing.Logger) proxy.Dialer {
	if config.ProxyAddress == "" {
		return proxy.Direct
	}

	var auth *proxy.Auth
	if config.ProxyUser != "" {
		auth = &proxy.Auth{User: config.ProxyUser, Password: config.ProxyPass}
	}

	dialer, err := proxy.SOCKS5("tcp", config.ProxyAddress, auth, proxy.Direct)
	if err != nil {
		log.F("Failed to create proxy dialer", tracing.InnerError, err)
	}

	log.I("Outbound traffic routed through SOCKS5 proxy", tracing.ProxyUrl, config.ProxyAddress)
	return dialer
}
