package network

import "chatmesh/sources/platform"

type ProxyConfig struct {
	ProxyAddress   string
	ProxyUser      string
	ProxyPass      string
	TimeoutSeconds int
}

func NewProxyConfig() *ProxyConfig {
	return &ProxyConfig{
		ProxyAddress:   platform.Get("PROXY_ADDRESS", ""),
		ProxyUser:      platform.Get("PROXY_USER", ""),
		ProxyPass:      platform.Get("PROXY_PASS", ""),
		TimeoutSeconds: platform.GetAsInt("PROXY_TIMEOUT_SECONDS", 30),
	}
}
