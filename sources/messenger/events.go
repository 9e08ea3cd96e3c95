package messenger

// BridgeChatEvent carries a chat line toward the mirror channel of the backend
// server it originated on. Delivery is fire-and-forget: chat never waits on
// the bridge.
type BridgeChatEvent struct {
	Prefix  string
	Sender  string
	Server  string
	Message string
}

// BridgeMainEvent carries a network-wide notice toward the main mirror channel.
type BridgeMainEvent struct {
	Message string
}
