package proxy

import (
	"sort"
	"strings"
	"sync"

	"chatmesh/sources/tracing"

	"github.com/google/uuid"
)

// ChatEvent is fired when a connected player sends a chat line.
type ChatEvent struct {
	Player  *Player
	Server  string
	Message string
}

// JoinEvent is fired after a player is registered on the proxy.
type JoinEvent struct {
	Player *Player
}

// LeaveEvent is fired after a player is removed from the proxy.
type LeaveEvent struct {
	Player *Player
}

// CommandEvent is fired when a connected player issues a slash command.
type CommandEvent struct {
	Player  *Player
	Command string
	Args    []string
}

// Proxy tracks connected players across all backend servers and delivers
// rendered markup to them. It is the single network-wide delivery sink.
type Proxy struct {
	log        *tracing.Logger
	dispatcher *Dispatcher
	servers    []string

	mu      sync.RWMutex
	players map[uuid.UUID]*Player
}

func NewProxy(log *tracing.Logger, dispatcher *Dispatcher, servers []string) *Proxy {
	lowered := make([]string, 0, len(servers))
	for _, server := range servers {
		lowered = append(lowered, strings.ToLower(server))
	}
	sort.Strings(lowered)

	return &Proxy{
		log:        log,
		dispatcher: dispatcher,
		servers:    lowered,
		players:    map[uuid.UUID]*Player{},
	}
}

func (x *Proxy) Dispatcher() *Dispatcher {
	return x.dispatcher
}

// Servers returns the configured backend server names, lowercased.
func (x *Proxy) Servers() []string {
	out := make([]string, len(x.servers))
	copy(out, x.servers)
	return out
}

// Connect registers the player and fires JoinEvent.
func (x *Proxy) Connect(player *Player) {
	x.mu.Lock()
	x.players[player.ID] = player
	x.mu.Unlock()

	x.log.I("Player connected", tracing.UserId, player.ID.String(), tracing.UserName, player.Username, tracing.ServerName, player.Server)
	x.dispatcher.Fire(JoinEvent{Player: player})
}

// Disconnect removes the player and fires LeaveEvent. Unknown ids are ignored.
func (x *Proxy) Disconnect(id uuid.UUID) {
	x.mu.Lock()
	player, ok := x.players[id]
	if ok {
		delete(x.players, id)
	}
	x.mu.Unlock()

	if !ok {
		return
	}

	x.log.I("Player disconnected", tracing.UserId, player.ID.String(), tracing.UserName, player.Username)
	x.dispatcher.Fire(LeaveEvent{Player: player})
}

// Switch moves a connected player to another backend server.
func (x *Proxy) Switch(id uuid.UUID, server string) {
	x.mu.Lock()
	if player, ok := x.players[id]; ok {
		player.Server = server
	}
	x.mu.Unlock()
}

// HandleInput routes a raw input line from a connected player: slash-prefixed
// lines become CommandEvent, everything else becomes ChatEvent.
func (x *Proxy) HandleInput(id uuid.UUID, input string) {
	player, ok := x.Player(id)
	if !ok {
		return
	}

	if strings.HasPrefix(input, "/") {
		parts := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(parts) == 0 {
			return
		}
		x.dispatcher.Fire(CommandEvent{Player: player, Command: strings.ToLower(parts[0]), Args: parts[1:]})
		return
	}

	x.dispatcher.Fire(ChatEvent{Player: player, Server: player.Server, Message: input})
}

func (x *Proxy) Player(id uuid.UUID) (*Player, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	player, ok := x.players[id]
	return player, ok
}

func (x *Proxy) PlayerByName(username string) (*Player, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	for _, player := range x.players {
		if strings.EqualFold(player.Username, username) {
			return player, true
		}
	}
	return nil, false
}

func (x *Proxy) Players() []*Player {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make([]*Player, 0, len(x.players))
	for _, player := range x.players {
		out = append(out, player)
	}
	return out
}

// SendAll delivers markup to every connected player on every server.
func (x *Proxy) SendAll(markup string) {
	for _, player := range x.Players() {
		player.SendMarkup(markup)
	}
}

// SendTo delivers markup to a single connected player, if present.
func (x *Proxy) SendTo(id uuid.UUID, markup string) bool {
	player, ok := x.Player(id)
	if !ok {
		return false
	}
	player.SendMarkup(markup)
	return true
}
