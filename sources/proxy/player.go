package proxy

import "github.com/google/uuid"

// Audience receives rendered markup lines. Connected players implement it via
// their connection; tests substitute recording fakes.
type Audience interface {
	SendMarkup(markup string)
}

// Player is a connected player as the routing layer sees it: identity, current
// backend server and a delivery channel.
type Player struct {
	ID       uuid.UUID
	Username string
	Server   string

	audience Audience
}

func NewPlayer(id uuid.UUID, username string, server string, audience Audience) *Player {
	return &Player{ID: id, Username: username, Server: server, audience: audience}
}

func (p *Player) SendMarkup(markup string) {
	if p.audience != nil {
		p.audience.SendMarkup(markup)
	}
}
