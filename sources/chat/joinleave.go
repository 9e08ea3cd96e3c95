package chat

import (
	"fmt"

	"chatmesh/sources/configuration"
	"chatmesh/sources/messenger"
	"chatmesh/sources/platform"
	"chatmesh/sources/proxy"
	"chatmesh/sources/repository"
	"chatmesh/sources/tracing"
)

// JoinLeaveService keeps the identity snapshot current as players come and go
// and announces both transitions network-wide and on the bridge main channel.
type JoinLeaveService struct {
	log       *tracing.Logger
	config    *configuration.Config
	identity  *repository.IdentityRepository
	nicknames *repository.NicknamesRepository
	mail      *repository.MailRepository
	messenger *messenger.Messenger
}

func NewJoinLeaveService(
	log *tracing.Logger,
	config *configuration.Config,
	identity *repository.IdentityRepository,
	nicknames *repository.NicknamesRepository,
	mail *repository.MailRepository,
	messenger *messenger.Messenger,
) *JoinLeaveService {
	return &JoinLeaveService{
		log:       log,
		config:    config,
		identity:  identity,
		nicknames: nicknames,
		mail:      mail,
		messenger: messenger,
	}
}

func (x *JoinLeaveService) OnJoin(event proxy.JoinEvent) {
	logger := x.log.With(tracing.UserId, event.Player.ID.String(), tracing.UserName, event.Player.Username)

	x.upkeepIdentity(logger, event.Player)
	x.messenger.BroadcastJoin(logger, event.Player, x.config.Bridge.JoinFormat)
	x.noticeUnreadMail(logger, event.Player)
}

func (x *JoinLeaveService) OnLeave(event proxy.LeaveEvent) {
	logger := x.log.With(tracing.UserId, event.Player.ID.String(), tracing.UserName, event.Player.Username)

	x.messenger.BroadcastLeave(logger, event.Player, x.config.Bridge.LeaveFormat)
}

// upkeepIdentity writes the player's current username through to storage. A
// username change invalidates a non-generic nickname when configured to, since
// such a preset still renders the old name.
func (x *JoinLeaveService) upkeepIdentity(logger *tracing.Logger, player *proxy.Player) {
	previous, known := x.identity.UsernameByID(player.ID)

	if err := x.identity.Upsert(logger, player.ID, player.Username); err != nil {
		logger.E("Identity upkeep failed", tracing.InnerError, err.Error())
		return
	}

	if !known || previous == player.Username || !platform.BoolValue(x.config.Nicknames.ClearOnChange, true) {
		return
	}

	preset, found, err := x.nicknames.Get(logger, player.ID)
	if err != nil || !found || preset.IsGeneric() {
		return
	}

	if err := x.nicknames.Remove(logger, player.ID); err != nil {
		logger.E("Stale nickname removal failed", tracing.InnerError, err.Error())
		return
	}
	logger.I("Stale nickname removed after a username change", "previous_username", previous)
}

func (x *JoinLeaveService) noticeUnreadMail(logger *tracing.Logger, player *proxy.Player) {
	unread, err := x.mail.UnreadCount(logger, player.ID)
	if err != nil {
		logger.W("Unread mail count failed", tracing.InnerError, err.Error())
		return
	}
	if unread == 0 {
		return
	}

	player.SendMarkup(fmt.Sprintf(
		"<gold>You have %d unread mail message(s).</gold> <click:run_command:'/mailbox'><gray>[Run /mailbox to read them]</gray></click>", unread))
}
