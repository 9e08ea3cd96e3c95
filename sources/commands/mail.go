package commands

import (
	"fmt"
	"strings"
	"time"

	"chatmesh/sources/proxy"
	"chatmesh/sources/repository"
	"chatmesh/sources/tracing"
)

const mailMessageLimit = 512

// MailCommands implements /mail and /mailbox. Mail is stored, so recipients
// do not have to be online.
type MailCommands struct {
	mail     *repository.MailRepository
	identity *repository.IdentityRepository
	proxy    *proxy.Proxy
}

func NewMailCommands(mail *repository.MailRepository, identity *repository.IdentityRepository, sink *proxy.Proxy) *MailCommands {
	return &MailCommands{mail: mail, identity: identity, proxy: sink}
}

func (x *MailCommands) Handle(logger *tracing.Logger, player *proxy.Player, args []string) error {
	var cmd MailCmd
	ctx, err := parseCommand(&cmd, args)
	if err != nil {
		return fmt.Errorf("%w: /mail <send|read>", ErrUsage)
	}

	switch subcommand(ctx) {
	case "send":
		return x.send(logger, player, cmd.Send.Username, strings.Join(cmd.Send.Message, " "))
	case "read":
		return x.read(logger, player, cmd.Read.ID)
	default:
		return fmt.Errorf("%w: /mail <send|read>", ErrUsage)
	}
}

func (x *MailCommands) send(logger *tracing.Logger, player *proxy.Player, username string, message string) error {
	recipient, ok := x.identity.Resolve(username)
	if !ok {
		return ErrUnknownPlayer
	}

	if len(message) > mailMessageLimit {
		return fmt.Errorf("mail messages are limited to %d characters", mailMessageLimit)
	}

	if err := x.mail.Insert(logger, player.ID, recipient, message); err != nil {
		return err
	}

	player.SendMarkup("<green>Mail sent.")
	x.proxy.SendTo(recipient,
		"<gold>You have new mail from "+player.Username+".</gold> <click:run_command:'/mailbox'><gray>[Run /mailbox to read it]</gray></click>")
	return nil
}

func (x *MailCommands) read(logger *tracing.Logger, player *proxy.Player, id int64) error {
	message, err := x.mail.Read(logger, player.ID, id)
	if err != nil {
		return err
	}

	player.SendMarkup(fmt.Sprintf("<gold>Mail #%d from %s (%s):</gold> %s",
		message.ID, x.senderName(message.Sender.String()), relativeTimestamp(time.Now(), message.Timestamp), message.Message))
	return nil
}

// Mailbox lists the issuer's mail, newest first.
func (x *MailCommands) Mailbox(logger *tracing.Logger, player *proxy.Player, args []string) error {
	messages, err := x.mail.Mailbox(logger, player.ID)
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		player.SendMarkup("<gray>Your mailbox is empty.")
		return nil
	}

	lines := make([]string, 0, len(messages)+1)
	lines = append(lines, fmt.Sprintf("<gold>Your mailbox (%d message(s)):", len(messages)))
	for _, message := range messages {
		marker := "<yellow>unread</yellow>"
		if message.Read {
			marker = "<gray>read</gray>"
		}
		lines = append(lines, fmt.Sprintf(
			"<gray>#%d [%s] from %s, %s</gray> <click:run_command:'/mail read %d'><yellow>[open]</yellow></click>",
			message.ID, marker, x.senderName(message.Sender.String()), relativeTimestamp(time.Now(), message.Timestamp), message.ID))
	}

	player.SendMarkup(strings.Join(lines, "<newline>"))
	return nil
}

// relativeTimestamp renders how long ago a piece of mail was sent, in the
// coarsest unit that still reads naturally.
func relativeTimestamp(now time.Time, unix int64) string {
	minutes := int64(now.Sub(time.Unix(unix, 0)).Minutes())
	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%d minutes ago", minutes)
	case minutes < 120:
		return "an hour ago"
	case minutes < 1440:
		return fmt.Sprintf("%d hours ago", minutes/60)
	default:
		return fmt.Sprintf("%d days ago", minutes/1440)
	}
}

func (x *MailCommands) senderName(id string) string {
	resolved, ok := x.identity.Resolve(id)
	if !ok {
		return id
	}
	if username, known := x.identity.UsernameByID(resolved); known {
		return username
	}
	return id
}
