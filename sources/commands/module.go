package commands

import (
	"chatmesh/sources/chat"
	"chatmesh/sources/permissions"
	"chatmesh/sources/proxy"
	"chatmesh/sources/repository"

	"go.uber.org/fx"
)

var Module = fx.Module("commands",
	fx.Provide(
		NewRegistry,
		NewNicknameCommands,
		NewMailCommands,
		NewProfileCommands,
	),
	fx.Invoke(func(
		dispatcher *proxy.Dispatcher,
		registry *Registry,
		chat *chat.ChatService,
		nick *NicknameCommands,
		mail *MailCommands,
		profile *ProfileCommands,
		spying *repository.SpyingRepository,
		permissions *permissions.Service,
	) {
		registry.Register("confirm", ConfirmCommand(chat))
		registry.Register("nick", nick.Handle)
		registry.Register("mail", mail.Handle)
		registry.Register("mailbox", mail.Mailbox)
		registry.Register("profile", profile.Handle)
		registry.Register("commandspy", SpyCommand(spying, permissions))

		proxy.Subscribe(dispatcher, registry.OnCommand)
	}),
)
