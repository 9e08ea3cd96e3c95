package chat

import (
	"chatmesh/sources/permissions"
	"chatmesh/sources/proxy"
	"chatmesh/sources/repository"

	"go.uber.org/fx"
)

var Module = fx.Module("chat",
	fx.Provide(
		NewConfirmationGate,
		NewChatService,
		NewJoinLeaveService,
		NewSpyService,
		func(r *repository.SpyingRepository) SpyToggles { return r },
		func(s *permissions.Service) Moderators { return s },
	),
	fx.Invoke(func(dispatcher *proxy.Dispatcher, chat *ChatService, joinleave *JoinLeaveService, spy *SpyService) {
		proxy.Subscribe(dispatcher, joinleave.OnJoin)
		proxy.Subscribe(dispatcher, joinleave.OnLeave)
		proxy.Subscribe(dispatcher, chat.OnChat)
		proxy.Subscribe(dispatcher, spy.OnCommand)
	}),
)
