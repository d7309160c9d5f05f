//go:build wireinject
// +build wireinject

package main

import (
	"wavelink-server/internal/config"
	"wavelink-server/internal/handler"
	"wavelink-server/internal/hub"
	"wavelink-server/internal/repository/mongo"
	"wavelink-server/internal/repository/postgres"
	"wavelink-server/internal/service"

	"github.com/google/wire"
)

// InitializeApp creates a new application.
func InitializeApp() (*App, func(), error) {
	wire.Build(
		config.Load,
		// Infrastructure providers
		wire.NewSet(
			provideLogger,
			provideContext,
			providePostgresDB,
			provideMongoDB,
		),
		// Repository providers
		wire.NewSet(
			postgres.NewUserRepository,
			wire.Bind(new(service.IUserRepository), new(*postgres.UserRepository)),

			mongo.NewChatRepository,
			wire.Bind(new(service.IChatRepository), new(*mongo.ChatRepository)),
		),
		// Service providers
		wire.NewSet(
			service.NewChatService,
			wire.Bind(new(service.IChatService), new(*service.ChatService)),
			wire.Bind(new(service.IChatResolver), new(*service.ChatService)),

			service.NewMessageService,
			wire.Bind(new(service.IMessageService), new(*service.MessageService)),
		),
		// Hub and handler providers
		hub.NewHub,
		handler.NewWebsocketHandler,
		// App provider
		wire.NewSet(
			wire.Struct(new(App), "*"),
		),
	)
	return nil, nil, nil
}
