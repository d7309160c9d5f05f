package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"wavelink-server/internal/config"
	"wavelink-server/internal/repository/mongo"
	"wavelink-server/internal/repository/postgres"

	"wavelink-server/internal/handler"
	"wavelink-server/internal/hub"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// App is the main application container.
type App struct {
	Hub     *hub.Hub
	Handler *handler.WebsocketHandler
	Config  *config.Config
	Log     *slog.Logger
}

func provideLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func providePostgresDB(cfg *config.Config) (*sql.DB, func(), error) {
	if err := postgres.RunMigrations(cfg.PostgresURL); err != nil {
		return nil, nil, err
	}
	db, err := postgres.NewDB(cfg.PostgresURL)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { db.Close() }
	return db, cleanup, nil
}

func provideMongoDB(ctx context.Context, cfg *config.Config) (*mongodriver.Database, func(), error) {
	db, err := mongo.NewDB(ctx, cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { db.Client().Disconnect(ctx) }
	return db, cleanup, nil
}

func provideContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	return ctx, func() { cancel() }
}
