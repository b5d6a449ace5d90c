// Package server initializes and runs the portfolio backend: storage,
// services, and the HTTP API, with graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mswiatek/scholarfolio/internal/logging"
	"github.com/mswiatek/scholarfolio/internal/server/blobstore"
	"github.com/mswiatek/scholarfolio/internal/server/config"
	"github.com/mswiatek/scholarfolio/internal/server/httpapi"
	"github.com/mswiatek/scholarfolio/internal/server/services"
	"github.com/mswiatek/scholarfolio/internal/server/store"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  *store.PostgresManager
	api    *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	manager, err := store.NewPostgresManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	blobs := blobstore.NewService(cfg)
	users := services.NewUserService(manager.Users(), manager.RefreshTokens(), manager.UserProfiles(), cfg)
	portfolio := services.NewPortfolioService(manager.Portfolio(), blobs)

	api := httpapi.NewServer(cfg, logger, users, portfolio, blobs)

	return &App{config: cfg, logger: logger, store: manager, api: api}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	if err := app.api.Run(ctx); err != nil {
		app.logger.Error(ctx, "api stopped", "error", err)
	}

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
}
