package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/mswiatek/scholarfolio/internal/client/cli"
	"github.com/mswiatek/scholarfolio/internal/client/config"
	"github.com/mswiatek/scholarfolio/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	app := cli.NewApp(cfg, logger)
	app.Run(ctx)
}
