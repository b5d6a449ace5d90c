// Package cli is the interactive terminal frontend for the portfolio
// client. Every command goes through the shared layers: reads through the
// query cache, writes through the mutation pipeline, permissions through
// the authorization resolver.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/mswiatek/scholarfolio/internal/client/actor"
	"github.com/mswiatek/scholarfolio/internal/client/authz"
	"github.com/mswiatek/scholarfolio/internal/client/config"
	"github.com/mswiatek/scholarfolio/internal/client/gateway"
	"github.com/mswiatek/scholarfolio/internal/client/identity"
	"github.com/mswiatek/scholarfolio/internal/client/mutate"
	"github.com/mswiatek/scholarfolio/internal/client/notify"
	"github.com/mswiatek/scholarfolio/internal/client/querysync"
	"github.com/mswiatek/scholarfolio/internal/logging"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	idctx    *identity.Context
	auth     *actor.AuthClient
	gw       *gateway.Gateway
	cache    *querysync.Cache
	resolver *authz.Resolver
	pipeline *mutate.Pipeline
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(cfg *config.Config, logger logging.Logger) *App {
	app := &App{
		config: cfg,
		logger: logger,
		idctx:  identity.NewContext(),
		auth:   actor.NewAuthClient(cfg.ServerEndpointURL),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	app.gw = gateway.New(app.idctx, app.buildActor, logger)
	app.cache = querysync.NewCache(app.gw)
	app.resolver = authz.NewResolver(app.idctx, app.gw)
	app.pipeline = mutate.NewPipeline(app.gw, app.cache, notify.NewConsole(os.Stdout), logger)

	return app
}

// buildActor is the gateway factory: one actor per identity. Refreshed
// tokens flow back into the identity context and the session file so the
// next restart picks them up.
func (a *App) buildActor(id *identity.Identity) (actor.Actor, error) {
	if id == nil {
		return actor.NewHTTPActor(a.config.ServerEndpointURL), nil
	}
	return actor.NewHTTPActor(a.config.ServerEndpointURL,
		actor.WithTokens(id.AccessToken, id.RefreshToken),
		actor.WithTokenListener(func(accessToken, refreshToken string) {
			a.idctx.UpdateTokens(accessToken, refreshToken)
			a.persistSession()
		}),
	), nil
}

// opCtx derives the per-operation deadline used for every remote call.
func (a *App) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) Run(ctx context.Context) {
	a.restoreSession()
	a.Root(ctx)
}
