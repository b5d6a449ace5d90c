// Package gateway owns the single shared actor handle. Every consumer goes
// through the gateway rather than building its own actor, so an identity
// change swaps the handle for everyone at once.
package gateway

import (
	"context"
	"sync"

	"github.com/mswiatek/scholarfolio/internal/client/actor"
	"github.com/mswiatek/scholarfolio/internal/client/identity"
	"github.com/mswiatek/scholarfolio/internal/logging"
)

// Factory builds an actor for an identity. id is nil for the anonymous
// actor.
type Factory func(id *identity.Identity) (actor.Actor, error)

// Gateway lazily builds and caches one actor per identity generation. While
// the identity is still being restored the handle is withheld; consumers
// must treat that window as "not ready" rather than "anonymous".
type Gateway struct {
	idctx   *identity.Context
	factory Factory
	logger  logging.Logger

	mu         sync.Mutex
	current    actor.Actor
	generation uint64
	built      bool
}

func New(idctx *identity.Context, factory Factory, logger logging.Logger) *Gateway {
	return &Gateway{idctx: idctx, factory: factory, logger: logger}
}

// Actor returns the shared handle for the current identity. The second
// return is true while the handle is being (re)built, during which no
// handle is observable. A failed build yields no handle but is not fatal:
// the next identity change triggers a fresh attempt.
func (g *Gateway) Actor() (actor.Actor, bool) {
	if g.idctx.IsInitializing() {
		return nil, true
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	gen := g.idctx.Generation()
	if g.built && gen == g.generation {
		return g.current, false
	}

	// Stale handle: the identity changed underneath it. Retire it before
	// anything built for the new identity becomes visible.
	if g.current != nil {
		_ = g.current.Close()
		g.current = nil
	}
	g.generation = gen
	g.built = true

	id, _ := g.idctx.Identity()
	a, err := g.factory(id)
	if err != nil {
		g.logger.Error(context.Background(), "actor build failed", "error", err)
		return nil, false
	}
	g.current = a
	return g.current, false
}

// Ready returns the handle only when it is usable right now: identity
// resolved, build finished, build succeeded.
func (g *Gateway) Ready() (actor.Actor, bool) {
	a, fetching := g.Actor()
	if fetching || a == nil {
		return nil, false
	}
	return a, true
}

// Generation exposes the identity generation the current handle was built
// for. Per-identity caches key their state on it.
func (g *Gateway) Generation() uint64 {
	return g.idctx.Generation()
}
