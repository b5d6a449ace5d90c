// Package authz decides what the current caller may do. The decision is
// deny-by-default: editing rights exist only after the backend has
// positively confirmed ownership for the current identity.
package authz

import (
	"context"
	"sync"

	"github.com/mswiatek/scholarfolio/internal/client/gateway"
	"github.com/mswiatek/scholarfolio/internal/client/identity"
)

// Capability is the caller's effective permission level.
type Capability int

const (
	// Unauthenticated callers read public content only.
	Unauthenticated Capability = iota
	// ReadOnly callers are signed in but do not own the portfolio.
	ReadOnly
	// CanEdit is the portfolio owner.
	CanEdit
)

func (c Capability) String() string {
	switch c {
	case CanEdit:
		return "owner"
	case ReadOnly:
		return "read-only"
	default:
		return "unauthenticated"
	}
}

// Status is the resolver's answer for the current identity.
type Status struct {
	Capability      Capability
	IsAuthenticated bool
	// Loading is true while the answer cannot be computed yet: identity
	// restore or handle rebuild still in flight. The capability carried
	// alongside is the pessimistic one.
	Loading bool
	// Err records a failed ownership check. The capability is already
	// degraded to ReadOnly; the error is kept for display.
	Err error
}

// Resolver caches one ownership verdict per identity generation. A failed
// check is cached like a successful one: no automatic retry, the caller is
// treated as not the owner until the identity changes.
type Resolver struct {
	idctx *identity.Context
	gw    *gateway.Gateway

	mu         sync.Mutex
	generation uint64
	resolved   bool
	isOwner    bool
	err        error
}

func NewResolver(idctx *identity.Context, gw *gateway.Gateway) *Resolver {
	return &Resolver{idctx: idctx, gw: gw}
}

// Status resolves the caller's capability. Anonymous callers are answered
// locally; the backend is never asked whether "nobody" is the owner.
func (r *Resolver) Status(ctx context.Context) Status {
	if r.idctx.IsInitializing() {
		return Status{Capability: Unauthenticated, Loading: true}
	}

	if _, authenticated := r.idctx.Identity(); !authenticated {
		return Status{Capability: Unauthenticated}
	}

	a, fetching := r.gw.Actor()
	if fetching || a == nil {
		return Status{Capability: ReadOnly, IsAuthenticated: true, Loading: fetching}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	gen := r.gw.Generation()
	if gen != r.generation {
		r.generation = gen
		r.resolved = false
		r.isOwner = false
		r.err = nil
	}

	if !r.resolved {
		r.isOwner, r.err = a.IsOwner(ctx)
		if r.err != nil {
			r.isOwner = false
		}
		r.resolved = true
	}

	capability := ReadOnly
	if r.isOwner {
		capability = CanEdit
	}
	return Status{Capability: capability, IsAuthenticated: true, Err: r.err}
}

// CanEdit is a convenience wrapper for mutation gating.
func (r *Resolver) CanEdit(ctx context.Context) bool {
	return r.Status(ctx).Capability == CanEdit
}
