package gateway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mswiatek/scholarfolio/internal/client/actor"
	"github.com/mswiatek/scholarfolio/internal/client/identity"
	"github.com/mswiatek/scholarfolio/internal/logging"
)

type fakeActor struct {
	actor.Actor
	boundTo string
	closed  bool
}

func (f *fakeActor) Close() error {
	f.closed = true
	return nil
}

func newFactory() (Factory, *[]*fakeActor) {
	built := &[]*fakeActor{}
	factory := func(id *identity.Identity) (actor.Actor, error) {
		a := &fakeActor{}
		if id != nil {
			a.boundTo = id.Principal
		}
		*built = append(*built, a)
		return a, nil
	}
	return factory, built
}

func TestActorWithheldWhileInitializing(t *testing.T) {
	idctx := identity.NewContext()
	factory, built := newFactory()
	gw := New(idctx, factory, logging.NewDiscard())

	a, fetching := gw.Actor()
	require.Nil(t, a)
	require.True(t, fetching)
	require.Empty(t, *built)

	_, ready := gw.Ready()
	require.False(t, ready)
}

func TestAnonymousActorBuiltOnce(t *testing.T) {
	idctx := identity.NewContext()
	idctx.MarkResolved()
	factory, built := newFactory()
	gw := New(idctx, factory, logging.NewDiscard())

	a1, fetching := gw.Actor()
	require.False(t, fetching)
	require.NotNil(t, a1)

	a2, _ := gw.Actor()
	require.Same(t, a1, a2)
	require.Len(t, *built, 1)
	require.Empty(t, (*built)[0].boundTo)
}

func TestIdentityChangeRebuildsAndClosesOldActor(t *testing.T) {
	idctx := identity.NewContext()
	idctx.MarkResolved()
	factory, built := newFactory()
	gw := New(idctx, factory, logging.NewDiscard())

	anon, _ := gw.Actor()

	idctx.SetIdentity(&identity.Identity{Principal: "alice"})

	authed, fetching := gw.Actor()
	require.False(t, fetching)
	require.NotSame(t, anon, authed)
	require.Len(t, *built, 2)
	require.True(t, (*built)[0].closed)
	require.Equal(t, "alice", (*built)[1].boundTo)
}

func TestTokenRefreshDoesNotRebuild(t *testing.T) {
	idctx := identity.NewContext()
	idctx.SetIdentity(&identity.Identity{Principal: "alice", AccessToken: "at", RefreshToken: "rt"})
	factory, built := newFactory()
	gw := New(idctx, factory, logging.NewDiscard())

	a1, _ := gw.Actor()
	idctx.UpdateTokens("new-at", "new-rt")
	a2, _ := gw.Actor()

	require.Same(t, a1, a2)
	require.Len(t, *built, 1)
}

func TestBuildFailureIsNotFatal(t *testing.T) {
	idctx := identity.NewContext()
	idctx.MarkResolved()

	attempts := 0
	factory := func(id *identity.Identity) (actor.Actor, error) {
		attempts++
		if id == nil {
			return nil, errors.New("boom")
		}
		return &fakeActor{boundTo: id.Principal}, nil
	}
	gw := New(idctx, factory, logging.NewDiscard())

	a, fetching := gw.Actor()
	require.Nil(t, a)
	require.False(t, fetching)
	require.Equal(t, 1, attempts)

	// Failure is cached for this generation.
	a, _ = gw.Actor()
	require.Nil(t, a)
	require.Equal(t, 1, attempts)

	// A new identity triggers a fresh build attempt.
	idctx.SetIdentity(&identity.Identity{Principal: "alice"})
	a, _ = gw.Actor()
	require.NotNil(t, a)
	require.Equal(t, 2, attempts)
}
