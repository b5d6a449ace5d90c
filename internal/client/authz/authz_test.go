package authz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mswiatek/scholarfolio/internal/client/actor"
	"github.com/mswiatek/scholarfolio/internal/client/gateway"
	"github.com/mswiatek/scholarfolio/internal/client/identity"
	"github.com/mswiatek/scholarfolio/internal/common"
	"github.com/mswiatek/scholarfolio/internal/logging"
)

type fakeActor struct {
	actor.Actor
	isOwner      bool
	isOwnerErr   error
	isOwnerCalls int
}

func (f *fakeActor) IsOwner(ctx context.Context) (bool, error) {
	f.isOwnerCalls++
	return f.isOwner, f.isOwnerErr
}

func (f *fakeActor) Close() error { return nil }

func newTestResolver(fake *fakeActor) (*Resolver, *identity.Context) {
	idctx := identity.NewContext()
	gw := gateway.New(idctx, func(*identity.Identity) (actor.Actor, error) {
		if fake == nil {
			return nil, errors.New("build failed")
		}
		return fake, nil
	}, logging.NewDiscard())
	return NewResolver(idctx, gw), idctx
}

func TestLoadingWhileInitializing(t *testing.T) {
	fake := &fakeActor{isOwner: true}
	r, _ := newTestResolver(fake)

	status := r.Status(context.Background())
	require.True(t, status.Loading)
	require.Equal(t, Unauthenticated, status.Capability)
	require.Zero(t, fake.isOwnerCalls)
}

func TestAnonymousNeverQueriesBackend(t *testing.T) {
	fake := &fakeActor{isOwner: true}
	r, idctx := newTestResolver(fake)
	idctx.MarkResolved()

	status := r.Status(context.Background())
	require.False(t, status.Loading)
	require.Equal(t, Unauthenticated, status.Capability)
	require.False(t, status.IsAuthenticated)
	require.Zero(t, fake.isOwnerCalls)
	require.False(t, r.CanEdit(context.Background()))
}

func TestOwnerCanEdit(t *testing.T) {
	fake := &fakeActor{isOwner: true}
	r, idctx := newTestResolver(fake)
	idctx.SetIdentity(&identity.Identity{Principal: "owner"})

	status := r.Status(context.Background())
	require.Equal(t, CanEdit, status.Capability)
	require.True(t, status.IsAuthenticated)
	require.True(t, r.CanEdit(context.Background()))
}

func TestAuthenticatedNonOwnerIsReadOnly(t *testing.T) {
	fake := &fakeActor{isOwner: false}
	r, idctx := newTestResolver(fake)
	idctx.SetIdentity(&identity.Identity{Principal: "visitor"})

	status := r.Status(context.Background())
	require.Equal(t, ReadOnly, status.Capability)
	require.True(t, status.IsAuthenticated)
}

func TestVerdictCachedPerIdentity(t *testing.T) {
	fake := &fakeActor{isOwner: true}
	r, idctx := newTestResolver(fake)
	idctx.SetIdentity(&identity.Identity{Principal: "owner"})

	r.Status(context.Background())
	r.Status(context.Background())
	require.Equal(t, 1, fake.isOwnerCalls)

	idctx.SetIdentity(&identity.Identity{Principal: "someone-else"})
	r.Status(context.Background())
	require.Equal(t, 2, fake.isOwnerCalls)
}

func TestFailedCheckDeniesWithoutRetry(t *testing.T) {
	fake := &fakeActor{isOwner: true, isOwnerErr: fmt.Errorf("%w: timeout", common.ErrUnavailable)}
	r, idctx := newTestResolver(fake)
	idctx.SetIdentity(&identity.Identity{Principal: "owner"})

	status := r.Status(context.Background())
	require.Equal(t, ReadOnly, status.Capability)
	require.ErrorIs(t, status.Err, common.ErrUnavailable)

	status = r.Status(context.Background())
	require.Equal(t, ReadOnly, status.Capability)
	require.Equal(t, 1, fake.isOwnerCalls)
}

func TestNoHandleMeansReadOnly(t *testing.T) {
	r, idctx := newTestResolver(nil)
	idctx.SetIdentity(&identity.Identity{Principal: "owner"})

	status := r.Status(context.Background())
	require.Equal(t, ReadOnly, status.Capability)
	require.True(t, status.IsAuthenticated)
	require.False(t, r.CanEdit(context.Background()))
}

func TestCapabilityString(t *testing.T) {
	require.Equal(t, "owner", CanEdit.String())
	require.Equal(t, "read-only", ReadOnly.String())
	require.Equal(t, "unauthenticated", Unauthenticated.String())
}
