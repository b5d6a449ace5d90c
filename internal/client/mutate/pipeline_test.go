package mutate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mswiatek/scholarfolio/internal/client/actor"
	"github.com/mswiatek/scholarfolio/internal/client/blob"
	"github.com/mswiatek/scholarfolio/internal/client/gateway"
	"github.com/mswiatek/scholarfolio/internal/client/identity"
	"github.com/mswiatek/scholarfolio/internal/client/models"
	"github.com/mswiatek/scholarfolio/internal/client/querysync"
	"github.com/mswiatek/scholarfolio/internal/common"
	"github.com/mswiatek/scholarfolio/internal/logging"
)

type fakeActor struct {
	actor.Actor

	profile      *models.Profile
	profileCalls int

	setProfileErr   error
	setProfileCalls int

	interests      []models.ResearchInterest
	interestsCalls int

	addInterestID    string
	addInterestCalls int

	clearCalls int
}

func (f *fakeActor) GetProfile(ctx context.Context) (*models.Profile, error) {
	f.profileCalls++
	return f.profile, nil
}

func (f *fakeActor) SetProfile(ctx context.Context, name, biography string, photo blob.Patch) error {
	f.setProfileCalls++
	if f.setProfileErr != nil {
		return f.setProfileErr
	}
	f.profile = &models.Profile{Name: name, Biography: biography}
	return nil
}

func (f *fakeActor) GetResearchInterests(ctx context.Context) ([]models.ResearchInterest, error) {
	f.interestsCalls++
	return f.interests, nil
}

func (f *fakeActor) AddResearchInterest(ctx context.Context, name string) (string, error) {
	f.addInterestCalls++
	f.interests = append(f.interests, models.ResearchInterest{ID: f.addInterestID, Name: name})
	return f.addInterestID, nil
}

func (f *fakeActor) GetPublications(ctx context.Context) ([]models.Publication, error) {
	return nil, nil
}

func (f *fakeActor) GetContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	return nil, nil
}

func (f *fakeActor) ClearData(ctx context.Context) error {
	f.clearCalls++
	return nil
}

func (f *fakeActor) Close() error { return nil }

type fakeNotifier struct {
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *fakeNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func newTestPipeline(fake *fakeActor, ready bool) (*Pipeline, *fakeNotifier, *querysync.Cache) {
	idctx := identity.NewContext()
	if ready {
		idctx.SetIdentity(&identity.Identity{Principal: "owner"})
	}

	gw := gateway.New(idctx, func(*identity.Identity) (actor.Actor, error) {
		return fake, nil
	}, logging.NewDiscard())

	cache := querysync.NewCache(gw)
	notifier := &fakeNotifier{}
	p := NewPipeline(gw, cache, notifier, logging.NewDiscard())
	return p, notifier, cache
}

func TestMutationRequiresReadyHandle(t *testing.T) {
	fake := &fakeActor{}
	p, notifier, _ := newTestPipeline(fake, false)

	err := p.SetProfile(context.Background(), "Dr. A", "bio", blob.Unchanged())
	require.ErrorIs(t, err, common.ErrActorNotAvailable)
	require.Zero(t, fake.setProfileCalls)
	require.Len(t, notifier.errors, 1)
	require.Empty(t, notifier.successes)
}

func TestSuccessfulMutationInvalidatesAndNotifies(t *testing.T) {
	fake := &fakeActor{profile: &models.Profile{Name: "Old"}}
	p, notifier, cache := newTestPipeline(fake, true)

	// Warm the cache first so invalidation is observable.
	snap := cache.Profile.Get(context.Background())
	require.Equal(t, "Old", snap.Data.Name)

	err := p.SetProfile(context.Background(), "New", "bio", blob.Unchanged())
	require.NoError(t, err)
	require.Equal(t, 1, fake.setProfileCalls)
	require.Equal(t, []string{"Profile updated successfully"}, notifier.successes)

	snap = cache.Profile.Get(context.Background())
	require.Equal(t, "New", snap.Data.Name)
	require.Equal(t, 2, fake.profileCalls)
}

func TestFailedMutationLeavesCacheIntact(t *testing.T) {
	fake := &fakeActor{
		profile:       &models.Profile{Name: "Old"},
		setProfileErr: fmt.Errorf("%w: name is required", common.ErrValidation),
	}
	p, notifier, cache := newTestPipeline(fake, true)

	cache.Profile.Get(context.Background())

	err := p.SetProfile(context.Background(), "", "bio", blob.Unchanged())
	require.ErrorIs(t, err, common.ErrValidation)
	require.Empty(t, notifier.successes)
	require.Len(t, notifier.errors, 1)
	require.Contains(t, notifier.errors[0], "name is required")

	// No invalidation happened: the cached value is served without a refetch.
	snap := cache.Profile.Get(context.Background())
	require.Equal(t, "Old", snap.Data.Name)
	require.Equal(t, 1, fake.profileCalls)
}

func TestMutationIsNotRetried(t *testing.T) {
	fake := &fakeActor{setProfileErr: errors.New("transient failure")}
	p, _, _ := newTestPipeline(fake, true)

	_ = p.SetProfile(context.Background(), "Dr. A", "bio", blob.Unchanged())
	require.Equal(t, 1, fake.setProfileCalls)
}

func TestAddInterestReturnsIDAndInvalidates(t *testing.T) {
	fake := &fakeActor{addInterestID: "interest-1"}
	p, notifier, cache := newTestPipeline(fake, true)

	cache.Interests.Get(context.Background())

	id, err := p.AddResearchInterest(context.Background(), "NLP")
	require.NoError(t, err)
	require.Equal(t, "interest-1", id)
	require.Equal(t, []string{"Research interest added"}, notifier.successes)

	snap := cache.Interests.Get(context.Background())
	require.Len(t, snap.Data, 1)
	require.Equal(t, 2, fake.interestsCalls)
}

func TestClearDataInvalidatesContentKeys(t *testing.T) {
	fake := &fakeActor{profile: &models.Profile{Name: "Dr. A"}}
	p, notifier, cache := newTestPipeline(fake, true)

	cache.Profile.Get(context.Background())

	err := p.ClearData(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, fake.clearCalls)
	require.Equal(t, []string{"All data cleared"}, notifier.successes)

	fake.profile = nil
	snap := cache.Profile.Get(context.Background())
	require.Nil(t, snap.Data)
	require.Equal(t, 2, fake.profileCalls)
}
