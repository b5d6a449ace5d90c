// Package querysync keeps client reads coherent: every view of remote data
// goes through one shared cache, keyed per resource, gated on the actor
// handle being ready, and refreshed through explicit invalidation rather
// than polling.
package querysync

import (
	"context"
	"sync"

	"github.com/mswiatek/scholarfolio/internal/client/actor"
	"github.com/mswiatek/scholarfolio/internal/client/gateway"
	"github.com/mswiatek/scholarfolio/internal/client/models"
	"github.com/mswiatek/scholarfolio/internal/common"
)

// Cache keys, one per remote resource.
const (
	KeyProfile       = "profile"
	KeyInterests     = "researchInterests"
	KeyPublications  = "publications"
	KeyContact       = "contactInfo"
	KeyCallerProfile = "currentUserProfile"
)

type entry interface {
	reset()
	invalidate()
}

// Cache owns every cached resource. All entries are dropped wholesale when
// the identity generation changes: data fetched as one principal must never
// resurface under another.
type Cache struct {
	gw      *gateway.Gateway
	entries map[string]entry

	genMu      sync.Mutex
	generation uint64

	Profile       *Resource[*models.Profile]
	Interests     *Resource[[]models.ResearchInterest]
	Publications  *Resource[[]models.Publication]
	Contact       *Resource[*models.ContactInfo]
	CallerProfile *Resource[*models.UserProfile]
}

func NewCache(gw *gateway.Gateway) *Cache {
	c := &Cache{
		gw:         gw,
		entries:    make(map[string]entry),
		generation: gw.Generation(),
	}

	c.Profile = newResource(c, KeyProfile, true, func(ctx context.Context, a actor.Actor) (*models.Profile, error) {
		if a == nil {
			return nil, nil
		}
		return a.GetProfile(ctx)
	})

	c.Interests = newResource(c, KeyInterests, true, func(ctx context.Context, a actor.Actor) ([]models.ResearchInterest, error) {
		if a == nil {
			return []models.ResearchInterest{}, nil
		}
		return a.GetResearchInterests(ctx)
	})

	c.Publications = newResource(c, KeyPublications, true, func(ctx context.Context, a actor.Actor) ([]models.Publication, error) {
		if a == nil {
			return []models.Publication{}, nil
		}
		return a.GetPublications(ctx)
	})

	c.Contact = newResource(c, KeyContact, true, func(ctx context.Context, a actor.Actor) (*models.ContactInfo, error) {
		if a == nil {
			return nil, nil
		}
		return a.GetContactInfo(ctx)
	})

	// The caller profile is the one read where a missing handle is an
	// error: an absent profile (nil, nil) must stay distinguishable from
	// "could not ask".
	c.CallerProfile = newResource(c, KeyCallerProfile, false, func(ctx context.Context, a actor.Actor) (*models.UserProfile, error) {
		if a == nil {
			return nil, common.ErrActorNotAvailable
		}
		return a.GetCallerUserProfile(ctx)
	})

	return c
}

// syncGeneration drops every entry when the identity generation has moved
// on since the cache last looked.
func (c *Cache) syncGeneration() {
	c.genMu.Lock()
	defer c.genMu.Unlock()

	gen := c.gw.Generation()
	if gen == c.generation {
		return
	}
	c.generation = gen
	for _, e := range c.entries {
		e.reset()
	}
}

// Invalidate marks one resource stale. The data is refetched on the next
// read, not eagerly.
func (c *Cache) Invalidate(key string) {
	if e, ok := c.entries[key]; ok {
		e.invalidate()
	}
}

// InvalidateAll marks every resource stale.
func (c *Cache) InvalidateAll() {
	for _, e := range c.entries {
		e.invalidate()
	}
}
