// Package mutate funnels every write through one pipeline: precondition on
// a ready actor handle, exactly one remote call, invalidation of the
// affected cache keys, and a user-facing outcome notification. Writes are
// never retried automatically.
package mutate

import (
	"context"

	"github.com/mswiatek/scholarfolio/internal/client/actor"
	"github.com/mswiatek/scholarfolio/internal/client/blob"
	"github.com/mswiatek/scholarfolio/internal/client/gateway"
	"github.com/mswiatek/scholarfolio/internal/client/models"
	"github.com/mswiatek/scholarfolio/internal/client/notify"
	"github.com/mswiatek/scholarfolio/internal/client/querysync"
	"github.com/mswiatek/scholarfolio/internal/common"
	"github.com/mswiatek/scholarfolio/internal/logging"
)

type Pipeline struct {
	gw       *gateway.Gateway
	cache    *querysync.Cache
	notifier notify.Notifier
	logger   logging.Logger
}

func NewPipeline(gw *gateway.Gateway, cache *querysync.Cache, notifier notify.Notifier, logger logging.Logger) *Pipeline {
	return &Pipeline{gw: gw, cache: cache, notifier: notifier, logger: logger}
}

// run is the single write path. The cache keys are invalidated only after
// the write succeeded; a failed write leaves the cache exactly as it was.
func (p *Pipeline) run(ctx context.Context, successMsg, fallbackErrMsg string, keys []string, op func(ctx context.Context, a actor.Actor) error) error {
	a, ok := p.gw.Ready()
	if !ok {
		p.notifier.Error(fallbackErrMsg)
		return common.ErrActorNotAvailable
	}

	if err := op(ctx, a); err != nil {
		p.logger.Error(ctx, "mutation failed", "error", err)
		msg := err.Error()
		if msg == "" {
			msg = fallbackErrMsg
		}
		p.notifier.Error(msg)
		return err
	}

	for _, key := range keys {
		p.cache.Invalidate(key)
	}
	p.notifier.Success(successMsg)
	return nil
}

func (p *Pipeline) SetProfile(ctx context.Context, name, biography string, photo blob.Patch) error {
	return p.run(ctx, "Profile updated successfully", "Failed to update profile",
		[]string{querysync.KeyProfile},
		func(ctx context.Context, a actor.Actor) error {
			return a.SetProfile(ctx, name, biography, photo)
		})
}

func (p *Pipeline) SetContactInfo(ctx context.Context, email, affiliation string) error {
	return p.run(ctx, "Contact information updated", "Failed to update contact information",
		[]string{querysync.KeyContact},
		func(ctx context.Context, a actor.Actor) error {
			return a.SetContactInfo(ctx, email, affiliation)
		})
}

func (p *Pipeline) AddResearchInterest(ctx context.Context, name string) (string, error) {
	var id string
	err := p.run(ctx, "Research interest added", "Failed to add research interest",
		[]string{querysync.KeyInterests},
		func(ctx context.Context, a actor.Actor) error {
			var opErr error
			id, opErr = a.AddResearchInterest(ctx, name)
			return opErr
		})
	return id, err
}

func (p *Pipeline) DeleteResearchInterest(ctx context.Context, id string) error {
	return p.run(ctx, "Research interest deleted", "Failed to delete research interest",
		[]string{querysync.KeyInterests},
		func(ctx context.Context, a actor.Actor) error {
			return a.DeleteResearchInterest(ctx, id)
		})
}

func (p *Pipeline) AddPublication(ctx context.Context, title, description string, link *string, pdf blob.Patch) (string, error) {
	var id string
	err := p.run(ctx, "Publication added successfully", "Failed to add publication",
		[]string{querysync.KeyPublications},
		func(ctx context.Context, a actor.Actor) error {
			var opErr error
			id, opErr = a.AddPublication(ctx, title, description, link, pdf)
			return opErr
		})
	return id, err
}

func (p *Pipeline) UpdatePublication(ctx context.Context, id, title, description string, link *string, pdf blob.Patch) error {
	return p.run(ctx, "Publication updated successfully", "Failed to update publication",
		[]string{querysync.KeyPublications},
		func(ctx context.Context, a actor.Actor) error {
			return a.UpdatePublication(ctx, id, title, description, link, pdf)
		})
}

func (p *Pipeline) DeletePublication(ctx context.Context, id string) error {
	return p.run(ctx, "Publication deleted", "Failed to delete publication",
		[]string{querysync.KeyPublications},
		func(ctx context.Context, a actor.Actor) error {
			return a.DeletePublication(ctx, id)
		})
}

func (p *Pipeline) SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error {
	return p.run(ctx, "Profile saved", "Failed to save profile",
		[]string{querysync.KeyCallerProfile},
		func(ctx context.Context, a actor.Actor) error {
			return a.SaveCallerUserProfile(ctx, profile)
		})
}

func (p *Pipeline) AssignUserRole(ctx context.Context, userID, role string) error {
	return p.run(ctx, "Role assigned", "Failed to assign role", nil,
		func(ctx context.Context, a actor.Actor) error {
			return a.AssignUserRole(ctx, userID, role)
		})
}

// ClearData wipes all portfolio content, so every content resource goes
// stale at once.
func (p *Pipeline) ClearData(ctx context.Context) error {
	return p.run(ctx, "All data cleared", "Failed to clear data",
		[]string{querysync.KeyProfile, querysync.KeyContact, querysync.KeyInterests, querysync.KeyPublications},
		func(ctx context.Context, a actor.Actor) error {
			return a.ClearData(ctx)
		})
}
