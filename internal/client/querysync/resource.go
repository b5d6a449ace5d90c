package querysync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/mswiatek/scholarfolio/internal/client/actor"
	"github.com/mswiatek/scholarfolio/internal/common"
)

// Snapshot is the result of a read: cached data, the error that produced it,
// or Loading while the read is disabled because no usable handle exists yet.
type Snapshot[T any] struct {
	Data    T
	Err     error
	Loading bool
}

// FetchFunc loads a resource through an actor. The actor may be nil when no
// handle is available; fetchers decide what that means for their resource.
type FetchFunc[T any] func(ctx context.Context, a actor.Actor) (T, error)

// Resource is one cached, refetchable read. Results (including errors) stay
// cached until the resource is invalidated or the identity changes; an
// invalidation only marks the entry stale, the refetch happens on the next
// Get.
type Resource[T any] struct {
	cache     *Cache
	key       string
	retryable bool
	fetch     FetchFunc[T]

	mu      sync.Mutex
	data    T
	err     error
	fetched bool
	stale   bool
}

func newResource[T any](c *Cache, key string, retryable bool, fetch FetchFunc[T]) *Resource[T] {
	r := &Resource[T]{cache: c, key: key, retryable: retryable, fetch: fetch}
	c.entries[key] = r
	return r
}

func (r *Resource[T]) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	r.data = zero
	r.err = nil
	r.fetched = false
	r.stale = false
}

func (r *Resource[T]) invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stale = true
}

// Get returns the cached value, fetching if the entry is empty or stale.
// While the identity is unresolved or the handle is mid-rebuild the read is
// disabled and a Loading snapshot is returned without touching the remote.
func (r *Resource[T]) Get(ctx context.Context) Snapshot[T] {
	r.cache.syncGeneration()

	a, fetching := r.cache.gw.Actor()
	if fetching {
		var zero T
		return Snapshot[T]{Data: zero, Loading: true}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fetched && !r.stale {
		return Snapshot[T]{Data: r.data, Err: r.err}
	}

	data, err := r.run(ctx, a)
	r.data = data
	r.err = err
	r.fetched = true
	r.stale = false
	return Snapshot[T]{Data: data, Err: err}
}

// run executes the fetch, with a short fibonacci backoff for resources that
// tolerate retries. Authorization-sensitive reads never retry: a denial is
// an answer, not an outage.
func (r *Resource[T]) run(ctx context.Context, a actor.Actor) (T, error) {
	if !r.retryable {
		return r.fetch(ctx, a)
	}

	var out T
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		data, ferr := r.fetch(ctx, a)
		if ferr != nil {
			if retryableFetchError(ferr) {
				return retry.RetryableError(ferr)
			}
			return ferr
		}
		out = data
		return nil
	})
	return out, err
}

// retryableFetchError limits retries to transient transport failures.
func retryableFetchError(err error) bool {
	return errors.Is(err, common.ErrUnavailable) || errors.Is(err, common.ErrInternal)
}
