// Package identity tracks who the client currently is. The context starts
// in an initializing state until the stored session (if any) has been
// restored; dependent layers treat that window as "unknown", not as
// "anonymous".
package identity

import "sync"

// Identity is an authenticated session: the principal it belongs to plus
// the token pair that proves it.
type Identity struct {
	Principal    string
	AccessToken  string
	RefreshToken string
}

// Context is the single source of truth for the current identity. Every
// change of identity bumps a generation counter; layers that cache
// per-identity state compare generations to know when to discard it.
type Context struct {
	mu           sync.RWMutex
	identity     *Identity
	initializing bool
	generation   uint64
}

func NewContext() *Context {
	return &Context{initializing: true}
}

// MarkResolved ends the initializing window. Called once after session
// restore has finished, whether or not it produced an identity.
func (c *Context) MarkResolved() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initializing = false
}

// IsInitializing reports whether the identity is still being restored.
func (c *Context) IsInitializing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initializing
}

// Identity returns the current identity and whether one is present.
func (c *Context) Identity() (*Identity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.identity == nil {
		return nil, false
	}
	clone := *c.identity
	return &clone, true
}

// Generation returns the current identity generation. It changes on every
// SetIdentity and Clear, never on token refresh.
func (c *Context) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// SetIdentity installs a new identity (login or session restore) and ends
// the initializing window.
func (c *Context) SetIdentity(id *Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	clone := *id
	c.identity = &clone
	c.initializing = false
	c.generation++
}

// UpdateTokens replaces the token pair after a refresh. The principal is
// unchanged so the generation is not bumped: refreshed tokens are the same
// identity, and dependent caches must survive them.
func (c *Context) UpdateTokens(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.identity == nil {
		return
	}
	c.identity.AccessToken = accessToken
	c.identity.RefreshToken = refreshToken
}

// Clear drops the identity (logout). The context returns to anonymous, not
// to initializing.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = nil
	c.initializing = false
	c.generation++
}
