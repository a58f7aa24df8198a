// ABOUTME: Gate for views and commands that need a signed-in user
// ABOUTME: Waits for startup token validation before deciding to render or redirect

package guard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrLoginRequired is returned by Require when no session is established
var ErrLoginRequired = errors.New("not logged in, run `bloghub login`")

// Authenticator is the part of the session store a gate consults
type Authenticator interface {
	InitializeAuth(ctx context.Context)
	IsAuthenticated() bool
}

// Decision is what a protected view should do right now
type Decision int

const (
	// Pending means initialization has not finished: show a waiting state, never redirect
	Pending Decision = iota
	// Redirect means send the user to the login screen and render nothing
	Redirect
	// Render means show the protected content
	Render
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Redirect:
		return "redirect"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Gate tracks one mount of a protected view. Create a new Gate per mount.
type Gate struct {
	auth        Authenticator
	once        sync.Once
	initialized atomic.Bool
}

// New creates an unmounted gate
func New(auth Authenticator) *Gate {
	return &Gate{auth: auth}
}

// Mount runs InitializeAuth exactly once for this gate and blocks until it
// returns. Later calls return immediately.
func (g *Gate) Mount(ctx context.Context) {
	g.once.Do(func() {
		g.auth.InitializeAuth(ctx)
		g.initialized.Store(true)
	})
}

// Initialized reports whether Mount has completed
func (g *Gate) Initialized() bool {
	return g.initialized.Load()
}

// Decision is Pending until Mount completes, then Render or Redirect depending
// on the live authentication state
func (g *Gate) Decision() Decision {
	if !g.Initialized() {
		return Pending
	}
	if !g.auth.IsAuthenticated() {
		return Redirect
	}
	return Render
}

// Require mounts the gate and fails with ErrLoginRequired unless the session is
// authenticated
func (g *Gate) Require(ctx context.Context) error {
	g.Mount(ctx)
	if g.Decision() != Render {
		return ErrLoginRequired
	}
	return nil
}
