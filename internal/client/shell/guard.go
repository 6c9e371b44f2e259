package shell

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/moviebook/internal/client/session"
	"github.com/dmitrijs2005/moviebook/internal/logging"
)

// Guard follows the session and keeps the derived State current while
// mounted.
type Guard struct {
	store  session.Reader
	logger logging.Logger

	mu       sync.Mutex
	state    State
	onDenied func(err error)
	unsub    func()
	done     chan struct{}
}

func NewGuard(store session.Reader, logger logging.Logger) *Guard {
	return &Guard{store: store, logger: logger, state: Loading{}}
}

// OnUnauthenticated sets a hook called every time the guard settles in
// Unauthenticated. The error is always logged, hook or not.
func (g *Guard) OnUnauthenticated(fn func(err error)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onDenied = fn
}

// Mount derives the state from the current session and starts following
// session changes. Mounting twice is a no-op.
func (g *Guard) Mount() {
	g.mu.Lock()
	if g.unsub != nil {
		g.mu.Unlock()
		return
	}
	ch, unsub := g.store.Subscribe()
	done := make(chan struct{})
	g.unsub, g.done = unsub, done
	g.mu.Unlock()

	g.apply(g.store.Snapshot())

	go func() {
		defer close(done)
		for snap := range ch {
			g.apply(snap)
		}
	}()
}

// Unmount stops following the session and resets the state to Loading.
func (g *Guard) Unmount() {
	g.mu.Lock()
	unsub, done := g.unsub, g.done
	g.unsub, g.done = nil, nil
	g.mu.Unlock()

	if unsub == nil {
		return
	}
	unsub()
	<-done

	g.mu.Lock()
	g.state = Loading{}
	g.mu.Unlock()
}

// Refresh re-derives the state from the store right away.
func (g *Guard) Refresh() State {
	return g.apply(g.store.Snapshot())
}

func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Guard) apply(snap session.Snapshot) State {
	next := Derive(snap)

	g.mu.Lock()
	g.state = next
	hook := g.onDenied
	g.mu.Unlock()

	if u, ok := next.(Unauthenticated); ok {
		g.logger.Warn(context.Background(), "profile shell denied", "error", u.Err)
		if hook != nil {
			hook(u.Err)
		}
	}
	return next
}
