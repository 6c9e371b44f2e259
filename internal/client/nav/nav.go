// Package nav keeps track of the client's current screen.
package nav

import "sync"

// Routes the client knows how to show.
const (
	RouteLogin          = "/login"
	RouteRegister       = "/register"
	RouteDashboardAdmin = "/dashboard-admin"
	RouteMoviesAdmin    = "/movies-admin"
	RouteProfile        = "/profile"
	RouteOrderHistory   = "/order-history"
)

// Navigator is the part of the router the flows depend on.
type Navigator interface {
	Push(path string)
	// Replace swaps the current entry so Back cannot return to it.
	Replace(path string)
	Current() string
}

// Router is a history stack of visited paths.
type Router struct {
	mu        sync.Mutex
	stack     []string
	listeners []func(path string)
}

var _ Navigator = (*Router)(nil)

func NewRouter(start string) *Router {
	return &Router{stack: []string{start}}
}

// OnChange registers fn to be called with the new path after every move.
func (r *Router) OnChange(fn func(path string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

func (r *Router) Push(path string) {
	r.move(func() bool {
		r.stack = append(r.stack, path)
		return true
	})
}

func (r *Router) Replace(path string) {
	r.move(func() bool {
		r.stack[len(r.stack)-1] = path
		return true
	})
}

// Back pops the current entry. It reports false at the start of history.
func (r *Router) Back() bool {
	return r.move(func() bool {
		if len(r.stack) < 2 {
			return false
		}
		r.stack = r.stack[:len(r.stack)-1]
		return true
	})
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack[len(r.stack)-1]
}

// History returns the visited paths, oldest first.
func (r *Router) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.stack...)
}

// move applies change and, if it reports a move, notifies listeners outside
// the lock.
func (r *Router) move(change func() bool) bool {
	r.mu.Lock()
	if !change() {
		r.mu.Unlock()
		return false
	}
	current := r.stack[len(r.stack)-1]
	listeners := append([]func(string){}, r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(current)
	}
	return true
}
