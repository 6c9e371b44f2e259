package shell

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/moviebook/internal/client/nav"
)

// Logouter ends the session.
type Logouter interface {
	Logout(ctx context.Context) error
}

// Link is a navbar entry.
type Link struct {
	Label string
	Path  string
}

var adminLinks = []Link{
	{Label: "Dashboard", Path: nav.RouteDashboardAdmin},
	{Label: "Movie", Path: nav.RouteMoviesAdmin},
}

// AdminNavbar is the top bar of the admin screens. On narrow terminals the
// links are hidden behind a hamburger menu.
type AdminNavbar struct {
	router nav.Navigator
	auth   Logouter

	mu       sync.Mutex
	menuOpen bool
}

func NewAdminNavbar(router nav.Navigator, auth Logouter) *AdminNavbar {
	return &AdminNavbar{router: router, auth: auth}
}

func (n *AdminNavbar) Links() []Link {
	return append([]Link(nil), adminLinks...)
}

// ToggleMenu opens or closes the compact menu and reports the new state.
func (n *AdminNavbar) ToggleMenu() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.menuOpen = !n.menuOpen
	return n.menuOpen
}

func (n *AdminNavbar) MenuOpen() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.menuOpen
}

// Open navigates to the link with the given label.
func (n *AdminNavbar) Open(label string) bool {
	for _, l := range adminLinks {
		if l.Label == label {
			n.router.Push(l.Path)
			return true
		}
	}
	return false
}

// Logout closes the menu and delegates to the auth flow.
func (n *AdminNavbar) Logout(ctx context.Context) error {
	n.mu.Lock()
	n.menuOpen = false
	n.mu.Unlock()
	return n.auth.Logout(ctx)
}

func (n *AdminNavbar) Render(w io.Writer) {
	current := n.router.Current()
	mark := func(l Link) string {
		if l.Path == current {
			return "*" + l.Label
		}
		return l.Label
	}

	if !n.MenuOpen() {
		fmt.Fprintf(w, "moviebook  %s | %s   [AD] Admin  [≡]\n", mark(adminLinks[0]), mark(adminLinks[1]))
		return
	}
	fmt.Fprintln(w, "moviebook  [AD] Admin  [x]")
	for _, l := range adminLinks {
		fmt.Fprintf(w, "  %s\n", mark(l))
	}
	fmt.Fprintln(w, "  Logout")
}
