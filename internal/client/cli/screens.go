package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/moviebook/internal/client/history"
	"github.com/dmitrijs2005/moviebook/internal/client/nav"
)

// accountView is the profile tab. Editing account settings is not offered
// by this client.
type accountView struct{}

func (accountView) Render(w io.Writer) {
	fmt.Fprintf(w, "*%s | %s\n\n", history.Tabs[0].Label, history.Tabs[1].Label)
	fmt.Fprintln(w, "Type 'history' to see your orders.")
}

// Render draws the screen for the current route.
func (a *App) Render(ctx context.Context) {
	switch path := a.router.Current(); path {
	case nav.RouteLogin:
		fmt.Fprintln(a.out, "== Login ==")
		fmt.Fprintln(a.out, "Type 'login' to sign in or 'register' to create an account.")
	case nav.RouteRegister:
		fmt.Fprintln(a.out, "== Register ==")
		fmt.Fprintln(a.out, "Type 'register' to create an account or 'login' if you already have one.")
	case nav.RouteProfile:
		a.guard.Refresh()
		a.profile.Render(a.out)
	case nav.RouteOrderHistory:
		a.guard.Refresh()
		wctx, cancel := context.WithTimeout(ctx, settleTimeout)
		defer cancel()
		if err := a.history.WaitSettled(wctx); err != nil {
			a.logger.Warn(ctx, "history still loading", "error", err)
		}
		a.orders.Render(a.out)
		if a.history.Degraded() != nil && a.history.Status() == history.StatusEmpty {
			fmt.Fprintln(a.out, "(history could not be loaded)")
		}
	case nav.RouteDashboardAdmin, nav.RouteMoviesAdmin:
		a.navbar.Render(a.out)
		fmt.Fprintln(a.out)
		if path == nav.RouteDashboardAdmin {
			fmt.Fprintln(a.out, "== Dashboard ==")
		} else {
			fmt.Fprintln(a.out, "== Movies ==")
		}
	default:
		fmt.Fprintf(a.out, "Nothing to show at %s\n", path)
	}
}

// Open navigates to path.
func (a *App) Open(ctx context.Context, path string) {
	a.router.Push(path)
	a.Render(ctx)
}

// OpenLink follows an admin navbar link by its label.
func (a *App) OpenLink(ctx context.Context, label string) error {
	if !a.navbar.Open(label) {
		return fmt.Errorf("unknown link %q", label)
	}
	a.Render(ctx)
	return nil
}

func (a *App) Back(ctx context.Context) bool {
	if !a.router.Back() {
		return false
	}
	a.Render(ctx)
	return true
}

// Toggle expands or collapses history row n, counting from 1.
func (a *App) Toggle(ctx context.Context, n int) error {
	if a.router.Current() != nav.RouteOrderHistory {
		return fmt.Errorf("toggle is only available on %s", nav.RouteOrderHistory)
	}
	if _, err := a.history.Toggle(n - 1); err != nil {
		return err
	}
	a.Render(ctx)
	return nil
}

func (a *App) ToggleMenu(ctx context.Context) {
	a.navbar.ToggleMenu()
	a.Render(ctx)
}
