package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviebook/internal/client/api"
	"github.com/dmitrijs2005/moviebook/internal/client/config"
	"github.com/dmitrijs2005/moviebook/internal/client/history"
	"github.com/dmitrijs2005/moviebook/internal/client/nav"
	"github.com/dmitrijs2005/moviebook/internal/client/notify"
	"github.com/dmitrijs2005/moviebook/internal/client/services"
	"github.com/dmitrijs2005/moviebook/internal/client/session"
	"github.com/dmitrijs2005/moviebook/internal/client/shell"
	"github.com/dmitrijs2005/moviebook/internal/logging"
)

// settleTimeout bounds how long a screen waits for its data before it is
// drawn in the loading state.
const settleTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	out    io.Writer
	reader *bufio.Reader

	store       *session.Store
	router      *nav.Router
	authService services.AuthService
	guard       *shell.Guard
	history     *history.Page
	profile     *shell.ProfileLayout
	orders      *shell.ProfileLayout
	navbar      *shell.AdminNavbar

	mu    sync.Mutex
	route string
}

// NewApp wires the client against cfg. User input is read from in and every
// screen and notification is written to out.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, logger logging.Logger) (*App, error) {
	store, err := session.Open(ctx, cfg.SessionDSN, logger)
	if err != nil {
		logger.Error(ctx, "error initializing session store", "error", err)
		return nil, err
	}

	caller := api.NewCaller(cfg.ServerURL, nil)
	router := nav.NewRouter(nav.RouteLogin)
	notifier := notify.NewTerminal(out)

	as := services.NewAuthService(caller, store, notifier, router, logger, cfg.RedirectDelay)
	guard := shell.NewGuard(store, logger)
	page := history.NewPage(caller, store, logger)

	a := &App{
		config:      cfg,
		logger:      logger,
		out:         out,
		reader:      bufio.NewReader(in),
		store:       store,
		router:      router,
		authService: as,
		guard:       guard,
		history:     page,
		profile:     shell.NewProfileLayout(guard, accountView{}),
		orders:      shell.NewProfileLayout(guard, page),
		navbar:      shell.NewAdminNavbar(router, as),
	}
	router.OnChange(a.onRoute)
	a.onRoute(router.Current())
	return a, nil
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "moviebook client (type 'help' for commands)")
	a.Render(ctx)
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}

// Close unmounts every screen and releases the session store.
func (a *App) Close() {
	a.authService.Close()
	a.history.Unmount()
	a.guard.Unmount()
	if err := a.store.Close(); err != nil {
		a.logger.Warn(context.Background(), "session store not closed", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().Authenticated()
}

func (a *App) status() string {
	s := a.router.Current()
	if u := a.store.User(); u != nil && a.isLoggedIn() {
		s = u.Email + " " + s
	}
	return s
}

// onRoute mounts the screens shown at path and unmounts the rest.
func (a *App) onRoute(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if path == a.route {
		return
	}
	a.route = path

	switch path {
	case nav.RouteProfile:
		a.history.Unmount()
		a.guard.Mount()
	case nav.RouteOrderHistory:
		a.guard.Mount()
		a.history.Mount()
	default:
		a.history.Unmount()
		a.guard.Unmount()
	}
	a.logger.Debug(context.Background(), "route changed", "path", path)
}
