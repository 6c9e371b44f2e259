package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/moviebook/internal/client/nav"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Open(ctx context.Context, path string)
	OpenLink(ctx context.Context, label string) error
	Back(ctx context.Context) bool
	Toggle(ctx context.Context, n int) error
	ToggleMenu(ctx context.Context)
	Render(ctx context.Context)
}

// runREPL reads commands from scanner until EOF, exit or quit.
//
//	Signed out:  register, login, help, exit
//	Signed in:   profile, history, toggle <n>, admin, movies, menu,
//	             back, show, logout, help, exit
//
// Handler errors are not fatal; flows report them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mb %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, history, toggle <n>, admin, movies, menu, back, show, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile":
			a.Open(ctx, nav.RouteProfile)

		case "history", "orders":
			a.Open(ctx, nav.RouteOrderHistory)

		case "admin", "dashboard":
			a.Open(ctx, nav.RouteDashboardAdmin)

		case "movies":
			_ = a.OpenLink(ctx, "Movie")

		case "menu":
			a.ToggleMenu(ctx)

		case "toggle", "t":
			if len(args) != 1 {
				printlnFn("Usage: toggle <row number>")
				continue
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				printlnFn("Usage: toggle <row number>")
				continue
			}
			if err := a.Toggle(ctx, n); err != nil {
				printlnFn("Error:", err)
			}

		case "back":
			if !a.Back(ctx) {
				printlnFn("Nothing to go back to")
			}

		case "show":
			a.Render(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
