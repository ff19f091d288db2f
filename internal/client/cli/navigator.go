package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophgate/internal/client/router"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

const msgLoading = "Loading..."

// execIface is the command surface the REPL drives. App satisfies it; tests
// provide a lightweight stub.
type execIface interface {
	refresh(ctx context.Context) router.Decision
	prompt() string
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Home(ctx context.Context) error
	Profile(ctx context.Context) error
	Logout(ctx context.Context) error
}

var groupCommands = map[router.Group]string{
	router.GroupNone: "help, exit",
	router.GroupAuth: "login, register, help, exit",
	router.GroupTabs: "home, profile, logout, help, exit",
}

// refresh consults the gate and moves to the route it asks for. Landing on
// /home shows the greeting; landing on /login shows a hint.
func (a *App) refresh(ctx context.Context) router.Decision {
	d, err := a.gate.Observe(ctx, a.auth.State(), a.route)
	if err != nil {
		a.logger.Error(ctx, "Navigation refused", "error", err)
	}

	switch d.Redirect {
	case router.RouteHome:
		_ = a.Home(ctx)
	case router.RouteLogin:
		a.route = router.RouteLogin
		printlnFn("Please log in or register (type 'help' for commands).")
	}

	return d
}

// prompt renders e.g. "gophgate (Ana online)> ".
func (a *App) prompt() string {
	var parts []string
	if u := a.auth.State().CurrentUser; u != nil {
		parts = append(parts, u.Name)
	}
	if m := a.Mode(); m != ModeUnknown {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return "gophgate> "
	}
	return fmt.Sprintf("gophgate (%s)> ", strings.Join(parts, " "))
}

// runREPL reads commands line by line until EOF or "exit"/"quit".
//
// Before each prompt the gate is consulted. While the session is loading only
// help and exit are accepted. Signed out:
//
//	login, register, help, exit
//
// Signed in:
//
//	home, profile, logout, help, exit
//
// Command errors are reported by the screens themselves and do not stop the
// loop.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		d := a.refresh(ctx)
		if d.State == router.StateInitializing {
			printlnFn(msgLoading)
		}

		printlnFn(a.prompt())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch {
		case cmd == "help":
			printlnFn("Available commands: " + groupCommands[d.Group])

		case cmd == "exit" || cmd == "quit":
			printlnFn("Bye!")
			return

		case d.Group == router.GroupAuth && cmd == "login":
			_ = a.Login(ctx)

		case d.Group == router.GroupAuth && cmd == "register":
			_ = a.Register(ctx)

		case d.Group == router.GroupTabs && cmd == "home":
			_ = a.Home(ctx)

		case d.Group == router.GroupTabs && cmd == "profile":
			_ = a.Profile(ctx)

		case d.Group == router.GroupTabs && cmd == "logout":
			_ = a.Logout(ctx)

		default:
			printlnFn("Unknown command: " + cmd)
		}

		if errors.Is(err, io.EOF) {
			return
		}
	}
}
