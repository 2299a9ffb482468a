package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	requireLogin(ctx context.Context) bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context, args []string) error
	Passwd(ctx context.Context) error
	Barrels(ctx context.Context, args []string) error
	Bottles(ctx context.Context, args []string) error
	Sales(ctx context.Context, args []string) error
	Reports(ctx context.Context) error
	Settings(ctx context.Context, args []string) error
	Theme(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the OliveCRM CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands that need a session prompt for a login first and run right after
// it succeeds, so a command typed while logged out is not lost.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("olive %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, profile, passwd, barrels, bottles, sales, reports, settings, theme, export, logout, exit")
				printlnFn("Resource commands take a subcommand: list, show, add, update, delete (e.g. 'barrels list').")
			} else {
				printlnFn("Available commands: login, register, theme, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			if a.requireLogin(ctx) {
				_ = a.Whoami(ctx)
			}

		case "profile":
			if a.requireLogin(ctx) {
				_ = a.Profile(ctx, args)
			}

		case "passwd":
			if a.requireLogin(ctx) {
				_ = a.Passwd(ctx)
			}

		case "barrels":
			if a.requireLogin(ctx) {
				_ = a.Barrels(ctx, args)
			}

		case "bottles":
			if a.requireLogin(ctx) {
				_ = a.Bottles(ctx, args)
			}

		case "sales":
			if a.requireLogin(ctx) {
				_ = a.Sales(ctx, args)
			}

		case "reports":
			if a.requireLogin(ctx) {
				_ = a.Reports(ctx)
			}

		case "settings":
			if a.requireLogin(ctx) {
				_ = a.Settings(ctx, args)
			}

		case "export":
			if a.requireLogin(ctx) {
				_ = a.Export(ctx, args)
			}

		case "theme":
			_ = a.Theme(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
