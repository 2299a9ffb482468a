// Package cli is the terminal front end of OliveCRM: a small REPL over the
// REST API with a persistent login session.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/olivecrm/olivecrm/internal/client/api"
	"github.com/olivecrm/olivecrm/internal/client/config"
	"github.com/olivecrm/olivecrm/internal/client/session"
	"github.com/olivecrm/olivecrm/internal/client/storage"
	"github.com/olivecrm/olivecrm/internal/client/transport"
	"github.com/olivecrm/olivecrm/internal/logging"
)

type App struct {
	config  *config.Config
	session *session.Manager
	api     *api.Client
	auth    *api.Client
	log     logging.Logger
	reader  *bufio.Reader
	durable *storage.SQLite
}

// NewApp wires the client together: the durable and in-memory credential
// scopes, a plain-transport API client for the auth endpoints, the session
// manager on top of them, and a gatekeeper-wrapped API client for everything
// else.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if dir := filepath.Dir(cfg.StateFile); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	durable, err := storage.OpenSQLite(ctx, cfg.StateFile)
	if err != nil {
		return nil, err
	}

	authClient := api.New(cfg.ServerBaseURL, &http.Client{Timeout: cfg.RequestTimeout}, log)
	sess := session.NewManager(authClient, durable, storage.NewMemory(), log)

	gatekeeper := transport.NewGatekeeper(nil, sess)
	resourceClient := api.New(cfg.ServerBaseURL, &http.Client{
		Transport: gatekeeper,
		Timeout:   cfg.RequestTimeout,
	}, log)

	return &App{
		config:  cfg,
		session: sess,
		api:     resourceClient,
		auth:    authClient,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		durable: durable,
	}, nil
}

// Run restores any remembered session and enters the REPL. It returns when
// the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.session.Hydrate(ctx); err != nil {
		a.log.Warn(ctx, "could not restore previous session", "error", err)
	}
	if user := a.session.CurrentUser(); user != nil && a.session.IsAuthenticated() {
		printlnFn(fmt.Sprintf("Welcome back, %s!", user.Username))
	}

	printlnFn("OliveCRM CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) Close() {
	a.session.Close()
	if err := a.durable.Close(); err != nil {
		a.log.Warn(context.Background(), "error closing state file", "error", err)
	}
}

func (a *App) status() string {
	user := a.session.CurrentUser()
	if user == nil || !a.session.IsAuthenticated() {
		return ""
	}
	return fmt.Sprintf("(%s %s)", user.Username, user.Role)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// requireLogin makes sure a session is active before a protected command
// runs, prompting for a login when there is none. The command proceeds right
// after a successful login.
func (a *App) requireLogin(ctx context.Context) bool {
	if a.isLoggedIn() {
		return true
	}
	printlnFn("You need to log in first.")
	if err := a.Login(ctx); err != nil {
		return false
	}
	return a.isLoggedIn()
}
