package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/gophgate/internal/client/client"
	"github.com/dmitrijs2005/gophgate/internal/client/config"
	"github.com/dmitrijs2005/gophgate/internal/client/models"
	"github.com/dmitrijs2005/gophgate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophgate/internal/client/router"
	"github.com/dmitrijs2005/gophgate/internal/client/services"
	"github.com/dmitrijs2005/gophgate/internal/client/session"
	"github.com/dmitrijs2005/gophgate/internal/client/storage"
	"github.com/dmitrijs2005/gophgate/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Authenticator is the part of services.AuthService the screens use.
type Authenticator interface {
	Start(ctx context.Context) <-chan struct{}
	State() models.SessionState
	SignIn(ctx context.Context, email, password string) services.Result
	SignUp(ctx context.Context, name, email, password string) services.Result
	SignOut(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error
}

type App struct {
	config *config.Config
	auth   Authenticator
	gate   *router.Gate
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer

	route router.Route

	modeMu sync.RWMutex
	mode   Mode

	closers []func() error
}

// NewApp opens the session database, prepares the backend connection and
// builds the auth service shared by every screen.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, logging.FormatText, os.Stderr)

	db, err := openSessionDB(ctx, c.SessionDBPath, logger)
	if err != nil {
		return nil, err
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.NewStore(metadata.NewSQLiteRepository(db))
	as := services.NewAuthService(apiClient, store, logger, c.RequestTimeout)

	return &App{
		config:  c,
		auth:    as,
		gate:    router.NewGate(logger),
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closers: []func() error{apiClient.Close, db.Close},
	}, nil
}

// openSessionDB opens the session database at path. If the file cannot be
// used the session is kept in memory for this run, so the user starts signed
// out instead of being locked out.
func openSessionDB(ctx context.Context, path string, logger logging.Logger) (*sql.DB, error) {
	db, err := storage.Open(ctx, path)
	if err == nil {
		return db, nil
	}

	logger.Warn(ctx, "Session database unavailable, session will not be remembered", "path", path, "error", err)
	return storage.Open(ctx, storage.MemoryPath)
}

// Close releases the backend connection and the session database.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Run starts session loading and the online watcher, then serves commands
// from stdin until exit.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Error(ctx, "Error closing app", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to GophGate (type 'help' for commands)")

	done := a.auth.Start(ctx)
	printlnFn(msgLoading)
	select {
	case <-done:
	case <-ctx.Done():
		return
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.reader)
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(ctx, "Connectivity changed", "mode", string(mode))
	}
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}
