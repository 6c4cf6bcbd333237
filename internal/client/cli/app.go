package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/client"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/config"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/credentials"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/events"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/guard"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/services"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/session"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/storage"
	"github.com/dmitrijs2005/waitlistadmin/internal/logging"
)

// sessionManager is the part of session.Manager the CLI drives.
type sessionManager interface {
	Start(ctx context.Context) error
	Close()
	RefreshAuth(ctx context.Context) session.Snapshot
	Subscribe(fn func(session.Snapshot)) func()
	Login(ctx context.Context, email, password string) (session.LoginResult, error)
	Verify(ctx context.Context, code string) error
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error)
	ValidateSession(ctx context.Context) bool
}

type App struct {
	config  *config.Config
	session sessionManager
	data    services.DataService
	guard   *guard.Guard
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	closers []io.Closer

	// lastStatus is the status seen by the snapshot observer.
	lastStatus atomic.Int32
	// loggingOut marks a logout started from this terminal.
	loggingOut atomic.Bool
}

// NewApp wires storage, the HTTP client, the session manager and the data
// service from c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	opts := c.StorageOptions()
	opts.Logger = logger
	backend, err := storage.Open(ctx, opts)
	if err != nil {
		logger.Error(ctx, "error opening credential storage", "error", err)
		return nil, err
	}

	baseURL, err := c.BaseURL()
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	store := credentials.NewStore(backend.Repository, logger)
	bus := events.NewBus()
	hc := &http.Client{Timeout: c.RequestTimeout}
	gw := client.NewGateway(baseURL, hc, store, bus, logger)
	api := client.NewHTTPClient(baseURL, hc, gw, c.Endpoints, logger)

	notifier := newConsoleNotifier(os.Stdout)
	mgr := session.NewManager(api, store, bus,
		session.WithWatcher(backend.Watcher),
		session.WithNotifier(notifier),
		session.WithLogger(logger),
		session.WithTokenTTL(c.TokenTTL),
	)

	logger.Info(ctx, "admin client ready", "api", baseURL, "storage", c.StorageBackend, "instance", mgr.ID())

	return &App{
		config:  c,
		session: mgr,
		data:    services.NewDataService(api, notifier, logger),
		guard:   guard.New(nil),
		logger:  logger.With("module", "cli"),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		closers: []io.Closer{backend},
	}, nil
}

// observe prints a notice when the session ends without a logout command
// from this terminal: a 401, token expiry or a logout elsewhere.
func (a *App) observe(s session.Snapshot) {
	prev := session.Status(a.lastStatus.Swap(int32(s.Status)))
	if prev == session.Authenticated && s.Status == session.Anonymous && !a.loggingOut.Load() {
		printlnFn(msgSessionEnded)
	}
}

// Run starts the session manager, runs the REPL on stdin and shuts
// everything down when the REPL returns.
func (a *App) Run(ctx context.Context) error {
	unsub := a.session.Subscribe(a.observe)
	defer unsub()

	if err := a.session.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer a.Close()

	printlnFn("Waitlist admin CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
	return nil
}

// Close stops the session manager and releases storage.
func (a *App) Close() {
	a.session.Close()
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}

// status is the prompt label: the session status and who is signed in.
func (a *App) status() string {
	s := a.session.RefreshAuth(context.Background())
	switch s.Status {
	case session.Authenticated:
		if email := s.Email(); email != "" {
			return fmt.Sprintf("(%s)", email)
		}
		return "(authenticated)"
	case session.PendingVerification:
		return fmt.Sprintf("(verify %s)", s.PendingEmail)
	default:
		return ""
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.RefreshAuth(context.Background()).Status == session.Authenticated
}
