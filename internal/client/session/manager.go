package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/client"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/credentials"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/events"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/storage"
	"github.com/dmitrijs2005/waitlistadmin/internal/common"
	"github.com/dmitrijs2005/waitlistadmin/internal/logging"
)

// refreshTimeout bounds a refresh triggered from a background signal.
const refreshTimeout = 5 * time.Second

// CredentialStore is the part of credentials.Store the manager uses.
type CredentialStore interface {
	Current(ctx context.Context) credentials.Record
	WriteToken(ctx context.Context, token string, ttl time.Duration) error
	WriteProfile(ctx context.Context, p models.Profile) error
	WritePendingEmail(ctx context.Context, email string) error
	ClearPendingEmail(ctx context.Context) error
	ClearToken(ctx context.Context) error
	Clear(ctx context.Context) error
}

type Subscriber interface {
	Subscribe(topic events.Topic, fn events.Handler) func()
}

// LoginResult reports the outcome of the first login step.
type LoginResult struct {
	Success           bool
	NeedsVerification bool
}

type Option func(*Manager)

// WithWatcher makes the manager refresh whenever the shared store changes.
func WithWatcher(w storage.Watcher) Option {
	return func(m *Manager) { m.watcher = w }
}

func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithTokenTTL sets the validity window imposed on issued tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager owns the admin session. It is safe for concurrent use.
type Manager struct {
	id       string
	api      client.AuthAPI
	store    CredentialStore
	bus      Subscriber
	watcher  storage.Watcher
	notifier Notifier
	logger   logging.Logger
	ttl      time.Duration
	now      func() time.Time

	mu      sync.Mutex
	last    Snapshot
	hasLast bool
	subs    map[int]func(Snapshot)
	nextSub int

	busy   atomic.Bool
	closed atomic.Bool

	lifecycle sync.Mutex
	unsubBus  func()
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewManager(api client.AuthAPI, store CredentialStore, bus Subscriber, opts ...Option) *Manager {
	m := &Manager{
		id:       uuid.NewString(),
		api:      api,
		store:    store,
		bus:      bus,
		notifier: NopNotifier{},
		logger:   logging.Discard(),
		ttl:      common.DefaultTokenTTL,
		now:      time.Now,
		subs:     make(map[int]func(Snapshot)),
	}
	for _, o := range opts {
		o(m)
	}
	m.logger = m.logger.With("module", "session", "instance", m.id)
	return m
}

// ID identifies this manager in logs.
func (m *Manager) ID() string {
	return m.id
}

// Subscribe registers fn to be called with every new snapshot. Calls happen
// on the goroutine that caused the change.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSub++
	id := m.nextSub
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// publish notifies observers when s differs from the last published
// snapshot. Nothing is published after Close.
func (m *Manager) publish(s Snapshot) {
	if m.closed.Load() {
		return
	}

	m.mu.Lock()
	if m.hasLast && m.last.equal(s) {
		m.mu.Unlock()
		return
	}
	m.last, m.hasLast = s, true
	fns := make([]func(Snapshot), 0, len(m.subs))
	for id := 1; id <= m.nextSub; id++ {
		if fn, ok := m.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	m.mu.Unlock()

	m.logger.Debug(context.Background(), "session status changed", "status", s.Status.String())
	for _, fn := range fns {
		fn(s)
	}
}

// RefreshAuth re-derives the session from the credential store. Expired
// credentials are purged on the way. No backend call is made.
func (m *Manager) RefreshAuth(ctx context.Context) Snapshot {
	s := Derive(m.store.Current(ctx), m.now())
	m.publish(s)
	return s
}

func (m *Manager) refreshDetached(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
	defer cancel()
	m.RefreshAuth(ctx)
}

func (m *Manager) fail(ctx context.Context, op string, err error) {
	m.logger.Warn(ctx, op+" failed", "error", err)
	m.notifier.Failure(ctx, Describe(err))
}

// establish persists a freshly issued token and promotes the session.
func (m *Manager) establish(ctx context.Context, token string, profile models.Profile) error {
	if err := m.store.WriteToken(ctx, token, m.ttl); err != nil {
		return err
	}
	if err := m.store.WriteProfile(ctx, profile); err != nil {
		return err
	}
	return m.store.ClearPendingEmail(ctx)
}

// Login runs the first step. On success the email is remembered for Verify
// and the session becomes PendingVerification. A rejected or failed login
// leaves the store untouched.
//
// A backend that issues a token right away (no verification) is accepted and
// the session becomes Authenticated.
func (m *Manager) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if !m.busy.CompareAndSwap(false, true) {
		return LoginResult{}, common.ErrOperationInProgress
	}
	defer m.busy.Store(false)

	res, err := m.api.LoginAdmin(ctx, email, password)
	if err != nil {
		m.fail(ctx, "login", err)
		return LoginResult{}, err
	}

	if !res.NeedsVerification {
		if res.Token == "" {
			err := fmt.Errorf("%w: login answer has neither a token nor a verification request", common.ErrUnexpectedStatus)
			m.fail(ctx, "login", err)
			return LoginResult{}, err
		}
		if err := m.establish(ctx, res.Token, res.Admin); err != nil {
			m.fail(ctx, "login", err)
			return LoginResult{}, err
		}
		m.notifier.Success(ctx, msgLoginSuccessful)
		m.logger.Info(ctx, "logged in without verification", "email", email)
		m.RefreshAuth(ctx)
		return LoginResult{Success: true}, nil
	}

	// A new login replaces whatever session was there.
	if err := m.store.ClearToken(ctx); err != nil {
		m.fail(ctx, "login", err)
		return LoginResult{}, err
	}
	if err := m.store.WritePendingEmail(ctx, email); err != nil {
		m.fail(ctx, "login", err)
		return LoginResult{}, err
	}

	msg := res.Message
	if msg == "" {
		msg = msgCodeSent
	}
	m.notifier.Success(ctx, msg)
	m.logger.Info(ctx, "login accepted, awaiting verification", "email", email)
	m.RefreshAuth(ctx)
	return LoginResult{Success: true, NeedsVerification: true}, nil
}

// Verify completes the login with the emailed code.
func (m *Manager) Verify(ctx context.Context, code string) error {
	if !m.busy.CompareAndSwap(false, true) {
		return common.ErrOperationInProgress
	}
	defer m.busy.Store(false)

	rec := m.store.Current(ctx)
	if rec.PendingEmail == "" {
		m.fail(ctx, "verify", common.ErrNoPendingVerification)
		return common.ErrNoPendingVerification
	}

	res, err := m.api.VerifyAdmin(ctx, rec.PendingEmail, code)
	if err != nil {
		m.fail(ctx, "verify", err)
		return err
	}

	if err := m.establish(ctx, res.Token, res.Admin); err != nil {
		m.fail(ctx, "verify", err)
		return err
	}

	m.notifier.Success(ctx, msgLoginSuccessful)
	m.logger.Info(ctx, "admin verified", "email", rec.PendingEmail)
	m.RefreshAuth(ctx)
	return nil
}

// Logout clears the local session. It needs no backend and is idempotent.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.store.Clear(ctx)
	if err != nil {
		m.fail(ctx, "logout", err)
	} else {
		m.notifier.Success(ctx, msgLoggedOut)
	}
	m.RefreshAuth(ctx)
	return err
}

// UpdateProfile saves the patch on the backend and then updates the cached
// profile. The session status is not affected. Without a profile from the
// backend or the cache there is nothing to patch and common.ErrNoProfile is
// returned.
func (m *Manager) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error) {
	snap := m.RefreshAuth(ctx)
	if snap.Status != Authenticated {
		return nil, common.ErrNotAuthenticated
	}

	updated, err := m.api.UpdateProfile(ctx, patch)
	if err != nil {
		m.fail(ctx, "update profile", err)
		return nil, err
	}

	// The session may have ended while the call was in flight.
	rec := m.store.Current(ctx)
	if rec.Token == "" {
		return nil, common.ErrNotAuthenticated
	}

	var p models.Profile
	switch {
	case updated != nil:
		p = *updated
	case rec.Profile != nil:
		p = rec.Profile.Apply(patch)
	default:
		m.fail(ctx, "update profile", common.ErrNoProfile)
		return nil, common.ErrNoProfile
	}

	if err := m.store.WriteProfile(ctx, p); err != nil {
		m.fail(ctx, "update profile", err)
		return nil, err
	}
	m.notifier.Success(ctx, msgProfileUpdated)
	m.RefreshAuth(ctx)
	return &p, nil
}

// ValidateSession asks the backend whether the stored token is still
// accepted. A 401 additionally ends the session through the gateway.
func (m *Manager) ValidateSession(ctx context.Context) bool {
	if m.store.Current(ctx).Token == "" {
		return false
	}
	err := m.api.ValidateToken(ctx)
	if err != nil {
		m.logger.Info(ctx, "token validation failed", "error", err)
	}
	m.RefreshAuth(ctx)
	return err == nil
}

// Start attaches the manager to the session-invalidated signal and to the
// storage watcher, then performs the initial refresh.
func (m *Manager) Start(ctx context.Context) error {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	if m.closed.Load() {
		return errors.New("session manager is closed")
	}
	if m.unsubBus != nil {
		return errors.New("session manager already started")
	}

	m.unsubBus = m.bus.Subscribe(events.SessionInvalidated, func() {
		m.logger.Info(ctx, "session invalidated by backend")
		m.refreshDetached(ctx)
	})

	if m.watcher != nil {
		wctx, cancel := context.WithCancel(ctx)
		changes, err := m.watcher.Watch(wctx)
		if err != nil {
			cancel()
			m.unsubBus()
			m.unsubBus = nil
			return fmt.Errorf("watch storage: %w", err)
		}
		m.cancel = cancel

		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			for range changes {
				if wctx.Err() != nil {
					return
				}
				m.refreshDetached(wctx)
			}
		}()
	}

	m.RefreshAuth(ctx)
	return nil
}

// Close detaches the manager. Operations still in flight complete, but no
// snapshot is published afterwards.
func (m *Manager) Close() {
	m.closed.Store(true)

	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	if m.unsubBus != nil {
		m.unsubBus()
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}
