// Package credentials persists the admin's session credentials (bearer token,
// its expiry, the cached profile and the email awaiting verification) on top
// of a storage.Repository.
package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/storage"
	"github.com/dmitrijs2005/waitlistadmin/internal/common"
	"github.com/dmitrijs2005/waitlistadmin/internal/logging"
)

// expiryLayout matches what browsers write for Date.toISOString.
const expiryLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is a snapshot of the persisted credentials. Zero values mean absent.
type Record struct {
	Token        string
	ExpiresAt    time.Time
	Profile      *models.Profile
	PendingEmail string

	expiryPresent bool
}

func (r Record) Empty() bool {
	return r.Token == "" && r.ExpiresAt.IsZero() && r.Profile == nil && r.PendingEmail == "" && !r.expiryPresent
}

// Expired reports whether the record must be treated as logged out at now:
// a token without a valid expiry, or any expiry in the past.
func (r Record) Expired(now time.Time) bool {
	if r.expiryPresent && r.ExpiresAt.IsZero() {
		return true
	}
	if !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt) {
		return true
	}
	return r.Token != "" && r.ExpiresAt.IsZero()
}

type Option func(*Store)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

type Store struct {
	repo   storage.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewStore(repo storage.Repository, logger logging.Logger, opts ...Option) *Store {
	s := &Store{repo: repo, logger: logger.With("module", "credentials"), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Read returns the record as stored, without applying expiry. It never
// fails: storage errors and unparseable fields are logged and treated as
// absent.
func (s *Store) Read(ctx context.Context) Record {
	values, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to read credentials", "error", err)
		return Record{}
	}

	var r Record
	r.Token = string(values[common.KeyAuthToken])
	r.PendingEmail = string(values[common.KeyPendingEmail])

	if raw, ok := values[common.KeyAuthTokenExpires]; ok {
		r.expiryPresent = true
		t, err := time.Parse(time.RFC3339Nano, string(raw))
		if err != nil {
			s.logger.Warn(ctx, "unparseable token expiry", "value", string(raw),
				"error", fmt.Errorf("%w: %v", common.ErrMalformedPersistedRecord, err))
		} else {
			r.ExpiresAt = t
		}
	}

	if raw, ok := values[common.KeyUserProfile]; ok && len(raw) > 0 {
		p, err := models.ParseProfile(raw)
		if err != nil {
			s.logger.Warn(ctx, "unparseable user profile",
				"error", fmt.Errorf("%w: %v", common.ErrMalformedPersistedRecord, err))
		} else {
			r.Profile = p
		}
	}

	return r
}

// Current applies lazy expiry: an expired record is purged from storage and
// reported as empty.
func (s *Store) Current(ctx context.Context) Record {
	r := s.Read(ctx)
	if !r.Expired(s.now()) {
		return r
	}

	s.logger.Info(ctx, "stored session expired, purging", "expires_at", r.ExpiresAt)
	if err := s.Clear(ctx); err != nil {
		s.logger.Error(ctx, "failed to purge expired credentials", "error", err)
	}
	return Record{}
}

// Token returns the token of the current (unexpired) record.
func (s *Store) Token(ctx context.Context) string {
	return s.Current(ctx).Token
}

// WriteToken stores the token together with an expiry ttl from now.
func (s *Store) WriteToken(ctx context.Context, token string, ttl time.Duration) error {
	expires := s.now().Add(ttl).UTC().Format(expiryLayout)
	err := s.repo.SetMany(ctx, map[string][]byte{
		common.KeyAuthToken:        []byte(token),
		common.KeyAuthTokenExpires: []byte(expires),
	})
	if err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *Store) WriteProfile(ctx context.Context, p models.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := s.repo.Set(ctx, common.KeyUserProfile, b); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

func (s *Store) WritePendingEmail(ctx context.Context, email string) error {
	if err := s.repo.Set(ctx, common.KeyPendingEmail, []byte(email)); err != nil {
		return fmt.Errorf("write pending email: %w", err)
	}
	return nil
}

func (s *Store) ClearPendingEmail(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.KeyPendingEmail); err != nil {
		return fmt.Errorf("clear pending email: %w", err)
	}
	return nil
}

// ClearToken removes the token, its expiry and the profile but keeps the
// pending email.
func (s *Store) ClearToken(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.KeyAuthToken, common.KeyAuthTokenExpires, common.KeyUserProfile); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Clear removes all four credential keys. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.CredentialKeys...); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
