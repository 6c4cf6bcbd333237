// Package session implements the admin session state machine: login,
// email verification, logout and re-derivation of the session status from
// the persisted credentials.
//
// The status is never stored. Every read recomputes it from the credential
// store, so several managers (in one process or in several processes sharing
// a store) converge once they refresh.
package session

import (
	"time"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/credentials"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
)

type Status int

const (
	Anonymous Status = iota
	PendingVerification
	Authenticated
)

func (s Status) String() string {
	switch s {
	case PendingVerification:
		return "pending_verification"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Snapshot is the derived session state handed to observers.
type Snapshot struct {
	Status       Status
	Profile      *models.Profile
	PendingEmail string
	ExpiresAt    time.Time
}

func (s Snapshot) Email() string {
	if s.Profile != nil && s.Profile.Email != "" {
		return s.Profile.Email
	}
	return s.PendingEmail
}

func (s Snapshot) equal(o Snapshot) bool {
	if s.Status != o.Status || s.PendingEmail != o.PendingEmail || !s.ExpiresAt.Equal(o.ExpiresAt) {
		return false
	}
	switch {
	case s.Profile == nil && o.Profile == nil:
		return true
	case s.Profile == nil || o.Profile == nil:
		return false
	}
	a, b := *s.Profile, *o.Profile
	if (a.IsActive == nil) != (b.IsActive == nil) || (a.IsActive != nil && *a.IsActive != *b.IsActive) {
		return false
	}
	a.IsActive, b.IsActive = nil, nil
	return a == b
}

// Derive computes the session state of r at now. A valid token wins over a
// dangling pending email; an expired record is anonymous.
func Derive(r credentials.Record, now time.Time) Snapshot {
	if r.Empty() || r.Expired(now) {
		return Snapshot{Status: Anonymous}
	}
	if r.Token != "" {
		return Snapshot{Status: Authenticated, Profile: r.Profile, ExpiresAt: r.ExpiresAt}
	}
	if r.PendingEmail != "" {
		return Snapshot{Status: PendingVerification, PendingEmail: r.PendingEmail}
	}
	return Snapshot{Status: Anonymous}
}
