package session

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/client"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/credentials"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
	"github.com/dmitrijs2005/waitlistadmin/internal/common"
)

func TestDerive(t *testing.T) {
	now := time.Date(2025, 3, 13, 12, 0, 0, 0, time.UTC)
	profile := &models.Profile{ID: "1", Email: "a@x.com"}

	tests := []struct {
		name string
		rec  credentials.Record
		want Status
	}{
		{"empty", credentials.Record{}, Anonymous},
		{"pending only", credentials.Record{PendingEmail: "a@x.com"}, PendingVerification},
		{"valid token", credentials.Record{Token: "t", ExpiresAt: now.Add(time.Hour), Profile: profile}, Authenticated},
		{"valid token without profile", credentials.Record{Token: "t", ExpiresAt: now.Add(time.Hour)}, Authenticated},
		{"token wins over pending", credentials.Record{Token: "t", ExpiresAt: now.Add(time.Hour), PendingEmail: "b@x.com"}, Authenticated},
		{"expired token", credentials.Record{Token: "t", ExpiresAt: now.Add(-25 * time.Hour)}, Anonymous},
		{"token without expiry", credentials.Record{Token: "t"}, Anonymous},
		{"profile only", credentials.Record{Profile: profile}, Anonymous},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Derive(tc.rec, now).Status)
		})
	}
}

func TestDerive_AuthenticatedCarriesProfile(t *testing.T) {
	now := time.Now()
	p := &models.Profile{ID: "1", Email: "a@x.com"}
	s := Derive(credentials.Record{Token: "t", ExpiresAt: now.Add(time.Hour), Profile: p}, now)
	assert.Equal(t, p, s.Profile)
	assert.Equal(t, "a@x.com", s.Email())
	assert.Empty(t, s.PendingEmail)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "anonymous", Anonymous.String())
	assert.Equal(t, "pending_verification", PendingVerification.String())
	assert.Equal(t, "authenticated", Authenticated.String())
}

func TestSnapshot_Equal(t *testing.T) {
	yes, no := true, false
	a := Snapshot{Status: Authenticated, Profile: &models.Profile{ID: "1", IsActive: &yes}}
	b := Snapshot{Status: Authenticated, Profile: &models.Profile{ID: "1", IsActive: &yes}}
	c := Snapshot{Status: Authenticated, Profile: &models.Profile{ID: "1", IsActive: &no}}

	assert.True(t, a.equal(b))
	assert.False(t, a.equal(c))
	assert.False(t, a.equal(Snapshot{Status: Authenticated}))
	assert.True(t, Snapshot{}.equal(Snapshot{}))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "", Describe(nil))
	assert.Equal(t, msgSessionExpired, Describe(common.ErrSessionExpired))
	assert.Equal(t, msgSessionExpired, Describe(fmt.Errorf("fetch: %w", common.ErrSessionExpired)))
	assert.Equal(t, "Invalid email or password", Describe(&client.StatusError{
		StatusCode: http.StatusUnauthorized, Message: "Invalid email or password", Err: common.ErrInvalidCredentials,
	}))
	assert.Equal(t, "boom", Describe(errors.New("boom")))
}
