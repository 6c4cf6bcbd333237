package client

import (
	"context"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
)

// LoginResult is the answer to the first login step.
type LoginResult struct {
	Message           string
	NeedsVerification bool
	Admin             models.Profile
	// Token is only set by backends that skip email verification.
	Token string
}

// VerifyResult is the answer to the verification step.
type VerifyResult struct {
	Message string
	Admin   models.Profile
	Token   string
}

// AuthAPI covers the admin's own session.
type AuthAPI interface {
	LoginAdmin(ctx context.Context, email, password string) (*LoginResult, error)
	VerifyAdmin(ctx context.Context, email, code string) (*VerifyResult, error)
	ValidateToken(ctx context.Context) error
	// UpdateProfile returns the updated profile, or nil when the backend
	// does not echo it back.
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error)
}

// DataAPI covers the authenticated admin views.
type DataAPI interface {
	GetWaitlist(ctx context.Context) ([]models.WaitlistUser, error)
	AddToWaitlist(ctx context.Context, u models.NewWaitlistUser) error
	GetTrackingData(ctx context.Context) (*models.TrackingData, error)
	GetUserDistribution(ctx context.Context) (*models.UserDistribution, error)
	FetchUsers(ctx context.Context) ([]models.User, error)
	FetchUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, u models.NewUser) (*models.User, error)
	UpdateUserVerification(ctx context.Context, upd models.VerificationUpdate) error
	CreateAdmin(ctx context.Context, a models.NewAdmin) error
	FetchAdmins(ctx context.Context) ([]models.Profile, error)
}

type Client interface {
	AuthAPI
	DataAPI
}
