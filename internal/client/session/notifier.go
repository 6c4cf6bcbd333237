package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/client"
	"github.com/dmitrijs2005/waitlistadmin/internal/common"
)

// Notifier shows short user-facing messages.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Failure(ctx context.Context, msg string)
}

type NopNotifier struct{}

func (NopNotifier) Success(context.Context, string) {}
func (NopNotifier) Failure(context.Context, string) {}

const (
	msgSessionExpired  = "Session expired. Please log in again."
	msgSomethingWrong  = "Something went wrong"
	msgCodeSent        = "Please enter verification code"
	msgLoginSuccessful = "Login successful"
	msgLoggedOut       = "Logged out successfully"
	msgProfileUpdated  = "Profile updated successfully"
)

// Describe turns an error into the message shown to the user, preferring
// the backend's own wording.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, common.ErrSessionExpired) {
		return msgSessionExpired
	}
	var serr *client.StatusError
	if errors.As(err, &serr) && serr.Message != "" {
		return serr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgSomethingWrong
}
