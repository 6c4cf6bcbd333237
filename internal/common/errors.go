package common

import "errors"

var (
	// Login / verification.
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidVerificationCode = errors.New("invalid verification code")
	ErrNoPendingVerification   = errors.New("no email pending verification")

	// Session lifecycle.
	ErrSessionExpired      = errors.New("session expired, please log in again")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrOperationInProgress = errors.New("operation already in progress")
	ErrNoProfile           = errors.New("no user profile found")

	// Transport.
	ErrNetworkFailure   = errors.New("network failure")
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// Local storage.
	ErrMalformedPersistedRecord = errors.New("malformed persisted record")

	// Development backend.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
)
