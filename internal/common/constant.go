// Package common contains shared constants and sentinel errors used across
// the admin client, the session core and the development backend.
package common

import "time"

// Keys of the persisted credential record.
const (
	KeyAuthToken        = "auth_token"
	KeyAuthTokenExpires = "auth_token_expires"
	KeyUserProfile      = "user_profile"
	KeyPendingEmail     = "temp_admin_email"
)

// CredentialKeys lists every key owned by the credential record.
var CredentialKeys = []string{KeyAuthToken, KeyAuthTokenExpires, KeyUserProfile, KeyPendingEmail}

// AuthorizationHeaderName carries the bearer credential on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// DefaultTokenTTL is the validity window the client imposes on a freshly
// issued token; the verify endpoint does not report one.
const DefaultTokenTTL = 24 * time.Hour
