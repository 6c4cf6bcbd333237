// Package client contains the HTTP side of the admin client.
//
// # Overview
//
// The package provides:
//  1. Gateway, the single entry point for authenticated requests. It attaches
//     the stored bearer token and, when the backend answers 401, clears the
//     credential store and publishes events.SessionInvalidated before failing
//     the call with common.ErrSessionExpired.
//  2. A transport-agnostic API contract (Client = AuthAPI + DataAPI).
//  3. HTTPClient, the REST implementation of Client. Login and verification
//     talk to the backend directly; everything else goes through the Gateway.
//
// # Error Handling
//
// Failures are reported with sentinel errors from internal/common, matched
// with errors.Is. Non-2xx answers are returned as *StatusError, which keeps
// the status code and the backend message and unwraps to the sentinel.
// Transport failures wrap common.ErrNetworkFailure.
//
// Concurrency & Contexts
//
// Gateway and HTTPClient are safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
