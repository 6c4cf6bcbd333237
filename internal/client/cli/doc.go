// Package cli provides the interactive waitlist admin command-line client.
//
// It wires configuration, the shared credential storage, the REST client,
// the session manager and an interactive REPL. Typical flow: log in with
// email and password, enter the emailed code with "verify", then browse the
// admin views.
//
// Key features:
//   - Login / Verify / Logout, session status and backend validation
//   - Views: dashboard, analytics, user distribution, waitlist, users, profile
//   - Actions: add to the waitlist, create and verify users, update the
//     profile, list and invite admins
//
// Every view goes through the route guard, and a session that ends behind
// the user's back (401, expiry, logout in another terminal) is announced.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
