package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/guard"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/session"
	"github.com/dmitrijs2005/waitlistadmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getOptionalText = GetOptionalText
var getPassword = GetPassword

// Login prompts for email and password and runs the first login step.
// An admin who is already signed in is sent to the dashboard, like the
// sign-in view does.
//
// The outcome itself is reported by the session manager's notifier; when
// the backend asks for a code the user is told to run "verify".
func (a *App) Login(ctx context.Context) error {
	snap := a.session.RefreshAuth(ctx)
	if d := a.guard.Decide(guard.SignInPath, snap.Status); d.Outcome == guard.Redirect {
		printlnFn("Already logged in as", snap.Email())
		return a.render(ctx, d.Target)
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if invalid(checkInput(loginInput{Email: email, Password: string(password)})) {
		return nil
	}

	res, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	if res.NeedsVerification {
		printlnFn("A verification code was sent to", email+". Enter it with 'verify'.")
	}
	return nil
}

// Verify prompts for the emailed code and completes the login.
func (a *App) Verify(ctx context.Context) error {
	snap := a.session.RefreshAuth(ctx)
	if snap.Status != session.PendingVerification {
		printlnFn("Nothing to verify. Start with 'login'.")
		return common.ErrNoPendingVerification
	}

	code, err := getSimpleText(a.reader, fmt.Sprintf("Enter the code sent to %s", snap.PendingEmail), a.out)
	if err != nil {
		return err
	}
	if invalid(checkInput(codeInput{Code: code})) {
		return nil
	}

	if err := a.session.Verify(ctx, code); err != nil {
		return err
	}
	return a.render(ctx, guard.LandingPath)
}

// Logout ends the session on this machine.
func (a *App) Logout(ctx context.Context) error {
	a.loggingOut.Store(true)
	defer a.loggingOut.Store(false)
	return a.session.Logout(ctx)
}

// Status prints the current session state.
func (a *App) Status(ctx context.Context) error {
	snap := a.session.RefreshAuth(ctx)
	printlnFn("Status:", snap.Status.String())
	switch snap.Status {
	case session.PendingVerification:
		printlnFn("Waiting for the code sent to", snap.PendingEmail)
	case session.Authenticated:
		if snap.Profile != nil {
			printlnFn("Signed in as", snap.Profile.DisplayName(), "<"+snap.Profile.Email+">")
		}
		if !snap.ExpiresAt.IsZero() {
			printlnFn("Session valid until", snap.ExpiresAt.Local().Format(time.RFC1123))
		}
	}
	return nil
}

// Validate asks the backend whether the session is still accepted.
func (a *App) Validate(ctx context.Context) error {
	if a.session.ValidateSession(ctx) {
		printlnFn("Session is valid.")
		return nil
	}
	printlnFn("Session is not valid.")
	return common.ErrNotAuthenticated
}

// UpdateProfile prompts for a new name and email. Empty answers keep the
// current values.
func (a *App) UpdateProfile(ctx context.Context) error {
	return a.within(ctx, guard.RouteProfile, func(ctx context.Context) error {
		name, err := getOptionalText(a.reader, "New name", a.out)
		if err != nil {
			return err
		}
		email, err := getOptionalText(a.reader, "New email", a.out)
		if err != nil {
			return err
		}
		if invalid(checkInput(profileInput{Name: name, Email: email})) {
			return nil
		}

		var patch models.ProfilePatch
		if name != "" {
			patch.Name = &name
		}
		if email != "" {
			patch.Email = &email
		}
		if patch.Empty() {
			printlnFn("Nothing to update.")
			return nil
		}

		p, err := a.session.UpdateProfile(ctx, patch)
		if err != nil {
			if errors.Is(err, common.ErrNotAuthenticated) {
				printlnFn("Please log in first.")
			}
			return err
		}
		printProfile(a.out, p)
		return nil
	})
}
