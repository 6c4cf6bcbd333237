package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/guard"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/session"
)

// Open navigates to path. The route guard decides whether the view is
// rendered, replaced by another one or unknown.
func (a *App) Open(ctx context.Context, path string) error {
	snap := a.session.RefreshAuth(ctx)
	d := a.guard.Decide(path, snap.Status)
	a.logger.Debug(ctx, "navigate", "path", path, "outcome", d.Outcome.String(), "target", d.Target)

	switch d.Outcome {
	case guard.NotFound:
		printlnFn("Page not found:", path)
		return nil
	case guard.Redirect:
		if d.Target == guard.SignInPath {
			printlnFn("Please log in first.")
		}
		return a.render(ctx, d.Target)
	default:
		return a.render(ctx, guard.Normalize(path))
	}
}

// within runs fn when the view owning an action may be shown, so actions
// need the same session as their view.
func (a *App) within(ctx context.Context, path string, fn func(ctx context.Context) error) error {
	snap := a.session.RefreshAuth(ctx)
	if d := a.guard.Decide(path, snap.Status); d.Outcome != guard.Render {
		printlnFn("Please log in first.")
		return nil
	}
	return fn(ctx)
}

func (a *App) render(ctx context.Context, path string) error {
	switch path {
	case guard.SignInPath:
		return a.showSignIn(ctx)
	case guard.RouteDashboard:
		return a.showDashboard(ctx)
	case guard.RouteAnalytics:
		return a.showAnalytics(ctx)
	case guard.RouteUserDistribution:
		return a.showDistribution(ctx)
	case guard.RouteWaitlist:
		return a.showWaitlist(ctx)
	case guard.RouteUsers:
		return a.showUsers(ctx)
	case guard.RouteProfile:
		return a.showProfile(ctx)
	default:
		printlnFn("Page not found:", path)
		return nil
	}
}

func (a *App) showSignIn(ctx context.Context) error {
	snap := a.session.RefreshAuth(ctx)
	if snap.Status == session.PendingVerification {
		printlnFn("Enter the code sent to", snap.PendingEmail, "with 'verify', or 'login' again.")
		return nil
	}
	printlnFn("Sign in with 'login'.")
	return nil
}

func (a *App) showDashboard(ctx context.Context) error {
	d, err := a.data.Dashboard(ctx)
	if err != nil {
		return err
	}
	printDashboard(a.out, d)
	return nil
}

func (a *App) showAnalytics(ctx context.Context) error {
	t, err := a.data.Tracking(ctx)
	if err != nil {
		return err
	}
	printTracking(a.out, t)
	return nil
}

func (a *App) showDistribution(ctx context.Context) error {
	d, err := a.data.Distribution(ctx)
	if err != nil {
		return err
	}
	printDistribution(a.out, d)
	return nil
}

func (a *App) showWaitlist(ctx context.Context) error {
	list, err := a.data.Waitlist(ctx)
	if err != nil {
		return err
	}
	printWaitlist(a.out, list)
	return nil
}

func (a *App) showUsers(ctx context.Context) error {
	users, err := a.data.Users(ctx)
	if err != nil {
		return err
	}
	printUsers(a.out, users)
	return nil
}

func (a *App) showProfile(ctx context.Context) error {
	snap := a.session.RefreshAuth(ctx)
	if snap.Profile == nil {
		printlnFn("No profile cached for this session.")
		return nil
	}
	printProfile(a.out, snap.Profile)
	return nil
}

// ShowUser prints a single platform user.
func (a *App) ShowUser(ctx context.Context, id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		printlnFn("User id must be a positive number.")
		return fmt.Errorf("bad user id %q", id)
	}
	return a.within(ctx, guard.RouteUsers, func(ctx context.Context) error {
		u, err := a.data.User(ctx, n)
		if err != nil {
			return err
		}
		printUser(a.out, u)
		return nil
	})
}

// ShowAdmins lists the admin accounts.
func (a *App) ShowAdmins(ctx context.Context) error {
	return a.within(ctx, guard.RouteProfile, func(ctx context.Context) error {
		admins, err := a.data.Admins(ctx)
		if err != nil {
			return err
		}
		printAdmins(a.out, admins)
		return nil
	})
}
