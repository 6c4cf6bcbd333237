package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/guard"
	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
)

// AddToWaitlist prompts for a waitlist entry and submits it.
func (a *App) AddToWaitlist(ctx context.Context) error {
	return a.within(ctx, guard.RouteWaitlist, func(ctx context.Context) error {
		var u models.NewWaitlistUser
		if err := a.ask(
			field{"Email address", &u.EmailAddress, false},
			field{"First name", &u.FirstName, false},
			field{"Last name", &u.LastName, false},
			field{"Country", &u.Country, false},
			field{"Wallet address", &u.WalletAddress, true},
		); err != nil {
			return err
		}
		if invalid(checkInput(u)) {
			return nil
		}
		return a.data.AddToWaitlist(ctx, u)
	})
}

// CreateUser prompts for a platform user and creates it.
func (a *App) CreateUser(ctx context.Context) error {
	return a.within(ctx, guard.RouteUsers, func(ctx context.Context) error {
		var u models.NewUser
		if err := a.ask(
			field{"Username", &u.Username, false},
			field{"Phone number", &u.PhoneNumber, false},
			field{"Wallet address", &u.WalletAddress, true},
			field{"PIN (4 digits)", &u.Pin, false},
		); err != nil {
			return err
		}
		if invalid(checkInput(u)) {
			return nil
		}
		created, err := a.data.CreateUser(ctx, u)
		if err != nil {
			return err
		}
		if created != nil {
			printUser(a.out, created)
		}
		return nil
	})
}

// VerifyUser sets the verification status of a platform user.
func (a *App) VerifyUser(ctx context.Context, id, status string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		printlnFn("User id must be a positive number.")
		return fmt.Errorf("bad user id %q", id)
	}
	if invalid(checkInput(models.VerificationUpdate{ID: n, VerificationStatus: status})) {
		return nil
	}
	return a.within(ctx, guard.RouteUsers, func(ctx context.Context) error {
		return a.data.SetUserVerification(ctx, n, status)
	})
}

// CreateAdmin invites another admin.
func (a *App) CreateAdmin(ctx context.Context) error {
	return a.within(ctx, guard.RouteProfile, func(ctx context.Context) error {
		var in models.NewAdmin
		if err := a.ask(
			field{"Name", &in.Name, false},
			field{"Email", &in.Email, false},
		); err != nil {
			return err
		}
		if invalid(checkInput(in)) {
			return nil
		}
		return a.data.CreateAdmin(ctx, in)
	})
}

type field struct {
	prompt   string
	dst      *string
	optional bool
}

// ask prompts for each field in order.
func (a *App) ask(fields ...field) error {
	for _, f := range fields {
		prompt := f.prompt
		if f.optional {
			prompt += " (optional)"
		}
		v, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}
