package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Verify(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Validate(ctx context.Context) error
	Open(ctx context.Context, path string) error
	AddToWaitlist(ctx context.Context) error
	ShowUser(ctx context.Context, id string) error
	CreateUser(ctx context.Context) error
	VerifyUser(ctx context.Context, id, status string) error
	UpdateProfile(ctx context.Context) error
	ShowAdmins(ctx context.Context) error
	CreateAdmin(ctx context.Context) error
}

// viewCommands maps REPL commands onto the admin views.
var viewCommands = map[string]string{
	"dashboard":    "/dashboard",
	"analytics":    "/analytics",
	"distribution": "/user-distribution",
	"waitlist":     "/waitlist",
	"users":        "/users",
	"profile":      "/profile",
}

const (
	helpAnonymous = "Available commands: login, verify, status, go <path>, exit"
	helpSignedIn  = "Available commands: dashboard, analytics, distribution, waitlist, waitlist-add, " +
		"users, user <id>, user-create, user-verify <id> <status>, profile, profile-update, " +
		"admins, admin-create, validate, status, go <path>, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the admin CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// View commands (dashboard, analytics, distribution, waitlist, users,
// profile) and "go <path>" open a route through the route guard, so a
// signed-out admin is sent to the sign-in view instead.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("admin%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if path, ok := viewCommands[cmd]; ok {
			_ = a.Open(ctx, path)
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "login":
			_ = a.Login(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "validate":
			_ = a.Validate(ctx)

		case "go":
			if len(args) != 1 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "waitlist-add":
			_ = a.AddToWaitlist(ctx)

		case "user":
			if len(args) != 1 {
				printlnFn("Usage: user <id>")
				continue
			}
			_ = a.ShowUser(ctx, args[0])

		case "user-create":
			_ = a.CreateUser(ctx)

		case "user-verify":
			if len(args) != 2 {
				printlnFn("Usage: user-verify <id> <verified|pending|rejected>")
				continue
			}
			_ = a.VerifyUser(ctx, args[0], args[1])

		case "profile-update":
			_ = a.UpdateProfile(ctx)

		case "admins":
			_ = a.ShowAdmins(ctx)

		case "admin-create":
			_ = a.CreateAdmin(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
