package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(s string) error {
	f.calls = append(f.calls, s)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Verify(ctx context.Context) error { return f.record("verify") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Status(ctx context.Context) error   { return f.record("status") }
func (f *fakeExec) Validate(ctx context.Context) error { return f.record("validate") }
func (f *fakeExec) Open(ctx context.Context, path string) error {
	return f.record("open " + path)
}
func (f *fakeExec) AddToWaitlist(ctx context.Context) error { return f.record("waitlist-add") }
func (f *fakeExec) ShowUser(ctx context.Context, id string) error {
	return f.record("user " + id)
}
func (f *fakeExec) CreateUser(ctx context.Context) error { return f.record("user-create") }
func (f *fakeExec) VerifyUser(ctx context.Context, id, status string) error {
	return f.record("user-verify " + id + " " + status)
}
func (f *fakeExec) UpdateProfile(ctx context.Context) error { return f.record("profile-update") }
func (f *fakeExec) ShowAdmins(ctx context.Context) error    { return f.record("admins") }
func (f *fakeExec) CreateAdmin(ctx context.Context) error   { return f.record("admin-create") }

// capturePrintln collects everything printed through printlnFn.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"login",
		"verify",
		"dashboard",
		"analytics",
		"distribution",
		"waitlist",
		"waitlist-add",
		"users",
		"user 7",
		"user-create",
		"user-verify 7 verified",
		"profile",
		"profile-update",
		"admins",
		"admin-create",
		"go /nowhere",
		"status",
		"validate",
		"logout",
		"exit",
		"login",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	assert.Equal(t, []string{
		"login",
		"verify",
		"open /dashboard",
		"open /analytics",
		"open /user-distribution",
		"open /waitlist",
		"waitlist-add",
		"open /users",
		"user 7",
		"user-create",
		"user-verify 7 verified",
		"open /profile",
		"profile-update",
		"admins",
		"admin-create",
		"open /nowhere",
		"status",
		"validate",
		"logout",
	}, exec.calls)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.NewReader("user\nuser-verify 1\ngo\nfoobar\n\nquit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "(s)" }, bufio.NewScanner(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: user <id>")
	assert.Contains(t, *lines, "Usage: user-verify <id> <verified|pending|rejected>")
	assert.Contains(t, *lines, "Usage: go <path>")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Contains(t, *lines, "Bye!")
	assert.Contains(t, *lines, "admin(s)> ")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewScanner(strings.NewReader("help\nlogin\nhelp\n")))

	assert.Contains(t, *lines, helpAnonymous)
	assert.Contains(t, *lines, helpSignedIn)
}
