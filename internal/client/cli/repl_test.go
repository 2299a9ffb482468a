package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn  bool
	loginErr  error
	calls     []string
	lastArgs  []string
	loginAsks int
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.lastArgs = args
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) requireLogin(ctx context.Context) bool {
	if f.loggedIn {
		return true
	}
	f.loginAsks++
	if err := f.Login(ctx); err != nil {
		return false
	}
	return f.loggedIn
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register", nil) }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) Whoami(ctx context.Context) error { return f.record("whoami", nil) }
func (f *fakeExec) Profile(ctx context.Context, args []string) error {
	return f.record("profile", args)
}
func (f *fakeExec) Passwd(ctx context.Context) error { return f.record("passwd", nil) }
func (f *fakeExec) Barrels(ctx context.Context, args []string) error {
	return f.record("barrels", args)
}
func (f *fakeExec) Bottles(ctx context.Context, args []string) error {
	return f.record("bottles", args)
}
func (f *fakeExec) Sales(ctx context.Context, args []string) error { return f.record("sales", args) }
func (f *fakeExec) Reports(ctx context.Context) error              { return f.record("reports", nil) }
func (f *fakeExec) Settings(ctx context.Context, args []string) error {
	return f.record("settings", args)
}
func (f *fakeExec) Theme(ctx context.Context, args []string) error {
	return f.record("theme", args)
}
func (f *fakeExec) Export(ctx context.Context, args []string) error {
	return f.record("export", args)
}

func silencePrintln(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.Join([]string{
		"help",
		"login",
		"barrels list",
		"sales summary",
		"reports",
		"theme dark",
		"logout",
		"exit",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader(input)))

	require.Equal(t, []string{"login", "barrels", "sales", "reports", "theme", "logout"}, exec.calls)
}

func TestRunREPL_ProtectedCommandPromptsLoginThenRuns(t *testing.T) {
	silencePrintln(t)

	// not logged in: "barrels list" first triggers a login, then runs
	input := "barrels list\nexit\n"
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader(input)))

	require.Equal(t, 1, exec.loginAsks)
	require.Equal(t, []string{"login", "barrels"}, exec.calls)
	require.Equal(t, []string{"list"}, exec.lastArgs)
}

func TestRunREPL_FailedLoginDropsCommand(t *testing.T) {
	silencePrintln(t)

	input := "sales\nexit\n"
	exec := &fakeExec{loginErr: context.DeadlineExceeded}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader(input)))

	require.Equal(t, []string{"login"}, exec.calls)
}

func TestRunREPL_UnknownAndEmptyInput(t *testing.T) {
	silencePrintln(t)

	input := "\nfoobar\nexit\n"
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader(input)))

	require.Empty(t, exec.calls)
}
