package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	arg   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Add(ctx context.Context) error { f.calls = append(f.calls, "add"); return nil }
func (f *fakeExec) List(ctx context.Context) error {
	f.calls = append(f.calls, "list")
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete")
	f.arg = id
	return nil
}
func (f *fakeExec) Stats(ctx context.Context, month string) error {
	f.calls = append(f.calls, "stats")
	f.arg = month
	return nil
}
func (f *fakeExec) Day(ctx context.Context, date string) error {
	f.calls = append(f.calls, "day")
	f.arg = date
	return nil
}
func (f *fakeExec) Types(ctx context.Context) error {
	f.calls = append(f.calls, "types")
	return nil
}
func (f *fakeExec) RefreshTypes(ctx context.Context) error {
	f.calls = append(f.calls, "refresh-types")
	return nil
}
func (f *fakeExec) Sync(ctx context.Context) error { f.calls = append(f.calls, "sync"); return nil }
func (f *fakeExec) Reset(ctx context.Context) error {
	f.calls = append(f.calls, "reset")
	return nil
}

func muteOutput(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"add",
		"l",
		"types",
		"sync",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "add", "list", "types", "sync"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_ArgumentsReachHandlers(t *testing.T) {
	muteOutput(t)

	tests := []struct {
		name     string
		line     string
		wantCall string
		wantArg  string
	}{
		{name: "delete with id", line: "delete 1715200000000", wantCall: "delete", wantArg: "1715200000000"},
		{name: "stats with month", line: "stats 2024-05", wantCall: "stats", wantArg: "2024-05"},
		{name: "stats without month", line: "stats", wantCall: "stats", wantArg: ""},
		{name: "day with date", line: "day 2024-05-02", wantCall: "day", wantArg: "2024-05-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExec{loggedIn: true}
			sc := bufio.NewScanner(strings.NewReader(tt.line + "\nexit\n"))

			runREPL(context.Background(), exec, func() string { return "" }, sc)

			if len(exec.calls) != 1 || exec.calls[0] != tt.wantCall {
				t.Fatalf("calls = %v, want [%s]", exec.calls, tt.wantCall)
			}
			if exec.arg != tt.wantArg {
				t.Fatalf("arg = %q, want %q", exec.arg, tt.wantArg)
			}
		})
	}
}

func TestRunREPL_BlankLinesAndEOF(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("\n   \nlist\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	// loop must return on EOF without an explicit exit
	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("calls = %v, want [list]", exec.calls)
	}
}

func TestRunREPL_LogoutReset(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("reset\nrefresh-types\nlogout\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	want := []string{"reset", "refresh-types", "logout"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", exec.calls, want)
		}
	}
	if exec.loggedIn {
		t.Fatal("logout must flip the session state")
	}
}
