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
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, month string) error
	Day(ctx context.Context, date string) error
	Types(ctx context.Context) error
	RefreshTypes(ctx context.Context) error
	Sync(ctx context.Context) error
	Reset(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the sociallog CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help            - show available commands
//	  - login           - verify an identity credential
//	  - exit | quit     - leave the program
//
//	Logged in:
//	  - add             - log a new post
//	  - (l)ist          - list your posts
//	  - delete <id>     - delete one of your posts
//	  - stats [YYYY-MM] - monthly statistics dashboard
//	  - day <YYYY-MM-DD> - per-employee counts for one day
//	  - types           - show the post-type vocabulary
//	  - refresh-types   - refetch the vocabulary
//	  - sync            - reload the post list from the backend
//	  - reset           - wipe the local cache
//	  - logout          - forget the local session
//	  - exit | quit     - leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// and log their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sl> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist, delete <id>, stats [YYYY-MM], day <YYYY-MM-DD>, types, refresh-types, sync, reset, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "add":
			_ = a.Add(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "delete":
			_ = a.Delete(ctx, arg)

		case "stats":
			_ = a.Stats(ctx, arg)

		case "day":
			_ = a.Day(ctx, arg)

		case "types":
			_ = a.Types(ctx)

		case "refresh-types":
			_ = a.RefreshTypes(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
