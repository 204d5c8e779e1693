package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Vault(ctx context.Context) error
	Vents(ctx context.Context) error
	Reflections(ctx context.Context) error
	Chat(ctx context.Context) error
	Profile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
}

// Root starts the REPL on stdin and blocks until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "SerenitySpace CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	if user, ok := a.session.User(); ok && a.session.Active() {
		return fmt.Sprintf("(%s)", user.Username)
	}
	return ""
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Not signed in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — sign in
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - vault          — open the message vault view
//	  - vents          — open the vent room
//	  - reflections    — open the reflections journal
//	  - chat           — talk to the support bot
//	  - profile        — view or update the profile
//	  - password       — change the password
//	  - logout         — sign out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("serenity %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: vault, vents, reflections, chat, profile, password, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "vault":
			_ = a.Vault(ctx)

		case "vents":
			_ = a.Vents(ctx)

		case "reflections":
			_ = a.Reflections(ctx)

		case "chat":
			_ = a.Chat(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "password":
			_ = a.ChangePassword(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
