package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Users(ctx context.Context) error
	Inbox(ctx context.Context) error
	Sent(ctx context.Context) error
	Drafts(ctx context.Context) error
	Compose(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Unlock(ctx context.Context, id string) error
	Read(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: inbox, sent, drafts, compose, show <id>, unlock <id>, read <id>, delete <id>, users, me, logout, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
// Command errors are printed and the loop goes on. It returns on EOF, on a
// read error or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ll%s> ", prefixSpace(statusFn())))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "me":
			cmdErr = a.Me(ctx)
		case "users":
			cmdErr = a.Users(ctx)
		case "inbox":
			cmdErr = a.Inbox(ctx)
		case "sent":
			cmdErr = a.Sent(ctx)
		case "drafts":
			cmdErr = a.Drafts(ctx)
		case "compose":
			cmdErr = a.Compose(ctx)

		case "show", "unlock", "read", "delete":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			cmdErr = withID(ctx, a, cmd, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
	}
}

func withID(ctx context.Context, a execIface, cmd, id string) error {
	switch cmd {
	case "show":
		return a.Show(ctx, id)
	case "unlock":
		return a.Unlock(ctx, id)
	case "read":
		return a.Read(ctx, id)
	default:
		return a.Delete(ctx, id)
	}
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
