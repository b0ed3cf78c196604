package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

func (a *App) getStatus() string {
	s := ""
	if a.session.Username() != "" {
		s = a.session.Username() + " "
	}
	if a.monitor.IsOnline() {
		s += "online"
	} else {
		s += "offline"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to homeledger (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("hl %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, del, reminders, addreminder, delreminder, " +
					"summary, balance, receipt, sync, pending, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "add":
			a.addExpense(ctx)
		case "l", "list":
			a.list(ctx)
		case "del":
			a.deleteExpense(ctx, args)
		case "reminders":
			a.listReminders(ctx)
		case "addreminder":
			a.addReminder(ctx)
		case "delreminder":
			a.deleteReminder(ctx, args)
		case "summary":
			a.summary(ctx, args)
		case "balance":
			a.balance(ctx)
		case "receipt":
			a.receipt(ctx, args)
		case "sync":
			a.syncNow(ctx)
		case "pending":
			a.pending(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
