package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.idctx.IsInitializing() {
		return "(...)"
	}
	if id, ok := a.idctx.Identity(); ok {
		return fmt.Sprintf("(%s)", id.Principal)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the portfolio CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "folio %s> ", a.getStatus())
		if !scanner.Scan() {
			break
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
			a.printHelp()

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			a.whoami(ctx)

		case "profile":
			a.showProfile(ctx)
		case "interests":
			a.showInterests(ctx)
		case "pubs", "publications":
			a.showPublications(ctx)
		case "pub":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: pub <id>")
				continue
			}
			a.showPublication(ctx, args[0])
		case "contact":
			a.showContact(ctx)

		case "me":
			a.showCallerProfile(ctx)
		case "user":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: user <id>")
				continue
			}
			a.showUserProfile(ctx, args[0])
		case "set-me":
			_ = a.saveCallerProfile(ctx)

		case "edit-profile":
			_ = a.editProfile(ctx)
		case "set-contact":
			_ = a.setContact(ctx)
		case "add-interest":
			_ = a.addInterest(ctx, args)
		case "del-interest":
			_ = a.deleteInterest(ctx, args)
		case "add-pub":
			_ = a.addPublication(ctx)
		case "edit-pub":
			_ = a.editPublication(ctx, args)
		case "del-pub":
			_ = a.deletePublication(ctx, args)

		case "assign-role":
			_ = a.assignRole(ctx, args)
		case "clear-data":
			_ = a.clearData(ctx)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, "Viewing: profile, interests, pubs, pub <id>, contact")
	fmt.Fprintln(a.out, "Account: register, login, logout, whoami, me, set-me, user <id>")
	if a.resolver.CanEdit(context.Background()) {
		fmt.Fprintln(a.out, "Editing: edit-profile, set-contact, add-interest <name>, del-interest <id>, add-pub, edit-pub <id>, del-pub <id>")
		fmt.Fprintln(a.out, "Admin: assign-role <user-id> <role>, clear-data")
	}
	fmt.Fprintln(a.out, "Other: help, exit")
}
