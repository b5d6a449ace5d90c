package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for credentials and creates a new account. The new
// identity becomes current immediately, which rebuilds the shared actor
// handle and drops all cached data.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	id, err := a.auth.Register(opCtx, username, string(password))
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %s\n", err.Error())
		return err
	}

	a.idctx.SetIdentity(id)
	a.persistSession()
	fmt.Fprintln(a.out, "Registered and signed in.")
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	id, err := a.auth.Login(opCtx, username, string(password))
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %s\n", err.Error())
		return err
	}

	a.idctx.SetIdentity(id)
	a.persistSession()
	fmt.Fprintln(a.out, "Signed in.")
	return nil
}

// Logout drops the identity. The client returns to anonymous: public reads
// keep working, cached per-identity state is gone.
func (a *App) Logout(ctx context.Context) error {
	a.idctx.Clear()
	a.dropSession()
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}
