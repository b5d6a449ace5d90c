package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mswiatek/scholarfolio/internal/client/models"
	"github.com/mswiatek/scholarfolio/internal/client/querysync"
)

func describeSnapshotState[T any](snap querysync.Snapshot[T]) (string, bool) {
	if snap.Loading {
		return "Loading...", false
	}
	if snap.Err != nil {
		return "Error: " + snap.Err.Error(), false
	}
	return "", true
}

func (a *App) showProfile(ctx context.Context) {
	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	snap := a.cache.Profile.Get(opCtx)
	if msg, ok := describeSnapshotState(snap); !ok {
		fmt.Fprintln(a.out, msg)
		return
	}
	if snap.Data == nil {
		fmt.Fprintln(a.out, "No profile has been published yet.")
		return
	}

	fmt.Fprintf(a.out, "Name: %s\n", snap.Data.Name)
	fmt.Fprintf(a.out, "Biography: %s\n", snap.Data.Biography)
	if snap.Data.Photo != nil {
		fmt.Fprintf(a.out, "Photo: %s\n", snap.Data.Photo.Locator())
	}
}

func (a *App) showInterests(ctx context.Context) {
	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	snap := a.cache.Interests.Get(opCtx)
	if msg, ok := describeSnapshotState(snap); !ok {
		fmt.Fprintln(a.out, msg)
		return
	}
	if len(snap.Data) == 0 {
		fmt.Fprintln(a.out, "No research interests yet.")
		return
	}

	for _, interest := range snap.Data {
		fmt.Fprintf(a.out, "%s  %s\n", interest.ID, interest.Name)
	}
}

func (a *App) showPublications(ctx context.Context) {
	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	snap := a.cache.Publications.Get(opCtx)
	if msg, ok := describeSnapshotState(snap); !ok {
		fmt.Fprintln(a.out, msg)
		return
	}
	if len(snap.Data) == 0 {
		fmt.Fprintln(a.out, "No publications yet.")
		return
	}

	for _, pub := range snap.Data {
		fmt.Fprintf(a.out, "%s  %s  (%s)\n", pub.ID, pub.Title, formatTimestamp(pub.Timestamp))
	}
}

func (a *App) showPublication(ctx context.Context, id string) {
	actr, ok := a.gw.Ready()
	if !ok {
		fmt.Fprintln(a.out, "Still connecting, try again in a moment.")
		return
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	pub, err := actr.GetPublication(opCtx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}

	printPublication(a.out, pub)
}

func printPublication(out io.Writer, pub *models.Publication) {
	fmt.Fprintf(out, "Title: %s\n", pub.Title)
	fmt.Fprintf(out, "Description: %s\n", pub.Description)
	fmt.Fprintf(out, "Published: %s\n", formatTimestamp(pub.Timestamp))
	if pub.Link != nil {
		fmt.Fprintf(out, "Link: %s\n", *pub.Link)
	}
	if pub.PDF != nil {
		fmt.Fprintf(out, "PDF: %s\n", pub.PDF.Locator())
	}
}

func (a *App) showContact(ctx context.Context) {
	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	snap := a.cache.Contact.Get(opCtx)
	if msg, ok := describeSnapshotState(snap); !ok {
		fmt.Fprintln(a.out, msg)
		return
	}
	if snap.Data == nil {
		fmt.Fprintln(a.out, "No contact information yet.")
		return
	}

	fmt.Fprintf(a.out, "Email: %s\n", snap.Data.Email)
	fmt.Fprintf(a.out, "Affiliation: %s\n", snap.Data.Affiliation)
}

func (a *App) whoami(ctx context.Context) {
	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	status := a.resolver.Status(opCtx)
	if status.Loading {
		fmt.Fprintln(a.out, "Resolving identity...")
		return
	}

	if !status.IsAuthenticated {
		fmt.Fprintln(a.out, "Not signed in.")
		return
	}

	if id, ok := a.idctx.Identity(); ok {
		fmt.Fprintf(a.out, "Signed in as: %s\n", id.Principal)
	}
	fmt.Fprintf(a.out, "Access level: %s\n", status.Capability)
	if status.Err != nil {
		fmt.Fprintf(a.out, "Ownership check failed: %s\n", status.Err.Error())
	}

	if actr, ok := a.gw.Ready(); ok {
		if role, err := actr.GetCallerUserRole(opCtx); err == nil {
			fmt.Fprintf(a.out, "Role: %s\n", role)
		}
		if isAdmin, err := actr.IsCallerAdmin(opCtx); err == nil && isAdmin {
			fmt.Fprintln(a.out, "Administrative access: yes")
		}
	}
}

func (a *App) showCallerProfile(ctx context.Context) {
	if _, ok := a.idctx.Identity(); !ok {
		fmt.Fprintln(a.out, "Sign in to see your account profile.")
		return
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	snap := a.cache.CallerProfile.Get(opCtx)
	if msg, ok := describeSnapshotState(snap); !ok {
		fmt.Fprintln(a.out, msg)
		return
	}
	if snap.Data == nil {
		fmt.Fprintln(a.out, "You have not set up an account profile yet.")
		return
	}

	fmt.Fprintf(a.out, "Display name: %s\n", snap.Data.Name)
}

func (a *App) showUserProfile(ctx context.Context, userID string) {
	actr, ok := a.gw.Ready()
	if !ok {
		fmt.Fprintln(a.out, "Still connecting, try again in a moment.")
		return
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	p, err := actr.GetUserProfile(opCtx, userID)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return
	}
	if p == nil {
		fmt.Fprintln(a.out, "This user has no profile.")
		return
	}
	fmt.Fprintf(a.out, "Display name: %s\n", p.Name)
}

func formatTimestamp(ns int64) string {
	return time.Unix(0, ns).Format(time.DateOnly)
}
