package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mswiatek/scholarfolio/internal/client/authz"
	"github.com/mswiatek/scholarfolio/internal/client/blob"
	"github.com/mswiatek/scholarfolio/internal/client/models"
	"github.com/mswiatek/scholarfolio/internal/common"
)

// requireOwner gates edit commands on the resolved capability. Signed-in
// visitors who are not the owner get an explicit notice instead of a
// server-side rejection.
func (a *App) requireOwner(ctx context.Context) bool {
	status := a.resolver.Status(ctx)
	switch {
	case status.Loading:
		fmt.Fprintln(a.out, "Still connecting, try again in a moment.")
	case status.Capability == authz.CanEdit:
		return true
	case status.IsAuthenticated:
		fmt.Fprintln(a.out, "You are signed in, but only the portfolio owner can edit content.")
	default:
		fmt.Fprintln(a.out, "Sign in as the portfolio owner to edit content.")
	}
	return false
}

// promptAttachment asks for a local file path and turns the answer into an
// attachment patch: Enter keeps the current attachment, "-" removes it, a
// path replaces it with the file's bytes.
func (a *App) promptAttachment(label string) (blob.Patch, error) {
	answer, err := getSimpleText(a.reader, label+" file path (Enter = keep current, '-' = remove)", os.Stdout)
	if err != nil {
		return blob.Patch{}, err
	}

	switch answer {
	case "":
		return blob.Unchanged(), nil
	case "-":
		return blob.Remove(), nil
	}

	data, err := os.ReadFile(answer)
	if err != nil {
		return blob.Patch{}, err
	}

	ref := blob.FromBytes(data).WithProgress(func(percent int) {
		fmt.Fprintf(a.out, "\rUploading... %d%%", percent)
		if percent == 100 {
			fmt.Fprintln(a.out)
		}
	})
	return blob.Replace(ref), nil
}

func (a *App) editProfile(ctx context.Context) error {
	if !a.requireOwner(ctx) {
		return nil
	}

	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(a.out, "Name is required.")
		return common.ErrValidation
	}

	biography, err := getSimpleText(a.reader, "Biography", os.Stdout)
	if err != nil {
		return err
	}

	photo, err := a.promptAttachment("Photo")
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	return a.pipeline.SetProfile(opCtx, name, biography, photo)
}

func (a *App) setContact(ctx context.Context) error {
	if !a.requireOwner(ctx) {
		return nil
	}

	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.Contains(email, "@") {
		fmt.Fprintln(a.out, "A valid email address is required.")
		return common.ErrValidation
	}

	affiliation, err := getSimpleText(a.reader, "Affiliation", os.Stdout)
	if err != nil {
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	return a.pipeline.SetContactInfo(opCtx, email, affiliation)
}

func (a *App) addInterest(ctx context.Context, args []string) error {
	if !a.requireOwner(ctx) {
		return nil
	}

	name := strings.Join(args, " ")
	if name == "" {
		var err error
		name, err = getSimpleText(a.reader, "Interest name", os.Stdout)
		if err != nil {
			return err
		}
	}
	if name == "" {
		fmt.Fprintln(a.out, "Interest name is required.")
		return common.ErrValidation
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	_, err := a.pipeline.AddResearchInterest(opCtx, name)
	return err
}

func (a *App) deleteInterest(ctx context.Context, args []string) error {
	if !a.requireOwner(ctx) {
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: del-interest <id>")
		return common.ErrValidation
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	return a.pipeline.DeleteResearchInterest(opCtx, args[0])
}

func (a *App) addPublication(ctx context.Context) error {
	if !a.requireOwner(ctx) {
		return nil
	}

	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	if title == "" {
		fmt.Fprintln(a.out, "Title is required.")
		return common.ErrValidation
	}

	description, err := getSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}

	link, err := a.promptOptionalLink(nil)
	if err != nil {
		return err
	}

	pdf, err := a.promptAttachment("PDF")
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	_, err = a.pipeline.AddPublication(opCtx, title, description, link, pdf)
	return err
}

func (a *App) editPublication(ctx context.Context, args []string) error {
	if !a.requireOwner(ctx) {
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: edit-pub <id>")
		return common.ErrValidation
	}
	id := args[0]

	actr, ok := a.gw.Ready()
	if !ok {
		fmt.Fprintln(a.out, "Still connecting, try again in a moment.")
		return common.ErrActorNotAvailable
	}

	fetchCtx, cancelFetch := a.opCtx(ctx)
	current, err := actr.GetPublication(fetchCtx, id)
	cancelFetch()
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}

	title, err := a.promptWithDefault("Title", current.Title)
	if err != nil {
		return err
	}
	if title == "" {
		fmt.Fprintln(a.out, "Title is required.")
		return common.ErrValidation
	}

	description, err := a.promptWithDefault("Description", current.Description)
	if err != nil {
		return err
	}

	link, err := a.promptOptionalLink(current.Link)
	if err != nil {
		return err
	}

	pdf, err := a.promptAttachment("PDF")
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	return a.pipeline.UpdatePublication(opCtx, id, title, description, link, pdf)
}

func (a *App) deletePublication(ctx context.Context, args []string) error {
	if !a.requireOwner(ctx) {
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: del-pub <id>")
		return common.ErrValidation
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	return a.pipeline.DeletePublication(opCtx, args[0])
}

func (a *App) saveCallerProfile(ctx context.Context) error {
	if _, ok := a.idctx.Identity(); !ok {
		fmt.Fprintln(a.out, "Sign in to set up your account profile.")
		return common.ErrUnauthorized
	}

	name, err := getSimpleText(a.reader, "Display name", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(a.out, "Display name is required.")
		return common.ErrValidation
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	return a.pipeline.SaveCallerUserProfile(opCtx, models.UserProfile{Name: name})
}

func (a *App) assignRole(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: assign-role <user-id> <role>")
		return common.ErrValidation
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	return a.pipeline.AssignUserRole(opCtx, args[0], args[1])
}

func (a *App) clearData(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This wipes all portfolio content. Type 'yes' to continue", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Aborted.")
		return nil
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()
	return a.pipeline.ClearData(opCtx)
}

func (a *App) promptWithDefault(label, current string) (string, error) {
	answer, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", label, current), os.Stdout)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

// promptOptionalLink reads an optional external link. Enter keeps the
// current value, "-" clears it.
func (a *App) promptOptionalLink(current *string) (*string, error) {
	label := "Link (optional"
	if current != nil {
		label += ", Enter = keep current, '-' = clear"
	}
	label += ")"

	answer, err := getSimpleText(a.reader, label, os.Stdout)
	if err != nil {
		return nil, err
	}

	switch answer {
	case "":
		return current, nil
	case "-":
		return nil, nil
	}
	return &answer, nil
}
