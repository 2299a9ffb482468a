package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/olivecrm/olivecrm/internal/client/models"
)

func (a *App) Profile(ctx context.Context, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "show":
		return a.showProfile(ctx)
	case "edit":
		return a.editProfile(ctx)
	default:
		printlnFn("Usage: profile [show|edit]")
		return nil
	}
}

func (a *App) showProfile(ctx context.Context) error {
	user, err := a.api.Profile(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("%s %s (%s)", user.FirstName, user.LastName, user.Username))
	printlnFn(fmt.Sprintf("  email: %s", user.Email))
	printlnFn(fmt.Sprintf("  role:  %s", user.Role))
	if user.LastLogin != nil {
		printlnFn(fmt.Sprintf("  last login: %s", user.LastLogin.Format("2006-01-02 15:04")))
	}
	return nil
}

func (a *App) editProfile(ctx context.Context) error {
	current := a.session.CurrentUser()
	if current == nil {
		return nil
	}

	email, err := GetOptionalText(a.reader, "Email", current.Email, os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := GetOptionalText(a.reader, "First name", current.FirstName, os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := GetOptionalText(a.reader, "Last name", current.LastName, os.Stdout)
	if err != nil {
		return err
	}

	patch := models.ProfilePatch{}
	if email != current.Email {
		patch.Email = &email
	}
	if firstName != current.FirstName {
		patch.FirstName = &firstName
	}
	if lastName != current.LastName {
		patch.LastName = &lastName
	}
	if patch.Email == nil && patch.FirstName == nil && patch.LastName == nil {
		printlnFn("Nothing to change.")
		return nil
	}

	user, err := a.api.UpdateProfile(ctx, patch)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	a.session.SetUser(ctx, user)
	printlnFn("Profile updated.")
	return nil
}
