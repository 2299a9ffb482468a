package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/olivecrm/olivecrm/internal/client/models"
	"github.com/olivecrm/olivecrm/internal/common"
)

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	rememberMe, err := GetYesNo(a.reader, "Remember me on this machine?", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, models.LoginRequest{
		Username:   username,
		Password:   string(password),
		RememberMe: rememberMe,
	})
	if err != nil {
		printlnFn("Login failed:", err)
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s (%s).", user.Username, user.Role))
	return nil
}

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := GetSimpleText(a.reader, "First name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := GetSimpleText(a.reader, "Last name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := GetPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		printlnFn("Passwords do not match.")
		return common.ErrorValidation
	}

	accept, err := GetYesNo(a.reader, "Accept the terms of service?", os.Stdout)
	if err != nil {
		return err
	}
	if !accept {
		printlnFn("Registration cancelled.")
		return nil
	}

	resp, err := a.auth.Register(ctx, models.RegisterRequest{
		Email:           email,
		Username:        username,
		Password:        string(password),
		ConfirmPassword: string(confirm),
		FirstName:       firstName,
		LastName:        lastName,
		AcceptTerms:     accept,
	})
	if err != nil {
		printlnFn("Registration failed:", err)
		return err
	}

	printlnFn(fmt.Sprintf("Account %s created. You can now log in.", resp.User.Username))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	user := a.session.CurrentUser()
	if user == nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> role=%s", user.Username, user.Email, user.Role))
	return nil
}

func (a *App) Passwd(ctx context.Context) error {
	oldPassword, err := GetPassword(os.Stdout, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := GetPassword(os.Stdout, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	confirm, err := GetPassword(os.Stdout, "Confirm new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(newPassword) != string(confirm) {
		printlnFn("Passwords do not match.")
		return common.ErrorValidation
	}

	err = a.api.ChangePassword(ctx, models.ChangePasswordRequest{
		OldPassword:     string(oldPassword),
		NewPassword:     string(newPassword),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		printlnFn("Password change failed:", err)
		return err
	}

	printlnFn("Password changed.")
	return nil
}
