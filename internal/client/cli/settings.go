package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) Settings(ctx context.Context, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "show":
		return a.showSettings(ctx)
	case "edit":
		return a.editSettings(ctx)
	default:
		printlnFn("Usage: settings [show|edit]")
		return nil
	}
}

func (a *App) showSettings(ctx context.Context) error {
	s, err := a.api.GetSettings(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("general:       language=%s timezone=%s currency=%s date=%s",
		s.General.Language, s.General.Timezone, s.General.Currency, s.General.DateFormat))
	printlnFn(fmt.Sprintf("notifications: email=%t push=%t weekly=%t inventory=%t sales=%t",
		s.Notifications.EmailNotifications, s.Notifications.PushNotifications,
		s.Notifications.WeeklyReports, s.Notifications.InventoryAlerts, s.Notifications.SalesAlerts))
	printlnFn(fmt.Sprintf("security:      2fa=%t session-timeout=%s",
		s.Security.TwoFactorAuth, s.Security.SessionTimeout))
	printlnFn(fmt.Sprintf("display:       theme=%s compact=%t per-page=%s",
		s.Display.Theme, s.Display.CompactView, s.Display.ItemsPerPage))
	return nil
}

func (a *App) editSettings(ctx context.Context) error {
	current, err := a.api.GetSettings(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	s := *current
	if s.General.Language, err = GetOptionalText(a.reader, "Language", s.General.Language, os.Stdout); err != nil {
		return err
	}
	if s.General.Timezone, err = GetOptionalText(a.reader, "Timezone", s.General.Timezone, os.Stdout); err != nil {
		return err
	}
	if s.General.Currency, err = GetOptionalText(a.reader, "Currency", s.General.Currency, os.Stdout); err != nil {
		return err
	}
	if s.Notifications.EmailNotifications, err = GetYesNo(a.reader, "Email notifications?", os.Stdout); err != nil {
		return err
	}
	if s.Notifications.WeeklyReports, err = GetYesNo(a.reader, "Weekly reports?", os.Stdout); err != nil {
		return err
	}
	if s.Display.Theme, err = GetOptionalText(a.reader, "Theme (light/dark)", s.Display.Theme, os.Stdout); err != nil {
		return err
	}

	updated, err := a.api.UpdateSettings(ctx, s)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	// keep the local theme preference in sync with the backend copy
	if err := a.session.SetTheme(ctx, updated.Display.Theme); err != nil {
		a.log.Warn(ctx, "failed to store theme", "error", err)
	}
	printlnFn("Settings saved.")
	return nil
}

// Theme shows or changes the locally stored UI theme. It works without a
// session and survives logout.
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		theme := a.session.Theme(ctx)
		if theme == "" {
			theme = "light"
		}
		printlnFn("Current theme:", theme)
		return nil
	}

	theme := args[0]
	if theme != "light" && theme != "dark" {
		printlnFn("Usage: theme [light|dark]")
		return nil
	}
	if err := a.session.SetTheme(ctx, theme); err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn("Theme set to", theme+".")
	return nil
}
