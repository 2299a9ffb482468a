package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olivecrm/olivecrm/internal/client/api"
	"github.com/olivecrm/olivecrm/internal/client/models"
)

func (a *App) Barrels(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		return a.listBarrels(ctx, args)
	case "show":
		return a.showBarrel(ctx, args)
	case "add":
		if !a.warnReadOnly() {
			return nil
		}
		return a.addBarrel(ctx)
	case "update":
		if !a.warnReadOnly() {
			return nil
		}
		return a.updateBarrel(ctx, args)
	case "delete":
		if !a.warnReadOnly() {
			return nil
		}
		return a.deleteBarrel(ctx, args)
	case "stats":
		return a.barrelStats(ctx)
	default:
		printlnFn("Usage: barrels [list|show <id>|add|update <id>|delete <id>|stats]")
		return nil
	}
}

func (a *App) listBarrels(ctx context.Context, args []string) error {
	opts := api.ListOptions{}
	if len(args) > 0 {
		opts.Search = args[0]
	}
	page, err := a.api.ListBarrels(ctx, opts)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("%d barrel(s):", page.Count))
	for _, b := range page.Results {
		printlnFn(fmt.Sprintf("  #%d %s %s %.0f/%.0f L", b.ID, b.BarrelNumber, b.Location, b.CurrentVolume, b.Capacity))
	}
	return nil
}

func (a *App) showBarrel(ctx context.Context, args []string) error {
	id, err := idArg(args, "barrels show <id>")
	if err != nil {
		return err
	}
	b, err := a.api.GetBarrel(ctx, id)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("#%d %s", b.ID, b.BarrelNumber))
	printlnFn(fmt.Sprintf("  location: %s", b.Location))
	printlnFn(fmt.Sprintf("  volume:   %.1f / %.1f L (%.1f free)", b.CurrentVolume, b.Capacity, b.AvailableCapacity))
	if b.Notes != "" {
		printlnFn("  notes:    " + b.Notes)
	}
	return nil
}

func (a *App) addBarrel(ctx context.Context) error {
	barrel, err := a.promptBarrel(models.Barrel{})
	if err != nil {
		return err
	}
	created, err := a.api.CreateBarrel(ctx, barrel)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Created barrel #%d %s.", created.ID, created.BarrelNumber))
	return nil
}

func (a *App) updateBarrel(ctx context.Context, args []string) error {
	id, err := idArg(args, "barrels update <id>")
	if err != nil {
		return err
	}
	current, err := a.api.GetBarrel(ctx, id)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	barrel, err := a.promptBarrel(*current)
	if err != nil {
		return err
	}
	updated, err := a.api.UpdateBarrel(ctx, id, barrel)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Updated barrel #%d.", updated.ID))
	return nil
}

func (a *App) deleteBarrel(ctx context.Context, args []string) error {
	id, err := idArg(args, "barrels delete <id>")
	if err != nil {
		return err
	}
	ok, err := GetYesNo(a.reader, fmt.Sprintf("Delete barrel #%d?", id), os.Stdout)
	if err != nil || !ok {
		return err
	}
	if err := a.api.DeleteBarrel(ctx, id); err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn("Deleted.")
	return nil
}

func (a *App) barrelStats(ctx context.Context) error {
	stats, err := a.api.BarrelStatistics(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Barrels: %d, capacity %.0f L, stored %.0f L",
		stats.TotalBarrels, stats.TotalCapacity, stats.TotalCurrentVolume))
	for _, loc := range stats.TopLocations {
		printlnFn(fmt.Sprintf("  %s: %d barrel(s), %.0f L", loc.Location, loc.Count, loc.TotalVolume))
	}
	return nil
}

// promptBarrel asks for every editable field, defaulting to the values of
// base so updates only need the changed fields typed in.
func (a *App) promptBarrel(base models.Barrel) (models.Barrel, error) {
	var err error
	if base.BarrelNumber, err = GetOptionalText(a.reader, "Barrel number", base.BarrelNumber, os.Stdout); err != nil {
		return base, err
	}
	capacity, err := GetOptionalText(a.reader, "Capacity (L)", fmt.Sprintf("%g", base.Capacity), os.Stdout)
	if err != nil {
		return base, err
	}
	if base.Capacity, err = strconv.ParseFloat(capacity, 64); err != nil {
		printlnFn("Invalid number:", capacity)
		return base, err
	}
	volume, err := GetOptionalText(a.reader, "Current volume (L)", fmt.Sprintf("%g", base.CurrentVolume), os.Stdout)
	if err != nil {
		return base, err
	}
	if base.CurrentVolume, err = strconv.ParseFloat(volume, 64); err != nil {
		printlnFn("Invalid number:", volume)
		return base, err
	}
	if base.Location, err = GetOptionalText(a.reader, "Location", base.Location, os.Stdout); err != nil {
		return base, err
	}
	if base.Notes, err = GetOptionalText(a.reader, "Notes", base.Notes, os.Stdout); err != nil {
		return base, err
	}
	return base, nil
}

func idArg(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		printlnFn("Usage: " + usage)
		return 0, fmt.Errorf("missing id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Invalid id:", args[0])
		return 0, err
	}
	return id, nil
}
