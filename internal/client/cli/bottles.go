package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olivecrm/olivecrm/internal/client/api"
	"github.com/olivecrm/olivecrm/internal/client/models"
)

func (a *App) Bottles(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		return a.listBottles(ctx, args)
	case "show":
		return a.showBottle(ctx, args)
	case "add":
		if !a.warnReadOnly() {
			return nil
		}
		return a.addBottle(ctx)
	case "update":
		if !a.warnReadOnly() {
			return nil
		}
		return a.updateBottle(ctx, args)
	case "delete":
		if !a.warnReadOnly() {
			return nil
		}
		return a.deleteBottle(ctx, args)
	default:
		printlnFn("Usage: bottles [list|show <id>|add|update <id>|delete <id>]")
		return nil
	}
}

func (a *App) listBottles(ctx context.Context, args []string) error {
	opts := api.ListOptions{}
	if len(args) > 0 {
		opts.Search = args[0]
	}
	page, err := a.api.ListBottles(ctx, opts)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("%d bottle(s):", page.Count))
	for _, b := range page.Results {
		printlnFn(fmt.Sprintf("  #%d %s (%s, %s) %.2f, stock %d", b.ID, b.Name, b.Type, b.Volume, b.Price, b.Stock))
	}
	return nil
}

func (a *App) showBottle(ctx context.Context, args []string) error {
	id, err := idArg(args, "bottles show <id>")
	if err != nil {
		return err
	}
	b, err := a.api.GetBottle(ctx, id)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("#%d %s", b.ID, b.Name))
	printlnFn(fmt.Sprintf("  type:  %s %s", b.Type, b.Volume))
	printlnFn(fmt.Sprintf("  price: %.2f, stock %d, sku %s", b.Price, b.Stock, b.SKU))
	if b.Description != "" {
		printlnFn("  " + b.Description)
	}
	return nil
}

func (a *App) addBottle(ctx context.Context) error {
	bottle, err := a.promptBottle(models.Bottle{})
	if err != nil {
		return err
	}
	created, err := a.api.CreateBottle(ctx, bottle)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Created bottle #%d %s.", created.ID, created.Name))
	return nil
}

func (a *App) updateBottle(ctx context.Context, args []string) error {
	id, err := idArg(args, "bottles update <id>")
	if err != nil {
		return err
	}
	current, err := a.api.GetBottle(ctx, id)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	bottle, err := a.promptBottle(*current)
	if err != nil {
		return err
	}
	updated, err := a.api.UpdateBottle(ctx, id, bottle)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Updated bottle #%d.", updated.ID))
	return nil
}

func (a *App) deleteBottle(ctx context.Context, args []string) error {
	id, err := idArg(args, "bottles delete <id>")
	if err != nil {
		return err
	}
	ok, err := GetYesNo(a.reader, fmt.Sprintf("Delete bottle #%d?", id), os.Stdout)
	if err != nil || !ok {
		return err
	}
	if err := a.api.DeleteBottle(ctx, id); err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn("Deleted.")
	return nil
}

func (a *App) promptBottle(base models.Bottle) (models.Bottle, error) {
	var err error
	if base.Name, err = GetOptionalText(a.reader, "Name", base.Name, os.Stdout); err != nil {
		return base, err
	}
	if base.Type, err = GetOptionalText(a.reader, "Type (e.g. extra-virgin)", base.Type, os.Stdout); err != nil {
		return base, err
	}
	if base.Volume, err = GetOptionalText(a.reader, "Volume (e.g. 500ml)", base.Volume, os.Stdout); err != nil {
		return base, err
	}
	price, err := GetOptionalText(a.reader, "Price", fmt.Sprintf("%g", base.Price), os.Stdout)
	if err != nil {
		return base, err
	}
	if base.Price, err = strconv.ParseFloat(price, 64); err != nil {
		printlnFn("Invalid number:", price)
		return base, err
	}
	stock, err := GetOptionalText(a.reader, "Stock", strconv.Itoa(base.Stock), os.Stdout)
	if err != nil {
		return base, err
	}
	if base.Stock, err = strconv.Atoi(stock); err != nil {
		printlnFn("Invalid number:", stock)
		return base, err
	}
	if base.SKU, err = GetOptionalText(a.reader, "SKU", base.SKU, os.Stdout); err != nil {
		return base, err
	}
	if base.Description, err = GetOptionalText(a.reader, "Description", base.Description, os.Stdout); err != nil {
		return base, err
	}
	return base, nil
}
