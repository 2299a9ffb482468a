package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olivecrm/olivecrm/internal/client/api"
	"github.com/olivecrm/olivecrm/internal/client/models"
)

func (a *App) Sales(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		return a.listSales(ctx, args)
	case "show":
		return a.showSale(ctx, args)
	case "add":
		if !a.warnReadOnly() {
			return nil
		}
		return a.addSale(ctx)
	case "status":
		if !a.warnReadOnly() {
			return nil
		}
		return a.setSaleStatus(ctx, args)
	case "delete":
		if !a.warnReadOnly() {
			return nil
		}
		return a.deleteSale(ctx, args)
	case "summary":
		return a.salesSummary(ctx)
	default:
		printlnFn("Usage: sales [list|show <id>|add|status <id> <status>|delete <id>|summary]")
		return nil
	}
}

func (a *App) listSales(ctx context.Context, args []string) error {
	opts := api.ListOptions{Ordering: "-order_date"}
	if len(args) > 0 {
		opts.Search = args[0]
	}
	page, err := a.api.ListSales(ctx, opts)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("%d sale(s):", page.Count))
	for _, s := range page.Results {
		printlnFn(fmt.Sprintf("  %s %s: %gx %s = %.2f [%s]",
			s.ID, s.CustomerName, s.Quantity, s.Product, s.Total, s.Status))
	}
	return nil
}

func (a *App) showSale(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: sales show <id>")
		return fmt.Errorf("missing id")
	}
	s, err := a.api.GetSale(ctx, args[0])
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("%s (%s)", s.ID, s.Status))
	printlnFn(fmt.Sprintf("  customer: %s", s.CustomerName))
	printlnFn(fmt.Sprintf("  order:    %gx %s at %.2f", s.Quantity, s.Product, s.Price))
	printlnFn(fmt.Sprintf("  total:    %.2f (discount %.2f, tax %.2f)", s.Total, s.Discount, s.Tax))
	printlnFn(fmt.Sprintf("  ordered:  %s", s.OrderDate.Format("2006-01-02")))
	if s.Notes != "" {
		printlnFn("  notes:    " + s.Notes)
	}
	return nil
}

func (a *App) addSale(ctx context.Context) error {
	customer, err := GetSimpleText(a.reader, "Customer name", os.Stdout)
	if err != nil {
		return err
	}
	product, err := GetSimpleText(a.reader, "Product", os.Stdout)
	if err != nil {
		return err
	}
	quantity, err := GetFloat(a.reader, "Quantity", os.Stdout)
	if err != nil {
		printlnFn("Invalid number.")
		return err
	}
	price, err := GetFloat(a.reader, "Unit price", os.Stdout)
	if err != nil {
		printlnFn("Invalid number.")
		return err
	}
	payment, err := GetOptionalText(a.reader, "Payment method (cash/credit/transfer/check)", "cash", os.Stdout)
	if err != nil {
		return err
	}

	sale := models.Sale{
		CustomerName:  customer,
		Product:       product,
		Quantity:      quantity,
		Price:         price,
		Status:        models.SalePending,
		OrderDate:     time.Now().UTC(),
		PaymentMethod: models.PaymentMethod(payment),
	}
	created, err := a.api.CreateSale(ctx, sale)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Created sale %s, total %.2f.", created.ID, created.Total))
	return nil
}

func (a *App) setSaleStatus(ctx context.Context, args []string) error {
	if len(args) < 2 {
		printlnFn("Usage: sales status <id> <pending|completed|cancelled|shipped>")
		return fmt.Errorf("missing arguments")
	}
	updated, err := a.api.UpdateSale(ctx, args[0], models.Sale{Status: models.SaleStatus(args[1])})
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Sale %s is now %s.", updated.ID, updated.Status))
	return nil
}

func (a *App) deleteSale(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: sales delete <id>")
		return fmt.Errorf("missing id")
	}
	ok, err := GetYesNo(a.reader, "Delete sale "+args[0]+"?", os.Stdout)
	if err != nil || !ok {
		return err
	}
	if err := a.api.DeleteSale(ctx, args[0]); err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn("Deleted.")
	return nil
}

func (a *App) salesSummary(ctx context.Context) error {
	summary, err := a.api.SalesSummary(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Sales: %d, revenue %.2f, average order %.2f",
		summary.TotalSales, summary.TotalRevenue, summary.AverageOrderValue))
	for _, p := range summary.TopProducts {
		printlnFn(fmt.Sprintf("  %s: %s sold, revenue %.2f", p.ProductName, strconv.FormatFloat(p.Quantity, 'g', -1, 64), p.Revenue))
	}
	return nil
}
