package cli

import (
	"context"
	"fmt"
)

// Reports prints the dashboard numbers: barrel statistics and the sales
// summary side by side.
func (a *App) Reports(ctx context.Context) error {
	printlnFn("-- Cellar --")
	if err := a.barrelStats(ctx); err != nil {
		return err
	}

	summary, err := a.api.SalesSummary(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn("-- Sales --")
	printlnFn(fmt.Sprintf("Sales: %d, revenue %.2f, average order %.2f",
		summary.TotalSales, summary.TotalRevenue, summary.AverageOrderValue))
	for _, p := range summary.TopProducts {
		printlnFn(fmt.Sprintf("  %s: %g sold, revenue %.2f", p.ProductName, p.Quantity, p.Revenue))
	}
	if len(summary.MonthlySales) > 0 {
		printlnFn("-- Monthly --")
		for _, m := range summary.MonthlySales {
			printlnFn(fmt.Sprintf("  %s %d: %d sale(s), revenue %.2f", m.Month, m.Year, m.TotalSales, m.TotalRevenue))
		}
	}
	return nil
}
