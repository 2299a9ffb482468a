package cli

import (
	"context"
	"fmt"
	"time"
)

// Export asks the backend to generate a CSV export and prints the download
// URL. The URL is presigned and expires.
func (a *App) Export(ctx context.Context, args []string) error {
	what := "sales"
	if len(args) > 0 {
		what = args[0]
	}

	var (
		url       string
		expiresIn int64
		err       error
	)
	switch what {
	case "barrels":
		resp, e := a.api.ExportBarrels(ctx)
		if e == nil {
			url, expiresIn = resp.URL, resp.ExpiresIn
		}
		err = e
	case "sales":
		resp, e := a.api.ExportSales(ctx)
		if e == nil {
			url, expiresIn = resp.URL, resp.ExpiresIn
		}
		err = e
	default:
		printlnFn("Usage: export [barrels|sales]")
		return nil
	}
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Download (valid for " + (time.Duration(expiresIn) * time.Second).String() + "):")
	printlnFn(fmt.Sprintf("  %s", url))
	return nil
}
