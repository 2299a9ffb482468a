package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/olivecrm/olivecrm/internal/client/models"
)

// ---- Barrels ----

func (c *Client) ListBarrels(ctx context.Context, opts ListOptions) (*Paginated[models.Barrel], error) {
	var page Paginated[models.Barrel]
	if err := c.do(ctx, http.MethodGet, "/barrels/", opts.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetBarrel(ctx context.Context, id int64) (*models.Barrel, error) {
	var b models.Barrel
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/barrels/%d/", id), nil, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) CreateBarrel(ctx context.Context, barrel models.Barrel) (*models.Barrel, error) {
	var b models.Barrel
	if err := c.do(ctx, http.MethodPost, "/barrels/", nil, barrel, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) UpdateBarrel(ctx context.Context, id int64, barrel models.Barrel) (*models.Barrel, error) {
	var b models.Barrel
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/barrels/%d/", id), nil, barrel, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) DeleteBarrel(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/barrels/%d/", id), nil, nil, nil)
}

func (c *Client) BarrelStatistics(ctx context.Context) (*models.BarrelStatistics, error) {
	var stats models.BarrelStatistics
	if err := c.do(ctx, http.MethodGet, "/barrels/statistics/", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ExportResponse is returned by export endpoints: a presigned URL where the
// generated file can be downloaded for a limited time.
type ExportResponse struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

func (c *Client) ExportBarrels(ctx context.Context) (*ExportResponse, error) {
	q := url.Values{"format": []string{"csv"}}
	var resp ExportResponse
	if err := c.do(ctx, http.MethodGet, "/barrels/export/", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ---- Bottles ----

func (c *Client) ListBottles(ctx context.Context, opts ListOptions) (*Paginated[models.Bottle], error) {
	var page Paginated[models.Bottle]
	if err := c.do(ctx, http.MethodGet, "/bottles/", opts.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetBottle(ctx context.Context, id int64) (*models.Bottle, error) {
	var b models.Bottle
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bottles/%d/", id), nil, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) CreateBottle(ctx context.Context, bottle models.Bottle) (*models.Bottle, error) {
	var b models.Bottle
	if err := c.do(ctx, http.MethodPost, "/bottles/", nil, bottle, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) UpdateBottle(ctx context.Context, id int64, bottle models.Bottle) (*models.Bottle, error) {
	var b models.Bottle
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/bottles/%d/", id), nil, bottle, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) DeleteBottle(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/bottles/%d/", id), nil, nil, nil)
}

// ---- Sales ----

func (c *Client) ListSales(ctx context.Context, opts ListOptions) (*Paginated[models.Sale], error) {
	var page Paginated[models.Sale]
	if err := c.do(ctx, http.MethodGet, "/sales/", opts.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetSale(ctx context.Context, id string) (*models.Sale, error) {
	var s models.Sale
	if err := c.do(ctx, http.MethodGet, "/sales/"+url.PathEscape(id)+"/", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) CreateSale(ctx context.Context, sale models.Sale) (*models.Sale, error) {
	var s models.Sale
	if err := c.do(ctx, http.MethodPost, "/sales/", nil, sale, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateSale(ctx context.Context, id string, sale models.Sale) (*models.Sale, error) {
	var s models.Sale
	if err := c.do(ctx, http.MethodPatch, "/sales/"+url.PathEscape(id)+"/", nil, sale, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) DeleteSale(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sales/"+url.PathEscape(id)+"/", nil, nil, nil)
}

func (c *Client) SalesSummary(ctx context.Context) (*models.SalesSummary, error) {
	var summary models.SalesSummary
	if err := c.do(ctx, http.MethodGet, "/sales/summary/", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) ExportSales(ctx context.Context) (*ExportResponse, error) {
	q := url.Values{"format": []string{"csv"}}
	var resp ExportResponse
	if err := c.do(ctx, http.MethodGet, "/sales/export/", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ---- Settings ----

func (c *Client) GetSettings(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	if err := c.do(ctx, http.MethodGet, "/settings/", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateSettings(ctx context.Context, settings models.Settings) (*models.Settings, error) {
	var s models.Settings
	if err := c.do(ctx, http.MethodPatch, "/settings/", nil, settings, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
