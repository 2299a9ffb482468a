package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olivecrm/olivecrm/internal/server/exports"
	"github.com/olivecrm/olivecrm/internal/server/httpapi/metrics"
)

type ExportHandler struct {
	exports *exports.Service
}

func NewExportHandler(exportService *exports.Service) *ExportHandler {
	return &ExportHandler{exports: exportService}
}

// Only CSV is produced; the format query param exists for forward
// compatibility and rejects anything else.
func checkFormat(c echo.Context) error {
	if f := c.QueryParam("format"); f != "" && f != "csv" {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported export format")
	}
	return nil
}

func (h *ExportHandler) Barrels(c echo.Context) error {
	if err := checkFormat(c); err != nil {
		return err
	}
	result, err := h.exports.ExportBarrels(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.ExportsTotal.WithLabelValues("barrels").Inc()
	return c.JSON(http.StatusOK, result)
}

func (h *ExportHandler) Sales(c echo.Context) error {
	if err := checkFormat(c); err != nil {
		return err
	}
	result, err := h.exports.ExportSales(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.ExportsTotal.WithLabelValues("sales").Inc()
	return c.JSON(http.StatusOK, result)
}
