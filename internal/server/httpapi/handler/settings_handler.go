package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olivecrm/olivecrm/internal/server/settings"
)

// maxSettingsBody bounds the settings payload size.
const maxSettingsBody = 64 * 1024

type SettingsHandler struct {
	settings *settings.Service
}

func NewSettingsHandler(settingsService *settings.Service) *SettingsHandler {
	return &SettingsHandler{settings: settingsService}
}

func (h *SettingsHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	data, err := h.settings.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, data)
}

func (h *SettingsHandler) Patch(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxSettingsBody))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	data, err := h.settings.Patch(c.Request().Context(), userID, json.RawMessage(body))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, data)
}
