package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olivecrm/olivecrm/internal/server/httpapi/middleware"
)

// ctxUserID extracts the identity injected by the Auth middleware. A missing
// id means a route was registered without the middleware; reject with 401.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
