package httpapi

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/olivecrm/olivecrm/internal/logging"
	"github.com/olivecrm/olivecrm/internal/server/barrels"
	"github.com/olivecrm/olivecrm/internal/server/bottles"
	"github.com/olivecrm/olivecrm/internal/server/exports"
	"github.com/olivecrm/olivecrm/internal/server/httpapi/handler"
	"github.com/olivecrm/olivecrm/internal/server/httpapi/metrics"
	"github.com/olivecrm/olivecrm/internal/server/httpapi/middleware"
	"github.com/olivecrm/olivecrm/internal/server/models"
	"github.com/olivecrm/olivecrm/internal/server/sales"
	"github.com/olivecrm/olivecrm/internal/server/settings"
	"github.com/olivecrm/olivecrm/internal/server/users"
)

// Deps carries everything the router wires together.
type Deps struct {
	Logger    logging.Logger
	JWTSecret []byte

	Users    *users.Service
	Barrels  *barrels.Service
	Bottles  *bottles.Service
	Sales    *sales.Service
	Settings *settings.Service
	Exports  *exports.Service

	DB    *sql.DB
	Redis *redis.Client
}

// NewRouter builds the Echo instance with all routes registered. Paths keep
// their trailing slash.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(instrument)

	authHandler := handler.NewAuthHandler(deps.Users)
	barrelHandler := handler.NewBarrelHandler(deps.Barrels)
	bottleHandler := handler.NewBottleHandler(deps.Bottles)
	saleHandler := handler.NewSaleHandler(deps.Sales)
	settingsHandler := handler.NewSettingsHandler(deps.Settings)
	exportHandler := handler.NewExportHandler(deps.Exports)
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Public auth endpoints.
	e.POST("/auth/login/", authHandler.Login)
	e.POST("/auth/register/", authHandler.Register)
	e.POST("/auth/refresh/", authHandler.Refresh)
	e.POST("/auth/logout/", authHandler.Logout)
	e.POST("/auth/password-reset/", authHandler.RequestPasswordReset)
	e.POST("/auth/password-reset-confirm/", authHandler.ConfirmPasswordReset)

	authMW := middleware.Auth(deps.JWTSecret)
	writers := middleware.RBAC(models.RoleManager, models.RoleUser)

	protected := e.Group("", authMW)

	protected.GET("/auth/profile/", authHandler.Profile)
	protected.PATCH("/auth/profile/", authHandler.UpdateProfile)
	protected.POST("/auth/change-password/", authHandler.ChangePassword)

	protected.GET("/barrels/", barrelHandler.List)
	protected.GET("/barrels/statistics/", barrelHandler.Statistics)
	protected.GET("/barrels/export/", exportHandler.Barrels)
	protected.GET("/barrels/:id/", barrelHandler.Get)
	protected.POST("/barrels/", barrelHandler.Create, writers)
	protected.PUT("/barrels/:id/", barrelHandler.Update, writers)
	protected.DELETE("/barrels/:id/", barrelHandler.Delete, writers)

	protected.GET("/bottles/", bottleHandler.List)
	protected.GET("/bottles/:id/", bottleHandler.Get)
	protected.POST("/bottles/", bottleHandler.Create, writers)
	protected.PUT("/bottles/:id/", bottleHandler.Update, writers)
	protected.DELETE("/bottles/:id/", bottleHandler.Delete, writers)

	protected.GET("/sales/", saleHandler.List)
	protected.GET("/sales/summary/", saleHandler.Summary)
	protected.GET("/sales/export/", exportHandler.Sales)
	protected.GET("/sales/:id/", saleHandler.Get)
	protected.POST("/sales/", saleHandler.Create, writers)
	protected.PATCH("/sales/:id/", saleHandler.Patch, writers)
	protected.DELETE("/sales/:id/", saleHandler.Delete, writers)

	protected.GET("/settings/", settingsHandler.Get)
	protected.PATCH("/settings/", settingsHandler.Patch)

	return e
}

// instrument records per-route request counts and latency.
func instrument(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		path := c.Path()
		if path == "" {
			path = "unknown"
		}
		metrics.RequestsTotal.WithLabelValues(
			c.Request().Method, path, strconv.Itoa(c.Response().Status)).Inc()
		metrics.RequestDuration.WithLabelValues(
			c.Request().Method, path).Observe(time.Since(start).Seconds())
		return nil
	}
}
