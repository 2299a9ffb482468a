// Package server initializes and runs the REST backend: it opens the
// backing stores, wires the domain services into the router, and handles
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"

	"github.com/olivecrm/olivecrm/internal/logging"
	"github.com/olivecrm/olivecrm/internal/server/barrels"
	"github.com/olivecrm/olivecrm/internal/server/bottles"
	"github.com/olivecrm/olivecrm/internal/server/config"
	"github.com/olivecrm/olivecrm/internal/server/db"
	"github.com/olivecrm/olivecrm/internal/server/exports"
	"github.com/olivecrm/olivecrm/internal/server/httpapi"
	"github.com/olivecrm/olivecrm/internal/server/refreshtokens"
	"github.com/olivecrm/olivecrm/internal/server/sales"
	"github.com/olivecrm/olivecrm/internal/server/settings"
	"github.com/olivecrm/olivecrm/internal/server/users"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger

	conn   *sql.DB
	redis  *goredis.Client
	router *echo.Echo
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewZerologLogger(os.Stdout, cfg.LogLevel, cfg.Env == "development")

	conn, err := db.OpenPostgres(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	redisClient, err := db.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("redis init error: %w", err)
	}

	refreshTokenRepo := refreshtokens.NewRedisRepository(redisClient, "refresh:")
	resetTokenRepo := refreshtokens.NewRedisRepository(redisClient, "pwreset:")

	userService := users.NewService(users.NewPostgresRepository(conn), refreshTokenRepo, resetTokenRepo, cfg, logger)
	barrelService := barrels.NewService(barrels.NewPostgresRepository(conn))
	bottleService := bottles.NewService(bottles.NewPostgresRepository(conn))
	saleService := sales.NewService(sales.NewPostgresRepository(conn))
	settingsService := settings.NewService(settings.NewPostgresRepository(conn))
	exportService := exports.NewService(barrelService, saleService, cfg, logger)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:    logger,
		JWTSecret: []byte(cfg.JWTSecret),
		Users:     userService,
		Barrels:   barrelService,
		Bottles:   bottleService,
		Sales:     saleService,
		Settings:  settingsService,
		Exports:   exportService,
		DB:        conn,
		Redis:     redisClient,
	})

	return &App{
		config: cfg,
		logger: logger,
		conn:   conn,
		redis:  redisClient,
		router: router,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting server", "addr", app.config.Addr, "env", app.config.Env)
		if err := app.router.Start(app.config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.router.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "server shutdown error", "err", err)
	}
	if err := app.redis.Close(); err != nil {
		app.logger.Error(shutdownCtx, "redis close error", "err", err)
	}
	if err := app.conn.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "err", err)
	}

	return nil
}
