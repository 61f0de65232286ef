package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/cmsadmin/internal/admin/web"
	"github.com/aussiebroadwan/cmsadmin/internal/admin/worker"
	"github.com/aussiebroadwan/cmsadmin/pkg/slogx"
	"github.com/aussiebroadwan/cmsadmin/pkg/theme"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// NewLogger builds the process logger from cfg. The CLI passes stderr so
// command output stays pipeable.
func NewLogger(cfg Config, service string, out io.Writer) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: service,
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  out,
	})
}

// Application is the admin web server with its background workers.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	clients *Clients
	theme   theme.Theme

	// Services
	inventorySync *worker.InventorySyncService // nil when disabled

	// HTTP server
	server *http.Server
	router *web.Router
}

// New opens the session store and builds the clients and server.
func New(cfg Config) (*Application, error) {
	logger := NewLogger(cfg, "cmsadmin-server", os.Stdout)

	clients, err := NewClients(context.Background(), cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	return NewWithClients(cfg, clients, logger), nil
}

// NewWithClients builds the server around existing clients. The
// application takes ownership of clients and closes them on Shutdown.
func NewWithClients(cfg Config, clients *Clients, logger *slog.Logger) *Application {
	app := &Application{
		cfg:     cfg,
		logger:  logger,
		clients: clients,
		theme:   theme.Generate(cfg.ThemeSeed, cfg.ThemeName),
	}

	app.initServices()
	app.initHTTP()

	return app
}

// Handler exposes the router, mostly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.inventorySync != nil {
		app.inventorySync.Start()
	}

	app.logger.Info("admin server starting",
		"addr", app.cfg.ServeAddr,
		"version", BuildVersion,
		"cms_api", app.clients.Endpoints.CMSAPIURL,
		"platform_api", app.clients.Endpoints.PlatformAPIURL,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.stopWorkers()
			if cerr := app.clients.Close(); cerr != nil {
				app.logger.Error("error closing session store", "error", cerr)
			}
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down admin server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.stopWorkers()

	if err := app.clients.Close(); err != nil {
		app.logger.Error("error closing session store", "error", err)
		return err
	}

	app.logger.Info("admin server stopped")
	return nil
}

func (app *Application) stopWorkers() {
	if app.inventorySync != nil {
		app.inventorySync.Stop()
		app.inventorySync = nil
	}
}

// initServices wires the background workers.
func (app *Application) initServices() {
	if app.cfg.SyncInterval <= 0 {
		app.logger.Info("inventory sync disabled")
		return
	}

	app.inventorySync = worker.NewInventorySyncService(
		app.clients.Platform,
		app.clients.HasSession,
		app.logger,
		app.cfg.SyncInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := web.NewRouter(BuildVersion, app.clients.Endpoints, app.theme, app.logger)

	router.Store = app.clients.Store
	router.CMS = app.clients.CMS
	router.Platform = app.clients.Platform
	router.Metrics = app.clients.Observer.Handler()
	if app.inventorySync != nil {
		router.InventoryStatus = app.inventorySync.Status
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              app.cfg.ServeAddr,
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
