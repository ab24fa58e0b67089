package bootstrap

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/peopledesk/peopledesk"
	"github.com/peopledesk/peopledesk/config"
	"github.com/peopledesk/peopledesk/internal/domain/access"
	httpx "github.com/peopledesk/peopledesk/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	renderer, staticFS := setupPageAssets(appCfg.IsDev, logger)

	services := httpx.RouterServices{
		Employees:      cfg.Services.Employees,
		Leaves:         cfg.Services.Leaves,
		Policy:         access.NewPolicy(access.DefaultCatalog()),
		Renderer:       renderer,
		StaticFS:       staticFS,
		CookieDomain:   appCfg.HTTP.CookieDomain,
		Logger:         logger,
		ResolveTimeout: appCfg.Session.ResolveTimeout,
	}
	// A nil *AuthService stuffed into the interface field would still compare
	// non-nil; leave the field unset when auth is disabled.
	if auth := cfg.Services.Auth; auth != nil {
		services.Auth = auth
	}

	// Order: Recover -> Logging -> Router (browser detection and access
	// control are applied inside the router).
	handler := httpx.NewRouter(services)
	handler = httpx.Logging(logger)(handler)
	handler = httpx.Recover(logger)(handler)

	return startServer(logger, handler, appCfg.HTTP.Addr)
}

// setupPageAssets picks the template and static asset filesystems. In dev
// mode assets load from disk so template edits show up without a rebuild; in
// production they come from the embedded filesystems.
func setupPageAssets(isDev bool, logger *slog.Logger) (*httpx.TemplateRenderer, fs.FS) {
	var templateFS, staticFS fs.FS

	if isDev {
		templateFS = os.DirFS("frontend/templates")
		staticFS = os.DirFS("frontend/static")
	} else {
		var err error
		templateFS, err = fs.Sub(peopledesk.TemplateFS, "frontend/templates")
		if err != nil {
			logger.Error("embedded templates unavailable", "error", err)
			return nil, nil
		}
		staticFS, err = fs.Sub(peopledesk.StaticFS, "frontend/static")
		if err != nil {
			logger.Error("embedded static assets unavailable", "error", err)
			staticFS = nil
		}
	}

	renderer, err := httpx.NewTemplateRenderer(templateFS, logger)
	if err != nil {
		logger.Error("template parsing failed, serving placeholder pages", "error", err)
		return nil, staticFS
	}
	return renderer, staticFS
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Timeout time.Duration
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(cfg.Context, timeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
