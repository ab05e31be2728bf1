// Package app wires configuration, logging and the HTTP router into a
// runnable dashboard server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/splax/hostrix/internal/catalog"
	httpx "github.com/splax/hostrix/internal/http"
	"github.com/splax/hostrix/pkg/config"
)

// App is a configured dashboard server.
type App struct {
	cfg    config.DashboardConfig
	log    *slog.Logger
	router *httpx.Router
	srv    *http.Server
}

// New loads the mock catalog, picks a rate limiter and builds the router.
func New(ctx context.Context, cfg config.DashboardConfig, log *slog.Logger) (*App, error) {
	projects, err := catalog.Load(cfg.MockProjectsPath, time.Now())
	if err != nil {
		return nil, fmt.Errorf("load mock projects: %w", err)
	}
	log.Info("mock projects loaded", "count", projects.Len(), "path", cfg.MockProjectsPath)

	limiter := httpx.NewMemoryRateLimiter()
	if addr := cfg.RateLimitRedisAddr; addr != "" {
		redisLimiter, err := httpx.NewRedisRateLimiter(ctx, addr, cfg.RateLimitRedisPass, cfg.RateLimitRedisDB, log)
		if err != nil {
			log.Warn("redis rate limiter unavailable", "error", err)
		} else {
			limiter.Close()
			limiter = redisLimiter
		}
	}

	router, err := httpx.NewRouter(log, projects, limiter, httpx.Options{
		FormRateLimit:  cfg.FormRateLimit,
		FormRateWindow: cfg.FormRateWindow,
	})
	if err != nil {
		limiter.Close()
		return nil, fmt.Errorf("build router: %w", err)
	}
	return &App{
		cfg:    cfg,
		log:    log,
		router: router,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
	}, nil
}

// Router exposes the handler, mainly for the route listing.
func (a *App) Router() *httpx.Router {
	return a.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.cfg.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	defer a.router.Close()

	errorCh := make(chan error, 1)
	go func() {
		a.log.Info("dashboard server starting", "addr", ln.Addr().String(), "env", a.cfg.Environment)
		errorCh <- a.srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.srv.Shutdown(shutdownCtx); err != nil {
			a.log.Error("graceful shutdown failed", "error", err)
			return err
		}
		a.log.Info("dashboard server stopped")
		return nil
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
