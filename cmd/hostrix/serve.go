package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/splax/hostrix/internal/app"
	"github.com/splax/hostrix/pkg/config"
	"github.com/splax/hostrix/pkg/logger"
)

type serveOptions struct {
	addr     string
	projects string
	logLevel string
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides DASHBOARD_ADDR)")
	cmd.Flags().StringVar(&opts.projects, "projects", "", "mock projects YAML file (overrides HOSTRIX_MOCK_PROJECTS)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	return cmd
}

func (o *serveOptions) apply(cfg *config.DashboardConfig) {
	if o.addr != "" {
		cfg.Addr = o.addr
	}
	if o.projects != "" {
		cfg.MockProjectsPath = o.projects
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg := config.LoadDashboardConfig()
	opts.apply(&cfg)
	log := logger.New("dashboard", logger.ParseLevel(cfg.LogLevel))

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dashboard: %w", err)
	}
	return application.Run(ctx)
}
