package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/brochure"
	"github.com/jpalmerr/brochure/config"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newServeCmd starts the brochure server.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Start the brochure web server.

The server will:
  - Load configuration from the YAML file, if one is given
  - Load templates and both error pages, exiting if any is missing
  - Serve pages and assets on the configured address

The server runs until interrupted (Ctrl+C) or receives SIGTERM. SIGHUP
reloads templates and error pages without dropping connections.

Example:
  brochure serve
  brochure serve -c brochure.yaml
  brochure serve --content-dir ./site --listen-port 8080`,
		RunE: runServe,
	}
	addConfigFlags(cmd)
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(os.Stderr, cfg)
	logger.Info("config loaded",
		"pages", len(cfg.Pages),
		"asset_errors", cfg.AssetErrors,
		"metrics", cfg.Metrics,
	)

	// templates and error pages are loaded here; nothing is bound yet
	b, err := brochure.New(config.BuildOptions(cfg, logger)...)
	if err != nil {
		return fmt.Errorf("failed to create brochure: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-hup:
				// Reload logs its own outcome
				_ = b.Reload()
			case <-ctx.Done():
				return
			}
		}
	}()

	// start server - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- b.Start(ctx)
	}()

	// wait for server to finish
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
