package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/brochure"
	"github.com/jpalmerr/brochure/config"
)

// newRoutesCmd lists the routes the server would register.
func newRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List registered routes",
		Long: `Load the configuration and site and print every route the server
registers, one per line.

Example:
  brochure routes -c brochure.yaml`,
		RunE: runRoutes,
	}
	addConfigFlags(cmd)
	return cmd
}

func runRoutes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b, err := brochure.New(config.BuildOptions(cfg, logger)...)
	if err != nil {
		return fmt.Errorf("failed to create brochure: %w", err)
	}

	routes, err := b.Routes()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, r := range routes {
		fmt.Fprintf(tw, "%s\t%s\n", r.Method, r.Pattern)
	}
	return tw.Flush()
}
