package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/brochure"
	"github.com/jpalmerr/brochure/config"
)

// newValidateCmd validates a config file without starting the server.
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a config file and, optionally, the site",
		Long: `Validate a brochure configuration without starting the server.

This command parses the YAML, expands environment variables, and validates
all fields. With --check-site it also loads the templates and both error
pages, exactly as serve would. It's useful for CI/CD pipelines or
pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  brochure validate -c brochure.yaml
  brochure validate -c brochure.yaml --check-site`,
		RunE: runValidate,
	}
	addConfigFlags(cmd)
	cmd.Flags().Bool("check-site", false, "also load templates and error pages")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Listen:        %s:%d\n", cfg.ListenIP, cfg.ListenPort)
	fmt.Fprintf(out, "  Layout:        %s\n", cfg.Layout)
	fmt.Fprintf(out, "  Pages:         %d\n", len(cfg.Pages))
	fmt.Fprintf(out, "  Asset errors:  %s\n", cfg.AssetErrors)

	if check, _ := cmd.Flags().GetBool("check-site"); check {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		b, err := brochure.New(config.BuildOptions(cfg, logger)...)
		if err != nil {
			return fmt.Errorf("invalid site: %w", err)
		}
		fmt.Fprintf(out, "Site is valid!\n")
		fmt.Fprintf(out, "  Content dir:   %s\n", b.ContentDir())
	}

	return nil
}
