// Package main is the entry point for the brochure CLI.
//
// brochure can be run either as a library (SDK) or as a standalone binary
// with an optional YAML configuration. This CLI provides the standalone
// binary approach.
//
// Usage:
//
//	brochure init ./site                   # Write a starter site
//	brochure serve -c brochure.yaml        # Start the server
//	brochure validate -c brochure.yaml     # Validate configuration
//	brochure routes                        # List registered routes
//	brochure version                       # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// newRootCmd builds the command tree. The root command just displays help;
// actual functionality is in subcommands.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "brochure",
		Short: "A minimal templated web server",
		Long: `brochure serves templated HTML pages and static assets from a
content directory.

Quick start:
  1. Write a starter site: brochure init ./site
  2. Run: brochure serve --content-dir ./site
  3. Open http://127.0.0.1:4000 in your browser

Content directory layout:
  templates/layouts/application.html   layout wrapping every page
  templates/index.html                 the home page
  static/not_found.html                404 page
  static/server_error.html             500 page
  static/assets/                       served at /assets/`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newValidateCmd(),
		newRoutesCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
	return root
}

// newVersionCmd prints version information.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of this brochure binary.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "brochure %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}
