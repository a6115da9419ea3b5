package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/brochure/skeleton"
)

// newInitCmd writes the starter site.
func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter site",
		Long: `Write a starter content directory: a layout, a home page, both error
pages and a stylesheet and script under static/assets.

Existing files are not overwritten unless --force is given.

Example:
  brochure init ./site`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
	cmd.Flags().Bool("force", false, "overwrite existing files")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	written, err := skeleton.WriteTo(dir, force)
	if err != nil {
		return fmt.Errorf("failed to write site: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, p := range written {
		fmt.Fprintf(out, "  created %s\n", p)
	}
	fmt.Fprintf(out, "Site written to %s\n", dir)
	return nil
}
