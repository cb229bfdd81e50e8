// Package main provides the entry point for the quill CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/output"
)

// refreshFlags holds the command-line flags for the refresh command.
type refreshFlags struct {
	serve   bool
	preview bool
}

// newRefreshCmd creates the refresh command.
func newRefreshCmd() *cobra.Command {
	flags := &refreshFlags{}

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Clean and rebuild the site",
		Long: `Clean the generator's cache and rebuild the site.

Runs the generator's clean and generate steps in order. With --serve the
local server is started after the rebuild; with --preview the browser is
pointed at the site first. Combining both gives the full cycle: rebuild,
open the browser, then serve until interrupted.

Examples:
  quill refresh                      # Clean and rebuild
  quill refresh --serve              # Rebuild, then serve
  quill refresh --preview --serve    # Rebuild, open browser, serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRefresh(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.serve, "serve", false, "Start the local server after rebuilding")
	cmd.Flags().BoolVar(&flags.preview, "preview", false, "Open the preview URL in the browser")

	return cmd
}

// runRefresh executes the refresh command.
func runRefresh(cmd *cobra.Command, flags *refreshFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	cfg, err := config.Load(".")
	if err != nil {
		printer.Error(err)
		return err
	}

	gen := generatorFor(cfg)

	if !printer.IsJSON() {
		printer.Print("Cleaning generated files...\n")
	}
	if err := gen.Clean(cmd.Context()); err != nil {
		printer.Error(err)
		return err
	}

	if !printer.IsJSON() {
		printer.Print("Building site...\n")
	}
	if err := gen.Build(cmd.Context()); err != nil {
		printer.Error(err)
		return err
	}

	if flags.preview {
		tryPreview(cmd, printer, cfg)
	}
	if flags.serve {
		return serveSite(cmd, printer, cfg)
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"status": "ok"})
	}
	printer.Println("Site refreshed")
	return nil
}
