// Package main provides the entry point for the quill CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/output"
)

// newPreviewCmd creates the preview command.
func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Open the site in the default browser",
		Long: `Open the preview URL in the default browser.

The URL defaults to http://localhost:<server_port>/ and can be overridden
with preview_url in quill.yaml. The server is not started; combine with
'quill server --preview' or 'quill refresh --serve --preview' for that.

Examples:
  quill preview   # Open the preview URL`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd)
		},
	}
}

// runPreview executes the preview command.
func runPreview(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	cfg, err := config.Load(".")
	if err != nil {
		printer.Error(err)
		return err
	}

	if !printer.IsJSON() {
		printer.Print("Opening %s\n", cfg.PreviewAddr())
	}
	if err := openerFor(cfg).Open(cmd.Context(), cfg.PreviewAddr()); err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"status": "ok", "url": cfg.PreviewAddr()})
	}
	return nil
}

// tryPreview opens the preview URL but downgrades failure to a warning,
// so a missing URL handler does not stop a server run.
func tryPreview(cmd *cobra.Command, printer *output.Printer, cfg *config.Config) {
	if !printer.IsJSON() {
		printer.Print("Opening %s\n", cfg.PreviewAddr())
	}
	if err := openerFor(cfg).Open(cmd.Context(), cfg.PreviewAddr()); err != nil {
		printer.Warn("could not open browser: %s", err)
	}
}
