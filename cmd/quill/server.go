// Package main provides the entry point for the quill CLI.
package main

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/output"
)

// newServerCmd creates the server command.
func newServerCmd() *cobra.Command {
	var previewFlag bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve the site locally",
		Long: `Start the generator's local server.

The command refuses to start when the configured port is already in use,
so a forgotten server in another terminal fails fast instead of dying
halfway through startup. With --preview the browser is pointed at the
site before the server takes over the terminal.

The server runs until interrupted.

Examples:
  quill server             # Serve on the configured port
  quill server --preview   # Open the browser first, then serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, previewFlag)
		},
	}

	cmd.Flags().BoolVar(&previewFlag, "preview", false, "Open the preview URL in the browser")

	return cmd
}

// runServer executes the server command.
func runServer(cmd *cobra.Command, preview bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	cfg, err := config.Load(".")
	if err != nil {
		printer.Error(err)
		return err
	}

	if preview {
		tryPreview(cmd, printer, cfg)
	}
	return serveSite(cmd, printer, cfg)
}

// serveSite runs the generator's server in the foreground. Shared by
// server and refresh --serve.
func serveSite(cmd *cobra.Command, printer *output.Printer, cfg *config.Config) error {
	if portBusy(cfg.ServerPort) {
		err := output.NewUserError(fmt.Sprintf(
			"port %d is already in use, is another server running?", cfg.ServerPort))
		printer.Error(err)
		return err
	}

	if !printer.IsJSON() {
		printer.Print("Serving site on %s (Ctrl-C to stop)\n", cfg.PreviewAddr())
	}
	if err := generatorFor(cfg).Serve(cmd.Context()); err != nil {
		printer.Error(err)
		return err
	}
	return nil
}

// portBusy reports whether something already listens on the port.
func portBusy(port int) bool {
	addr := net.JoinHostPort("localhost", strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
