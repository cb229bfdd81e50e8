// Package main provides the entry point for the quill CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/browser"
	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/generator"
	"github.com/quillhq/quill/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// newRunner builds the command runner behind generator and browser
// invocations. Tests swap it to intercept external processes.
var newRunner = func(root string) generator.Runner {
	return &generator.ExecRunner{Dir: root}
}

// generatorFor wraps the configured site generator.
func generatorFor(cfg *config.Config) *generator.Generator {
	return generator.New(cfg.Generator, cfg.Root, newRunner(cfg.Root))
}

// openerFor builds the browser opener.
func openerFor(cfg *config.Config) *browser.Opener {
	return browser.New(newRunner(cfg.Root))
}

// isJSONMode reads the --json persistent flag from the command hierarchy.
// This replaces the former global jsonFlag variable, making commands
// independently testable without shared mutable state.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor combines the --color persistent flag with TTY detection on the
// command's output writer.
func useColor(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("color")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("color")
	}
	mode := "auto"
	if flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the quill CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quill",
		Short: "A drafting workflow for static blog generators",
		Long: `Quill - a drafting workflow that keeps posts out of the publish
directory until they are ready.

Quill wraps a static site generator (Hexo by default) with a draft cycle:
  - Scaffolding new posts with the generator, then parking them in a
    draft folder with their images alongside the text
  - Finalizing finished drafts: rewriting image references, filling in
    front matter, and moving post plus images into the publish location
  - Day-to-day site commands (refresh, server, preview, deploy) that
    call through to the generator

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'quill --help' for usage")
				printer.Error(err)
				return err
			}
			// Otherwise show help
			return cmd.Help()
		},
	}

	// Load .env.local (then .env) for overrides that can't be exported to env.
	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	// Persistent flags available to all subcommands
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	// Define command groups and add commands
	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-workspace override, gitignored)
//  2. $CWD/.env         (per-workspace)
//  3. ~/.config/quill/env (global fallback — set once, works everywhere)
func loadEnvFiles() {
	_ = config.LoadEnvFile(".env.local")
	_ = config.LoadEnvFile(".env")

	if dir := config.Dir(); dir != "" {
		_ = config.LoadEnvFile(filepath.Join(dir, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "authoring", Title: "Authoring Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "site", Title: "Site Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "workspace", Title: "Workspace Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	// Authoring commands: new, finalize
	addGroupedCommand(cmd, newNewCmd(), "authoring")
	addGroupedCommand(cmd, newFinalizeCmd(), "authoring")

	// Site commands: refresh, server, preview, deploy
	addGroupedCommand(cmd, newRefreshCmd(), "site")
	addGroupedCommand(cmd, newServerCmd(), "site")
	addGroupedCommand(cmd, newPreviewCmd(), "site")
	addGroupedCommand(cmd, newDeployCmd(), "site")

	// Workspace commands: init, status, doctor, mcp
	addGroupedCommand(cmd, newInitCmd(), "workspace")
	addGroupedCommand(cmd, newStatusCmd(), "workspace")
	addGroupedCommand(cmd, newDoctorCmd(), "workspace")
	addGroupedCommand(cmd, newMCPCmd(), "workspace")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
