// Package main provides the entry point for the quill CLI.
package main

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/draft"
	"github.com/quillhq/quill/internal/output"
)

// statusResult holds the data for status output.
type statusResult struct {
	Root       string   `json:"root"`
	Generator  string   `json:"generator"`
	ConfigFile bool     `json:"config_file"`
	DraftDir   string   `json:"draft_dir"`
	DraftCount int      `json:"draft_count"`
	PostCount  int      `json:"post_count"`
	Drafts     []string `json:"drafts,omitempty"`
	Malformed  []string `json:"malformed,omitempty"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	var verboseFlag bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show workspace and content state",
		Long: `Show the current state of the blog workspace.

Displays the workspace root, the configured generator, and how many
drafts and published posts exist. Draft folders missing their markdown
file are reported so they can be cleaned up.

Examples:
  quill status            # Show human-readable status
  quill status --verbose  # Also list draft names
  quill status --json     # Output status as JSON for scripting`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, verboseFlag)
		},
	}
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "List draft names")
	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, verbose bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	cfg, err := config.Load(".")
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := gatherStatus(cfg)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		data := map[string]any{
			"root":        result.Root,
			"generator":   result.Generator,
			"config_file": result.ConfigFile,
			"draft_dir":   result.DraftDir,
			"draft_count": result.DraftCount,
			"post_count":  result.PostCount,
		}
		if verbose {
			data["drafts"] = result.Drafts
		}
		if len(result.Malformed) > 0 {
			data["malformed"] = result.Malformed
		}
		// Add suggested commands based on state
		if result.DraftCount > 0 {
			data["suggested_commands"] = []string{"quill finalize"}
		} else {
			data["suggested_commands"] = []string{"quill new <title>"}
		}
		return printer.Success(data)
	}

	printHumanStatus(printer, result, verbose)
	return nil
}

// gatherStatus collects all status information.
func gatherStatus(cfg *config.Config) (*statusResult, error) {
	store := draft.New(cfg, nil)
	entries, malformed, err := store.ListWithMalformed()
	if err != nil {
		return nil, err
	}

	postCount, err := countPosts(cfg.PostsPath())
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}

	_, statErr := os.Stat(filepath.Join(cfg.Root, config.FileName))

	return &statusResult{
		Root:       cfg.Root,
		Generator:  cfg.Generator,
		ConfigFile: statErr == nil,
		DraftDir:   cfg.DraftsPath(),
		DraftCount: len(entries),
		PostCount:  postCount,
		Drafts:     names,
		Malformed:  malformed,
	}, nil
}

// countPosts counts markdown files at the top level of the publish location.
func countPosts(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, output.NewFilesystemErrorWithCause("failed to read "+dir, err)
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			count++
		}
	}
	return count, nil
}

// printHumanStatus outputs status in human-readable format.
func printHumanStatus(printer *output.Printer, status *statusResult, verbose bool) {
	printer.Section("Workspace")
	printer.KeyValue("Root", status.Root)
	printer.KeyValue("Generator", status.Generator)
	printer.KeyValue("Config", formatConfigSource(status.ConfigFile))

	printer.Section("Content")
	printer.KeyValue("Drafts", strconv.Itoa(status.DraftCount))
	if verbose {
		for _, name := range status.Drafts {
			printer.Print("  %s\n", name)
		}
	}
	printer.KeyValue("Posts", strconv.Itoa(status.PostCount))

	for _, name := range status.Malformed {
		printer.Warn("draft folder %s has no %s.md", name, name)
	}
}

// formatConfigSource names where the configuration came from.
func formatConfigSource(fromFile bool) string {
	if fromFile {
		return config.FileName
	}
	return "built-in defaults"
}
