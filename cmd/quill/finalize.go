// Package main provides the entry point for the quill CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/output"
	"github.com/quillhq/quill/internal/publish"
)

// newFinalizeCmd creates the finalize command.
func newFinalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finalize",
		Short: "Move finished drafts into the publish location",
		Long: `Finalize every draft in the draft location.

For each draft, quill rewrites the body for publication (strips the
draft image path prefix, removes top-level headings, expands link-card
comments), clears the draft flag, normalizes the date, then moves the
post and its images into the publish location. The draft folder is
removed once the move succeeds.

Drafts that cannot be finalized (malformed front matter, unparseable
date) are skipped with a reason and left untouched; the rest still go
out. Re-running after fixing them picks up where it left off.

Examples:
  quill finalize          # Finalize all drafts
  quill finalize --json   # Output the report as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFinalize(cmd)
		},
	}
}

// runFinalize executes the finalize command.
func runFinalize(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	cfg, err := config.Load(".")
	if err != nil {
		printer.Error(err)
		return err
	}

	finalizer := publish.New(cfg, nil)
	report, err := finalizer.Run(cmd.Context())
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"count":     report.Count(),
			"finalized": report.Finalized,
			"skipped":   report.Skipped,
		})
	}

	for _, f := range report.Finalized {
		printer.Print("Finalized %s\n  %s\n", f.Name, f.Path)
	}
	for _, s := range report.Skipped {
		printer.Warn("skipped %s: %s", s.Name, s.Reason)
	}

	switch report.Count() {
	case 0:
		printer.Println("No drafts to finalize")
	case 1:
		printer.Println("1 post finalized")
	default:
		printer.Print("%d posts finalized\n", report.Count())
	}
	return nil
}
