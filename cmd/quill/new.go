// Package main provides the entry point for the quill CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/draft"
	"github.com/quillhq/quill/internal/output"
)

// newNewCmd creates the new command.
func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <title>...",
		Short: "Create draft posts from titles",
		Long: `Create one draft per title.

Each title is slugified, scaffolded with the site generator, and moved
into its own folder under the draft location. The front matter is filled
in with the pretty title, a cover path derived from the post date, and
the draft flag. Images for the post go next to it, in the draft's image
subdirectory.

Titles are processed in order and the command stops at the first
failure, so a bad title never half-creates the ones after it.

Examples:
  quill new "Hello World"                 # Create a single draft
  quill new "First Post" "Second Post"    # Create several at once
  quill new "Hello World" --json          # Output results as JSON`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args)
		},
	}
}

// runNew executes the new command. Created paths go to stdout; warnings
// and errors go to stderr so the paths stay pipeable.
func runNew(cmd *cobra.Command, titles []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	cfg, err := config.Load(".")
	if err != nil {
		printer.Error(err)
		return err
	}

	store := draft.New(cfg, generatorFor(cfg))
	created, createErr := store.Create(cmd.Context(), titles)

	if printer.IsJSON() {
		if createErr != nil {
			printer.Error(createErr)
			return createErr
		}
		return printer.Success(map[string]any{
			"count":  len(created),
			"drafts": draftsJSON(created),
		})
	}

	// Report what landed before any failure, then the failure itself.
	for _, c := range created {
		printer.Print("Created draft %s\n  %s\n", c.Slug, c.Path)
		if c.Warning != "" {
			printer.Warn("%s: %s", c.Slug, c.Warning)
		}
	}
	if createErr != nil {
		printer.Error(createErr)
		return createErr
	}
	return nil
}

// draftsJSON converts created drafts for JSON output.
func draftsJSON(created []draft.Created) []map[string]any {
	result := make([]map[string]any, 0, len(created))
	for _, c := range created {
		d := map[string]any{
			"title": c.Title,
			"slug":  c.Slug,
			"path":  c.Path,
		}
		if c.Warning != "" {
			d["warning"] = c.Warning
		}
		result = append(result, d)
	}
	return result
}
