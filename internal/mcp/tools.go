package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/draft"
	"github.com/quillhq/quill/internal/publish"
)

// --- draft_new tool ---

// DraftSummary is a created draft for output.
type DraftSummary struct {
	Title   string `json:"title"             jsonschema:"the title as given"`
	Slug    string `json:"slug"              jsonschema:"slugified name used for the directory and file"`
	Path    string `json:"path"              jsonschema:"path to the draft markdown file"`
	Warning string `json:"warning,omitempty" jsonschema:"non-fatal warning message"`
}

// NewInput is the input for the draft_new tool.
type NewInput struct {
	Titles []string `json:"titles" jsonschema:"post titles to create drafts for (required)"`
}

// NewOutput is the output for the draft_new tool.
type NewOutput struct {
	Drafts []DraftSummary `json:"drafts" jsonschema:"created drafts"`
}

func handleDraftNew(store *draft.Store) mcp.ToolHandlerFor[NewInput, NewOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input NewInput) (*mcp.CallToolResult, NewOutput, error) {
		if len(input.Titles) == 0 {
			return nil, NewOutput{}, errors.New("at least one title is required")
		}

		created, err := store.Create(ctx, input.Titles)
		if err != nil {
			if len(created) > 0 {
				return nil, NewOutput{}, fmt.Errorf(
					"created %d of %d drafts before failing: %w",
					len(created), len(input.Titles), err)
			}
			return nil, NewOutput{}, fmt.Errorf("creating drafts: %w", err)
		}

		return nil, NewOutput{Drafts: toDraftSummaries(created)}, nil
	}
}

// --- draft_finalize tool ---

// FinalizeInput is the input for the draft_finalize tool (no parameters needed).
type FinalizeInput struct{}

// FinalizeOutput is the output for the draft_finalize tool.
type FinalizeOutput struct {
	Count     int                 `json:"count"               jsonschema:"number of drafts finalized"`
	Finalized []publish.Finalized `json:"finalized,omitempty" jsonschema:"posts moved into the publish location"`
	Skipped   []publish.Skipped   `json:"skipped,omitempty"   jsonschema:"drafts left in place, with reasons"`
}

func handleDraftFinalize(finalizer *publish.Finalizer) mcp.ToolHandlerFor[FinalizeInput, FinalizeOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ FinalizeInput) (*mcp.CallToolResult, FinalizeOutput, error) {
		report, err := finalizer.Run(ctx)
		if err != nil {
			return nil, FinalizeOutput{}, fmt.Errorf("finalizing drafts: %w", err)
		}

		return nil, FinalizeOutput{
			Count:     report.Count(),
			Finalized: report.Finalized,
			Skipped:   report.Skipped,
		}, nil
	}
}

// --- blog_status tool ---

// StatusInput is the input for the blog_status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the blog_status tool.
type StatusOutput struct {
	Root       string   `json:"root"                jsonschema:"workspace root directory"`
	Generator  string   `json:"generator"           jsonschema:"site generator command"`
	DraftDir   string   `json:"draft_dir"           jsonschema:"path to the draft location"`
	PostDir    string   `json:"post_dir"            jsonschema:"path to the publish location"`
	DraftCount int      `json:"draft_count"         jsonschema:"number of drafts in progress"`
	PostCount  int      `json:"post_count"          jsonschema:"number of published posts"`
	Drafts     []string `json:"drafts,omitempty"    jsonschema:"draft names"`
	Malformed  []string `json:"malformed,omitempty" jsonschema:"draft directories missing their markdown file"`
}

func handleBlogStatus(cfg *config.Config, store *draft.Store) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		entries, malformed, err := store.ListWithMalformed()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("listing drafts: %w", err)
		}

		postCount, err := countPosts(cfg.PostsPath())
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("counting posts: %w", err)
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name)
		}

		out := StatusOutput{
			Root:       cfg.Root,
			Generator:  cfg.Generator,
			DraftDir:   cfg.DraftsPath(),
			PostDir:    cfg.PostsPath(),
			DraftCount: len(entries),
			PostCount:  postCount,
			Drafts:     names,
			Malformed:  malformed,
		}

		return nil, out, nil
	}
}

// --- Helpers ---

// toDraftSummaries converts store results to DraftSummary slice.
func toDraftSummaries(created []draft.Created) []DraftSummary {
	result := make([]DraftSummary, 0, len(created))
	for _, c := range created {
		result = append(result, DraftSummary{
			Title:   c.Title,
			Slug:    c.Slug,
			Path:    c.Path,
			Warning: c.Warning,
		})
	}
	return result
}

// countPosts counts markdown files at the top level of the publish location.
func countPosts(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			count++
		}
	}
	return count, nil
}
