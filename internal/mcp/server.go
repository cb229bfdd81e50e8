// Package mcp provides a Model Context Protocol server for quill.
// It exposes the drafting workflow as MCP tools that any MCP-capable
// agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/draft"
	"github.com/quillhq/quill/internal/publish"
)

// NewServer creates an MCP server with all quill tools registered.
func NewServer(version string, cfg *config.Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "quill",
		Version: version,
	}, nil)
	registerTools(server, cfg)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that write to the workspace.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all quill tools to the server.
func registerTools(server *mcp.Server, cfg *config.Config) {
	store := draft.New(cfg, nil)
	finalizer := publish.New(cfg, store)

	mcp.AddTool(server, &mcp.Tool{
		Name: "draft_new",
		Description: "Create draft posts from titles. Scaffolds each post with the " +
			"site generator, moves it into the draft location, and fills in its " +
			"front matter (title, date, cover, draft flag).",
		Annotations: writeAnnotations(),
	}, handleDraftNew(store))

	mcp.AddTool(server, &mcp.Tool{
		Name: "draft_finalize",
		Description: "Finalize every completed draft: rewrite image references, drop " +
			"top-level headings, expand link cards, clear the draft flag, and move " +
			"the post with its images into the publish location.",
		Annotations: writeAnnotations(),
	}, handleDraftFinalize(finalizer))

	mcp.AddTool(server, &mcp.Tool{
		Name: "blog_status",
		Description: "Show workspace state: root directory, generator, draft and " +
			"published post counts, and the list of draft names.",
		Annotations: readOnlyAnnotations(),
	}, handleBlogStatus(cfg, store))
}
