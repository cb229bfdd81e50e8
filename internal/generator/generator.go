package generator

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/quillhq/quill/internal/output"
)

// Generator invokes the external site generator with a Hexo-compatible
// argument layout. The binary name comes from configuration, so any
// generator that answers to the same subcommands works.
type Generator struct {
	binary string
	runner Runner
}

// New creates a Generator that runs binary from the workspace root.
// If runner is nil, commands execute for real via ExecRunner.
func New(binary, root string, runner Runner) *Generator {
	if runner == nil {
		runner = &ExecRunner{Dir: root}
	}
	return &Generator{binary: binary, runner: runner}
}

// Binary returns the configured generator executable name.
func (g *Generator) Binary() string {
	return g.binary
}

// NewPost asks the generator to scaffold a post named slug in the publish
// directory. Output is captured; failures surface the generator's stderr.
func (g *Generator) NewPost(ctx context.Context, slug string) error {
	res, err := g.runner.Run(ctx, g.binary, "new", "post", slug)
	if err != nil {
		return g.startError(err)
	}
	if res.ExitCode != 0 {
		return g.exitError("new post", res.ExitCode, res.Stderr)
	}
	return nil
}

// Clean removes the generator's build artifacts and cache.
func (g *Generator) Clean(ctx context.Context) error {
	return g.attached(ctx, "clean")
}

// Build regenerates the site.
func (g *Generator) Build(ctx context.Context) error {
	return g.attached(ctx, "generate")
}

// Serve starts the generator's local server and blocks until it exits.
func (g *Generator) Serve(ctx context.Context) error {
	return g.attached(ctx, "server")
}

// Deploy publishes the generated site.
func (g *Generator) Deploy(ctx context.Context) error {
	return g.attached(ctx, "deploy")
}

// Version returns the first line of the generator's version output.
func (g *Generator) Version(ctx context.Context) (string, error) {
	res, err := g.runner.Run(ctx, g.binary, "version")
	if err != nil {
		return "", g.startError(err)
	}
	if res.ExitCode != 0 {
		return "", g.exitError("version", res.ExitCode, res.Stderr)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(res.Stdout), "\n")
	return strings.TrimSpace(line), nil
}

// attached runs a generator subcommand with inherited stdio.
func (g *Generator) attached(ctx context.Context, sub string) error {
	code, err := g.runner.RunAttached(ctx, g.binary, sub)
	if err != nil {
		return g.startError(err)
	}
	if code != 0 {
		return g.exitError(sub, code, "")
	}
	return nil
}

// startError classifies failures to launch the generator at all.
func (g *Generator) startError(err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return output.NewExternalToolError(g.binary + " not found: ensure the site generator is installed and in PATH")
	}
	return output.NewExternalToolError("failed to run " + g.binary + ": " + err.Error())
}

// exitError reports a subcommand that ran and exited non-zero. The child's
// exit status becomes the CLI exit code.
func (g *Generator) exitError(sub string, code int, stderr string) error {
	msg := fmt.Sprintf("%s %s exited with status %d", g.binary, sub, code)
	if detail := strings.TrimSpace(stderr); detail != "" {
		msg += ": " + detail
	}
	return output.NewExternalToolExitError(msg, code)
}
