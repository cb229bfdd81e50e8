// Package browser opens URLs in the user's default browser.
package browser

import (
	"context"
	"fmt"
	"runtime"

	"github.com/quillhq/quill/internal/generator"
	"github.com/quillhq/quill/internal/output"
)

// Opener launches the platform's URL handler through a command Runner, so
// tests can intercept the call.
type Opener struct {
	runner generator.Runner
	goos   string
}

// New creates an Opener. If runner is nil, commands execute for real.
func New(runner generator.Runner) *Opener {
	if runner == nil {
		runner = &generator.ExecRunner{}
	}
	return &Opener{runner: runner, goos: runtime.GOOS}
}

// Open points the default browser at url.
func (o *Opener) Open(ctx context.Context, url string) error {
	name, args := o.command(url)
	res, err := o.runner.Run(ctx, name, args...)
	if err != nil {
		return output.NewExternalToolError("failed to open browser: " + err.Error())
	}
	if res.ExitCode != 0 {
		return output.NewExternalToolError(fmt.Sprintf("%s exited with status %d opening %s", name, res.ExitCode, url))
	}
	return nil
}

// command picks the platform URL handler. The empty argument before the
// URL on Windows is the window title slot of start, which would otherwise
// swallow the URL.
func (o *Opener) command(url string) (string, []string) {
	switch o.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		return "xdg-open", []string{url}
	}
}
