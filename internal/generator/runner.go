package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// Result holds the outcome of a captured command run.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes external commands. The error return is reserved for
// commands that could not be run at all (binary missing, context
// canceled); a command that ran and exited non-zero reports its status
// through the Result or the returned code, with a nil error.
type Runner interface {
	// Run executes a command and captures its output.
	Run(ctx context.Context, name string, args ...string) (Result, error)

	// RunAttached executes a command wired to the caller's stdin, stdout,
	// and stderr, and returns its exit status. Used for long-running,
	// user-facing invocations like the local server.
	RunAttached(ctx context.Context, name string, args ...string) (int, error)
}

// ExecRunner runs commands for real, with Dir as the working directory.
type ExecRunner struct {
	Dir string
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}

// RunAttached implements Runner.
func (r *ExecRunner) RunAttached(ctx context.Context, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}
