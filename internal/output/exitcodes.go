// Package output provides structured output and error handling for the quill CLI.
package output

import "errors"

// Exit codes:
// 0 = Success
// 1 = User error (bad args, empty title, duplicate draft, workspace not found)
// 2 = External tool error (generator missing, failed, or produced unexpected output)
// 3 = Filesystem error (move/write/remove failed)
// 4 = Parse error (malformed front matter)
const (
	ExitSuccess           = 0
	ExitUserError         = 1
	ExitExternalToolError = 2
	ExitFilesystemError   = 3
	ExitParseError        = 4
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, empty titles, duplicate drafts, missing workspace.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewExternalToolError creates an error for external command failures
// (exit code 2). Use for: generator binary missing, generator did not
// produce the expected file.
func NewExternalToolError(message string) *ExitError {
	return &ExitError{
		Code:    ExitExternalToolError,
		Message: message,
	}
}

// NewExternalToolExitError creates an external tool error that propagates
// the child process's exit status. A non-positive status falls back to
// ExitExternalToolError.
func NewExternalToolExitError(message string, status int) *ExitError {
	code := status
	if code <= 0 {
		code = ExitExternalToolError
	}
	return &ExitError{
		Code:    code,
		Message: message,
	}
}

// NewFilesystemError creates an error for filesystem failures (exit code 3).
// Use for: failed moves, writes, or directory creation.
func NewFilesystemError(message string) *ExitError {
	return &ExitError{
		Code:    ExitFilesystemError,
		Message: message,
	}
}

// NewFilesystemErrorWithCause creates a filesystem error wrapping an
// underlying cause.
func NewFilesystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitFilesystemError,
		Message: message,
		Cause:   cause,
	}
}

// NewParseError creates an error for malformed front matter (exit code 4).
func NewParseError(message string) *ExitError {
	return &ExitError{
		Code:    ExitParseError,
		Message: message,
	}
}

// NewParseErrorWithCause creates a parse error wrapping an underlying cause.
func NewParseErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitParseError,
		Message: message,
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Default to user error for untyped errors
	return ExitUserError
}
