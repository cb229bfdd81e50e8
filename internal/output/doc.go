// Package output provides structured output handling for the quill CLI.
//
// This package handles both human-readable and JSON output formats, so every
// command works equally well for a person at a terminal and for a script or
// editor agent consuming structured results.
//
// # Printer
//
// The Printer is the primary interface for command output. It switches
// formats based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))
//
//	// For success output
//	printer.Success(map[string]any{"message": "Draft created", "slug": slug})
//
//	// For error output
//	printer.Error(err)
//
//	// For raw output
//	printer.Println("Some text")
//	printer.Print("Formatted: %s\n", value)
//
// # JSON Mode
//
// When JSON mode is enabled (via --json flag), all output is structured:
//
//	// Success: {"message": "...", "slug": "...", ...}
//	// Error: {"error": "message", "code": N}
//
// # Styling
//
// For human-readable output, the package provides lipgloss-based styling
// that automatically disables when output is piped:
//
//	printer.styles.Error   // Red, bold
//	printer.styles.Success // Green
//	printer.styles.Warning // Yellow
//	printer.styles.Bold    // Bold
//	printer.styles.Dim     // Gray
//
// # Exit Codes
//
// The package defines standard exit codes and error types:
//
//	output.ExitSuccess           // 0: Success
//	output.ExitUserError         // 1: User error (bad args, duplicate draft)
//	output.ExitExternalToolError // 2: External tool error (generator failed)
//	output.ExitFilesystemError   // 3: Filesystem error (move/write failed)
//	output.ExitParseError        // 4: Parse error (malformed front matter)
//
// # Error Types
//
// Use the error constructors to create properly-coded errors:
//
//	output.NewUserError("a draft named hello-world already exists")
//	output.NewExternalToolError("hexo not found in PATH")
//	output.NewExternalToolExitError("hexo generate exited with status 2", 2)
//	output.NewFilesystemError("cannot move draft into _drafts")
//	output.NewParseError("front matter missing closing --- in hello-world.md")
//
// These errors carry exit codes that are used for both JSON error output
// and process exit codes. External tool errors propagate the child
// process's exit status when it ran and failed.
package output
