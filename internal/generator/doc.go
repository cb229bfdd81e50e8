// Package generator wraps the external site generator behind a narrow
// command runner for the quill CLI.
//
// The generator (Hexo by default) is an opaque collaborator: quill never
// parses its templates or touches its build pipeline, it only shells out
// to the configured binary from the workspace root.
//
// # Running Commands
//
// The Runner interface separates "the command could not be run" (a non-nil
// error: binary missing, context canceled) from "the command ran and
// failed" (a nil error with a non-zero exit status in the result). Two
// modes cover the CLI's needs:
//
//	res, err := runner.Run(ctx, "hexo", "new", "post", "my-slug") // captured
//	code, err := runner.RunAttached(ctx, "hexo", "server")        // inherited stdio
//
// Captured mode is for short scaffolding calls whose output quill inspects
// or rewraps. Attached mode hands the terminal to the generator for
// long-running or chatty commands (server, generate, deploy).
//
// # The Generator Wrapper
//
// Generator binds a Runner to the configured binary and exposes the
// subcommands quill drives:
//
//	gen := generator.New(cfg.Generator, cfg.Root, nil)
//	err := gen.NewPost(ctx, slug)
//	err = gen.Clean(ctx)
//	err = gen.Build(ctx)
//	err = gen.Serve(ctx) // blocks until the server exits
//
// Passing a nil Runner to New selects the real ExecRunner; tests pass a
// fake that records calls and scripts results.
//
// # Error Handling
//
// A missing binary becomes an external tool error with an install hint. A
// subcommand that exits non-zero becomes an external tool error carrying
// the child's exit status, so the CLI process exits with the same code the
// generator did.
package generator
