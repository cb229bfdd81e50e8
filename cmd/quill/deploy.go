// Package main provides the entry point for the quill CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/output"
)

// newDeployCmd creates the deploy command.
func newDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the site through the generator",
		Long: `Run the generator's deploy step.

Deployment targets (git branch, rsync, whatever the site uses) are
configured on the generator side; quill only invokes it from the
workspace root and propagates its exit code.

Examples:
  quill deploy   # Deploy with the generator's configured strategy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeploy(cmd)
		},
	}
}

// runDeploy executes the deploy command.
func runDeploy(cmd *cobra.Command) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	cfg, err := config.Load(".")
	if err != nil {
		printer.Error(err)
		return err
	}

	if !printer.IsJSON() {
		printer.Print("Deploying site...\n")
	}
	if err := generatorFor(cfg).Deploy(cmd.Context()); err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"status": "ok"})
	}
	printer.Println("Deploy finished")
	return nil
}
