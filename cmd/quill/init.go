// Package main provides the entry point for the quill CLI.
package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/output"
)

// initFlags holds the command-line flags for the init command.
type initFlags struct {
	dryRun bool
}

// initStepResult tracks the result of a single initialization step.
type initStepResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "skipped", "failed", "dry_run"
	Message string `json:"message,omitempty"`
}

// initState holds the current state of the quill setup.
type initState struct {
	configExists   bool
	draftDirExists bool
	missingExtras  []string
}

// initStyleSet holds lipgloss styles for init output.
type initStyleSet struct {
	heading lipgloss.Style
	pass    lipgloss.Style
	skip    lipgloss.Style
	fail    lipgloss.Style
	dim     lipgloss.Style
	accent  lipgloss.Style
}

// initStyles returns a TTY-aware style set.
func initStyles(isTTY bool) initStyleSet {
	if !isTTY {
		return initStyleSet{}
	}
	return initStyleSet{
		heading: lipgloss.NewStyle().Bold(true),
		pass:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "10", Dark: "10"}),
		skip:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "7"}),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "9", Dark: "9"}),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "7"}),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "12", Dark: "12"}),
	}
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up quill in an existing generator site",
		Long: `Set up quill in an existing generator site.

This command creates everything the drafting workflow needs:
  - The draft directory drafts live in until finalized
  - The extra workspace directories from the configuration
  - A commented quill.yaml at the workspace root

It requires a generator site (a directory with _config.yml); create one
first with the generator itself, e.g. 'hexo init'.

The command is idempotent - safe to run multiple times.

Examples:
  quill init            # Set up the workspace
  quill init --dry-run  # Show what would be done`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, flags *initFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))
	styles := initStyles(printer.IsTTY())

	root, err := findGeneratorRoot()
	if err != nil {
		printer.Error(err)
		return err
	}

	cfg, err := config.LoadAt(root)
	if err != nil {
		printer.Error(err)
		return err
	}

	state := gatherInitState(cfg)

	if flags.dryRun {
		return handleInitDryRun(printer, styles, cfg, state)
	}

	return performInit(printer, styles, cfg, state)
}

// findGeneratorRoot locates the generator site the workspace wraps. Unlike
// the other commands, init insists on _config.yml: a quill.yaml with no
// site underneath has nothing to set up in.
func findGeneratorRoot() (string, error) {
	root, err := config.FindRoot(".")
	if err != nil {
		return "", output.NewUserError(
			"not inside a generator site; run 'hexo init' to create one first")
	}
	if _, statErr := os.Stat(filepath.Join(root, config.GeneratorMarker)); statErr != nil {
		return "", output.NewUserError(
			"no " + config.GeneratorMarker + " at " + root + "; initialize the generator site first")
	}
	return root, nil
}

// gatherInitState checks the current quill setup state.
func gatherInitState(cfg *config.Config) *initState {
	state := &initState{}

	_, err := os.Stat(filepath.Join(cfg.Root, config.FileName))
	state.configExists = err == nil

	info, statErr := os.Stat(cfg.DraftsPath())
	state.draftDirExists = statErr == nil && info.IsDir()

	for _, dir := range cfg.ExtraDirs {
		dirInfo, dirErr := os.Stat(filepath.Join(cfg.Root, dir))
		if dirErr != nil || !dirInfo.IsDir() {
			state.missingExtras = append(state.missingExtras, dir)
		}
	}

	return state
}

// isAlreadyInitialized checks if the workspace is fully set up.
func isAlreadyInitialized(state *initState) bool {
	return state.configExists &&
		state.draftDirExists &&
		len(state.missingExtras) == 0
}

// handleInitDryRun outputs what would be done without making changes.
func handleInitDryRun(printer *output.Printer, styles initStyleSet, cfg *config.Config, state *initState) error {
	steps := buildDryRunSteps(cfg, state)

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status": "dry_run",
			"root":   cfg.Root,
			"steps":  steps,
		})
	}

	outputDryRunHumanInit(printer, styles, cfg.Root, steps)
	return nil
}

// performInit runs the actual initialization steps.
func performInit(printer *output.Printer, styles initStyleSet, cfg *config.Config, state *initState) error {
	if isAlreadyInitialized(state) {
		return outputAlreadyInitialized(printer, styles, cfg.Root)
	}

	if !printer.IsJSON() {
		printer.Println()
		printer.Print("%s %s...\n", styles.heading.Render("Setting up quill in"), styles.dim.Render(cfg.Root))
		printer.Println()
	}

	steps := executeInitSteps(printer, styles, cfg, state)
	return outputInitResult(printer, styles, cfg, steps)
}

// outputAlreadyInitialized handles the already-initialized case.
func outputAlreadyInitialized(printer *output.Printer, styles initStyleSet, root string) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":              "ok",
			"already_initialized": true,
			"root":                root,
		})
	}
	printer.Println()
	printer.Print("%s %s\n", styles.pass.Render("Quill is already set up in"), root)
	printer.Println()
	printer.Print("Run '%s' to check health.\n", styles.accent.Render("quill doctor"))
	return nil
}

// outputInitResult outputs the final initialization result.
func outputInitResult(printer *output.Printer, styles initStyleSet, cfg *config.Config, steps []initStepResult) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":              "ok",
			"root":                cfg.Root,
			"config_written":      stepSucceeded(steps, "config"),
			"draft_dir_created":   stepSucceeded(steps, "draft_dir"),
			"extra_dirs_created":  stepSucceeded(steps, "extra_dirs"),
			"already_initialized": false,
			"steps":               steps,
		})
	}

	printNextSteps(printer, styles)
	return nil
}

// stepSucceeded checks if a step with the given name completed with "ok" status.
func stepSucceeded(steps []initStepResult, name string) bool {
	for _, s := range steps {
		if s.Name == name && s.Status == "ok" {
			return true
		}
	}
	return false
}

// printNextSteps outputs the next steps message.
func printNextSteps(printer *output.Printer, styles initStyleSet) {
	printer.Println()
	printer.Print("%s\n", styles.heading.Render(styles.pass.Render("Quill set up!")))
	printer.Println()
	printer.Print("Next steps:\n")
	printer.Print("  1. %s\n", styles.dim.Render("Start a draft:"))
	printer.Print("     %s\n", styles.accent.Render("quill new \"My First Post\""))
	printer.Println()
	printer.Print("  2. %s\n", styles.dim.Render("Publish it when it is ready:"))
	printer.Print("     %s\n", styles.accent.Render("quill finalize"))
	printer.Println()
	printer.Print("  3. %s\n", styles.dim.Render("Verify setup:"))
	printer.Print("     %s\n", styles.accent.Render("quill doctor"))
}
