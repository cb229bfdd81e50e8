package main

import "github.com/quillhq/quill/internal/output"

// outputDryRunHumanInit prints dry-run output in human format.
func outputDryRunHumanInit(printer *output.Printer, styles initStyleSet, root string, steps []initStepResult) {
	printer.Println()
	printer.Print("%s %s\n", styles.heading.Render("Dry run: quill init in"), styles.dim.Render(root))
	printer.Println()

	for _, step := range steps {
		icon := styledDryRunIcon(styles, step.Status)
		printer.Print("  %s %s: %s\n", icon, step.Name, step.Message)
	}
}

// styledDryRunIcon returns a styled icon for a dry-run step status.
func styledDryRunIcon(styles initStyleSet, status string) string {
	switch status {
	case "skipped":
		return styles.dim.Render("--")
	case "dry_run":
		return styles.accent.Render(">")
	default:
		return "?"
	}
}

// printStepResult prints a single step result in human format.
func printStepResult(printer *output.Printer, styles initStyleSet, step initStepResult) {
	icon := styledStepIcon(styles, step.Status)
	name := formatStepName(step.Name)
	printer.Print("  %s %s", icon, name)
	if step.Message != "" {
		printer.Print(" %s", styles.dim.Render("("+step.Message+")"))
	}
	printer.Println()
}

// styledStepIcon returns a styled icon for a step status.
func styledStepIcon(styles initStyleSet, status string) string {
	switch status {
	case "ok":
		return styles.pass.Render("ok")
	case "skipped":
		return styles.skip.Render("--")
	case "failed":
		return styles.fail.Render("XX")
	default:
		return "??"
	}
}

// formatStepName converts internal step names to display names.
func formatStepName(name string) string {
	switch name {
	case "config":
		return "quill.yaml"
	case "draft_dir":
		return "Draft directory"
	case "extra_dirs":
		return "Extra directories"
	default:
		return name
	}
}
