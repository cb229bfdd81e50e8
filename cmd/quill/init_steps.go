// Package main provides the entry point for the quill CLI.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/output"
)

// buildDryRunSteps constructs the list of dry-run step results.
func buildDryRunSteps(cfg *config.Config, state *initState) []initStepResult {
	steps := make([]initStepResult, 0, 3)
	steps = append(steps, buildConfigStep(state))
	steps = append(steps, buildDraftDirStep(cfg, state))
	steps = append(steps, buildExtraDirsStep(cfg, state))
	return steps
}

// buildConfigStep creates the dry-run step for the config file.
func buildConfigStep(state *initState) initStepResult {
	if state.configExists {
		return initStepResult{Name: "config", Status: "skipped", Message: "already present"}
	}
	return initStepResult{Name: "config", Status: "dry_run", Message: "would write " + config.FileName}
}

// buildDraftDirStep creates the dry-run step for the draft directory.
func buildDraftDirStep(cfg *config.Config, state *initState) initStepResult {
	if state.draftDirExists {
		return initStepResult{Name: "draft_dir", Status: "skipped", Message: "already exists"}
	}
	return initStepResult{Name: "draft_dir", Status: "dry_run", Message: "would create " + cfg.DraftDir}
}

// buildExtraDirsStep creates the dry-run step for the extra directories.
func buildExtraDirsStep(cfg *config.Config, state *initState) initStepResult {
	switch {
	case len(cfg.ExtraDirs) == 0:
		return initStepResult{Name: "extra_dirs", Status: "skipped", Message: "none configured"}
	case len(state.missingExtras) == 0:
		return initStepResult{Name: "extra_dirs", Status: "skipped", Message: "already exist"}
	default:
		return initStepResult{Name: "extra_dirs", Status: "dry_run", Message: "would create " + strings.Join(state.missingExtras, ", ")}
	}
}

// executeInitSteps runs all initialization steps and returns results.
func executeInitSteps(printer *output.Printer, styles initStyleSet, cfg *config.Config, state *initState) []initStepResult {
	steps := make([]initStepResult, 0, 3)

	step := performConfigStep(cfg, state)
	steps = append(steps, step)
	if !printer.IsJSON() {
		printStepResult(printer, styles, step)
	}

	step = performDraftDirStep(cfg, state)
	steps = append(steps, step)
	if !printer.IsJSON() {
		printStepResult(printer, styles, step)
	}

	step = performExtraDirsStep(cfg, state)
	steps = append(steps, step)
	if !printer.IsJSON() {
		printStepResult(printer, styles, step)
	}

	return steps
}

// performConfigStep writes the default config file.
func performConfigStep(cfg *config.Config, state *initState) initStepResult {
	if state.configExists {
		return initStepResult{Name: "config", Status: "skipped", Message: "already present"}
	}

	if err := config.WriteDefault(filepath.Join(cfg.Root, config.FileName)); err != nil {
		return initStepResult{Name: "config", Status: "failed", Message: err.Error()}
	}

	return initStepResult{Name: "config", Status: "ok", Message: "wrote " + config.FileName}
}

// performDraftDirStep creates the draft directory.
func performDraftDirStep(cfg *config.Config, state *initState) initStepResult {
	if state.draftDirExists {
		return initStepResult{Name: "draft_dir", Status: "skipped", Message: "already exists"}
	}

	if err := os.MkdirAll(cfg.DraftsPath(), 0o755); err != nil {
		return initStepResult{Name: "draft_dir", Status: "failed", Message: err.Error()}
	}

	return initStepResult{Name: "draft_dir", Status: "ok", Message: "created " + cfg.DraftDir}
}

// performExtraDirsStep creates any configured extra directories.
func performExtraDirsStep(cfg *config.Config, state *initState) initStepResult {
	if len(cfg.ExtraDirs) == 0 {
		return initStepResult{Name: "extra_dirs", Status: "skipped", Message: "none configured"}
	}
	if len(state.missingExtras) == 0 {
		return initStepResult{Name: "extra_dirs", Status: "skipped", Message: "already exist"}
	}

	created := make([]string, 0, len(state.missingExtras))
	for _, dir := range state.missingExtras {
		if err := os.MkdirAll(filepath.Join(cfg.Root, dir), 0o755); err != nil {
			return initStepResult{Name: "extra_dirs", Status: "failed", Message: dir + ": " + err.Error()}
		}
		created = append(created, dir)
	}

	return initStepResult{Name: "extra_dirs", Status: "ok", Message: "created " + strings.Join(created, ", ")}
}
