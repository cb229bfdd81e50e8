// Package main provides the entry point for the quill CLI.
package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/draft"
	"github.com/quillhq/quill/internal/post"
)

// runWorkspaceChecks performs workspace layout checks.
func runWorkspaceChecks(cfg *config.Config) []checkResult {
	checks := make([]checkResult, 0, 4)
	checks = append(checks, checkConfigFile(cfg))
	checks = append(checks, checkDraftDir(cfg))
	checks = append(checks, checkPostsDir(cfg))
	checks = append(checks, checkExtraDirs(cfg))
	return checks
}

// checkConfigFile checks if a quill.yaml exists at the workspace root.
func checkConfigFile(cfg *config.Config) checkResult {
	path := filepath.Join(cfg.Root, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return checkResult{
			Name:    "Config File",
			Status:  checkPass,
			Message: config.FileName + " loaded",
		}
	}

	return checkResult{
		Name:    "Config File",
		Status:  checkWarn,
		Message: "no " + config.FileName + ", using built-in defaults",
		Hint:    "Run 'quill init' to write one",
	}
}

// checkDraftDir checks if the draft location exists.
func checkDraftDir(cfg *config.Config) checkResult {
	info, err := os.Stat(cfg.DraftsPath())
	if err == nil && info.IsDir() {
		return checkResult{
			Name:    "Draft Directory",
			Status:  checkPass,
			Message: cfg.DraftDir + "/ exists",
		}
	}

	return checkResult{
		Name:    "Draft Directory",
		Status:  checkWarn,
		Message: cfg.DraftDir + "/ not found",
		Hint:    "Run 'quill init' to create it",
	}
}

// checkPostsDir checks if the generator's publish location exists.
func checkPostsDir(cfg *config.Config) checkResult {
	info, err := os.Stat(cfg.PostsPath())
	if err == nil && info.IsDir() {
		return checkResult{
			Name:    "Publish Directory",
			Status:  checkPass,
			Message: cfg.SourceDir + "/ exists",
		}
	}

	return checkResult{
		Name:    "Publish Directory",
		Status:  checkFail,
		Message: cfg.SourceDir + "/ not found",
		Hint:    "Initialize the generator site first ('" + cfg.Generator + " init')",
	}
}

// checkExtraDirs checks the configured extra workspace directories.
func checkExtraDirs(cfg *config.Config) checkResult {
	if len(cfg.ExtraDirs) == 0 {
		return checkResult{
			Name:    "Extra Directories",
			Status:  checkPass,
			Message: "none configured",
		}
	}

	var missing []string
	for _, dir := range cfg.ExtraDirs {
		info, err := os.Stat(filepath.Join(cfg.Root, dir))
		if err != nil || !info.IsDir() {
			missing = append(missing, dir)
		}
	}

	if len(missing) == 0 {
		return checkResult{
			Name:    "Extra Directories",
			Status:  checkPass,
			Message: strconv.Itoa(len(cfg.ExtraDirs)) + " present",
		}
	}

	return checkResult{
		Name:    "Extra Directories",
		Status:  checkWarn,
		Message: "missing: " + strings.Join(missing, ", "),
		Hint:    "Run 'quill init' to create them",
	}
}

// runGeneratorChecks performs generator availability checks.
func runGeneratorChecks(ctx context.Context, cfg *config.Config) []checkResult {
	checks := make([]checkResult, 0, 2)
	checks = append(checks, checkGeneratorBinary(cfg))
	checks = append(checks, checkGeneratorVersion(ctx, cfg))
	return checks
}

// checkGeneratorBinary checks if the generator executable is in PATH.
func checkGeneratorBinary(cfg *config.Config) checkResult {
	path, err := exec.LookPath(cfg.Generator)
	if err != nil {
		return checkResult{
			Name:    "Generator Binary",
			Status:  checkFail,
			Message: cfg.Generator + " not found in PATH",
			Hint:    "Install it, or set generator in " + config.FileName,
		}
	}

	return checkResult{
		Name:    "Generator Binary",
		Status:  checkPass,
		Message: path,
	}
}

// checkGeneratorVersion asks the generator for its version.
func checkGeneratorVersion(ctx context.Context, cfg *config.Config) checkResult {
	v, err := generatorFor(cfg).Version(ctx)
	if err != nil {
		return checkResult{
			Name:    "Generator Version",
			Status:  checkWarn,
			Message: "could not get version: " + err.Error(),
		}
	}

	return checkResult{
		Name:    "Generator Version",
		Status:  checkPass,
		Message: v,
	}
}

// runContentChecks performs draft content checks.
func runContentChecks(cfg *config.Config) []checkResult {
	checks := make([]checkResult, 0, 2)
	store := draft.New(cfg, nil)
	checks = append(checks, checkDrafts(cfg, store))
	checks = append(checks, checkDraftFrontMatter(store))
	return checks
}

// checkDrafts checks the draft location for stray folders.
func checkDrafts(cfg *config.Config, store *draft.Store) checkResult {
	entries, malformed, err := store.ListWithMalformed()
	if err != nil {
		return checkResult{
			Name:    "Drafts",
			Status:  checkWarn,
			Message: "could not list drafts: " + err.Error(),
		}
	}

	if len(malformed) > 0 {
		return checkResult{
			Name:    "Drafts",
			Status:  checkWarn,
			Message: "folder(s) missing their post file: " + strings.Join(malformed, ", "),
			Hint:    "Remove them, or restore the markdown file",
		}
	}

	if len(entries) == 0 {
		return checkResult{
			Name:    "Drafts",
			Status:  checkPass,
			Message: "no drafts in progress",
		}
	}

	return checkResult{
		Name:    "Drafts",
		Status:  checkPass,
		Message: strconv.Itoa(len(entries)) + " draft(s) in progress",
	}
}

// checkDraftFrontMatter verifies every draft would survive finalize.
func checkDraftFrontMatter(store *draft.Store) checkResult {
	entries, err := store.List()
	if err != nil {
		return checkResult{
			Name:    "Front Matter",
			Status:  checkWarn,
			Message: "could not list drafts: " + err.Error(),
		}
	}
	if len(entries) == 0 {
		return checkResult{
			Name:    "Front Matter",
			Status:  checkPass,
			Message: "no drafts to check",
		}
	}

	var bad []string
	for _, e := range entries {
		p, loadErr := post.Load(e.PostPath)
		if loadErr != nil {
			bad = append(bad, e.Name)
			continue
		}
		if raw, ok := p.Meta.Get("date"); ok {
			if _, dateErr := post.ParseDate(raw); dateErr != nil {
				bad = append(bad, e.Name)
			}
		}
	}

	if len(bad) > 0 {
		return checkResult{
			Name:    "Front Matter",
			Status:  checkWarn,
			Message: "finalize would skip: " + strings.Join(bad, ", "),
			Hint:    "Fix the front matter before running 'quill finalize'",
		}
	}

	return checkResult{
		Name:    "Front Matter",
		Status:  checkPass,
		Message: "all drafts parse cleanly",
	}
}
