package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantFields map[string]any
	}{
		{
			name: "JSON output",
			args: []string{"init", "--json"},
			wantFields: map[string]any{
				"status":              "ok",
				"config_written":      true,
				"draft_dir_created":   true,
				"extra_dirs_created":  true,
				"already_initialized": false,
			},
		},
		{
			name: "dry-run shows what would be done",
			args: []string{"init", "--dry-run", "--json"},
			wantFields: map[string]any{
				"status": "dry_run",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Fresh bare generator site for each case
			dir := newWorkspace(t)

			runInDir(t, dir, func() {
				out, err := runCommand(t, tt.args...)
				if err != nil {
					t.Fatalf("command failed: %v\nOutput: %s", err, out)
				}

				result := parseJSONOutput(t, out)
				for key, want := range tt.wantFields {
					got, ok := result[key]
					if !ok {
						t.Errorf("missing field %q in output", key)
						continue
					}
					if got != want {
						t.Errorf("field %q = %v, want %v", key, got, want)
					}
				}
			})
		})
	}
}

func TestInitCreatesWorkspace(t *testing.T) {
	dir := newWorkspace(t)

	runInDir(t, dir, func() {
		out, err := runCommand(t, "init", "--json")
		if err != nil {
			t.Fatalf("command failed: %v\nOutput: %s", err, out)
		}

		for _, path := range []string{
			filepath.Join(dir, "quill.yaml"),
			filepath.Join(dir, "_drafts"),
			filepath.Join(dir, "_hidden"),
			filepath.Join(dir, "_archived"),
		} {
			if _, statErr := os.Stat(path); statErr != nil {
				t.Errorf("%s not created: %v", path, statErr)
			}
		}
	})
}

func TestInitIdempotent(t *testing.T) {
	dir := newWorkspace(t)

	runInDir(t, dir, func() {
		out1, err := runCommand(t, "init", "--json")
		if err != nil {
			t.Fatalf("first init failed: %v\nOutput: %s", err, out1)
		}
		result1 := parseJSONOutput(t, out1)
		if result1["status"] != "ok" {
			t.Errorf("first init status = %v, want ok", result1["status"])
		}

		// Second init reports already initialized and changes nothing
		out2, err := runCommand(t, "init", "--json")
		if err != nil {
			t.Fatalf("second init failed: %v\nOutput: %s", err, out2)
		}
		result2 := parseJSONOutput(t, out2)
		if result2["status"] != "ok" {
			t.Errorf("second init status = %v, want ok", result2["status"])
		}
		if result2["already_initialized"] != true {
			t.Errorf("already_initialized = %v, want true", result2["already_initialized"])
		}
	})
}

func TestInitDryRunTouchesNothing(t *testing.T) {
	dir := newWorkspace(t)

	runInDir(t, dir, func() {
		out, err := runCommand(t, "init", "--dry-run", "--json")
		if err != nil {
			t.Fatalf("command failed: %v\nOutput: %s", err, out)
		}

		for _, path := range []string{
			filepath.Join(dir, "quill.yaml"),
			filepath.Join(dir, "_drafts"),
		} {
			if _, statErr := os.Stat(path); statErr == nil {
				t.Errorf("dry run should not create %s", path)
			}
		}
	})
}

func TestInitDryRunJSONSteps(t *testing.T) {
	dir := newWorkspace(t)

	runInDir(t, dir, func() {
		out, err := runCommand(t, "init", "--dry-run", "--json")
		if err != nil {
			t.Fatalf("command failed: %v\nOutput: %s", err, out)
		}

		result := parseJSONOutput(t, out)
		steps, ok := result["steps"].([]any)
		if !ok {
			t.Fatalf("steps is not an array: %T", result["steps"])
		}
		if len(steps) != 3 {
			t.Errorf("got %d steps, want 3", len(steps))
		}

		expectedSteps := []string{"config", "draft_dir", "extra_dirs"}
		for i, step := range steps {
			if i >= len(expectedSteps) {
				break
			}
			stepMap, _ := step.(map[string]any)
			if stepMap["name"] != expectedSteps[i] {
				t.Errorf("step %d name = %v, want %v", i, stepMap["name"], expectedSteps[i])
			}
			if stepMap["status"] != "dry_run" {
				t.Errorf("step %d status = %v, want dry_run", i, stepMap["status"])
			}
		}
	})
}

func TestInitNotAGeneratorSite(t *testing.T) {
	dir := t.TempDir()

	runInDir(t, dir, func() {
		out, err := runCommand(t, "init", "--json")
		if err == nil {
			t.Fatal("expected error outside a generator site")
		}

		result := parseJSONOutput(t, out)
		code, ok := result["code"].(float64)
		if !ok {
			t.Fatalf("missing or invalid 'code' in error output: %v", result)
		}
		if code != 1 {
			t.Errorf("error code = %v, want 1 (user error)", code)
		}
		errMsg, _ := result["error"].(string)
		if !strings.Contains(errMsg, "generator site") {
			t.Errorf("error = %q, want generator site hint", errMsg)
		}
	})
}

func TestInitRefusesConfigOnlyWorkspace(t *testing.T) {
	// A quill.yaml with no generator site underneath has nothing to set up in
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "quill.yaml"), "generator: hexo\n")

	runInDir(t, dir, func() {
		out, err := runCommand(t, "init", "--json")
		if err == nil {
			t.Fatal("expected error without _config.yml")
		}

		result := parseJSONOutput(t, out)
		errMsg, _ := result["error"].(string)
		if !strings.Contains(errMsg, "_config.yml") {
			t.Errorf("error = %q, want mention of _config.yml", errMsg)
		}
	})
}

func TestInitHumanOutput(t *testing.T) {
	dir := newWorkspace(t)

	runInDir(t, dir, func() {
		out, err := runCommand(t, "init")
		if err != nil {
			t.Fatalf("command failed: %v\nOutput: %s", err, out)
		}

		checks := []string{
			"Setting up quill in",
			"Next steps:",
			"quill new",
			"quill finalize",
			"quill doctor",
		}
		for _, check := range checks {
			if !strings.Contains(out, check) {
				t.Errorf("human output missing %q\nOutput: %s", check, out)
			}
		}
	})
}

func TestInitDryRunHumanOutput(t *testing.T) {
	dir := newWorkspace(t)

	runInDir(t, dir, func() {
		out, err := runCommand(t, "init", "--dry-run")
		if err != nil {
			t.Fatalf("command failed: %v\nOutput: %s", err, out)
		}
		if !strings.Contains(out, "Dry run") {
			t.Errorf("dry-run output missing 'Dry run' header\nOutput: %s", out)
		}
	})
}
