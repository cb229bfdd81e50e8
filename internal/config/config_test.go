package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile creates a file with parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// clearQuillEnv blanks the QUILL_* overrides for the test.
func clearQuillEnv(t *testing.T) {
	t.Helper()
	t.Setenv("QUILL_GENERATOR", "")
	t.Setenv("QUILL_SERVER_PORT", "")
}

func TestFindRoot(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, root string) string // returns start dir
		wantRoot bool
		errHint  string
	}{
		{
			name: "generator marker at root",
			setup: func(t *testing.T, root string) string {
				writeFile(t, filepath.Join(root, "_config.yml"), "title: blog\n")
				return root
			},
			wantRoot: true,
		},
		{
			name: "quill.yaml at root",
			setup: func(t *testing.T, root string) string {
				writeFile(t, filepath.Join(root, FileName), "generator: hexo\n")
				return root
			},
			wantRoot: true,
		},
		{
			name: "ascends from nested directory",
			setup: func(t *testing.T, root string) string {
				writeFile(t, filepath.Join(root, "_config.yml"), "title: blog\n")
				nested := filepath.Join(root, "source", "_posts")
				if err := os.MkdirAll(nested, 0o755); err != nil {
					t.Fatal(err)
				}
				return nested
			},
			wantRoot: true,
		},
		{
			name: "no marker anywhere",
			setup: func(t *testing.T, root string) string {
				return root
			},
			errHint: "not inside a blog workspace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			start := tt.setup(t, root)

			got, err := FindRoot(start)
			if tt.errHint != "" {
				if err == nil {
					t.Fatalf("FindRoot() = %q, want error", got)
				}
				if !strings.Contains(err.Error(), tt.errHint) {
					t.Errorf("error = %q, want to contain %q", err, tt.errHint)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindRoot() error = %v", err)
			}
			// TempDir may sit behind a symlink (macOS); compare resolved paths.
			wantRoot, _ := filepath.EvalSymlinks(root)
			gotRoot, _ := filepath.EvalSymlinks(got)
			if gotRoot != wantRoot {
				t.Errorf("FindRoot() = %q, want %q", got, root)
			}
		})
	}
}

func TestLoad_DefaultsOnly(t *testing.T) {
	clearQuillEnv(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "_config.yml"), "title: blog\n")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Generator != "hexo" {
		t.Errorf("Generator = %q, want hexo", cfg.Generator)
	}
	if cfg.SourceDir != filepath.Join("source", "_posts") {
		t.Errorf("SourceDir = %q, want source/_posts", cfg.SourceDir)
	}
	if cfg.DraftDir != "_drafts" {
		t.Errorf("DraftDir = %q, want _drafts", cfg.DraftDir)
	}
	if cfg.ServerPort != 4000 {
		t.Errorf("ServerPort = %d, want 4000", cfg.ServerPort)
	}
	if len(cfg.ExtraDirs) != 2 {
		t.Errorf("ExtraDirs = %v, want two defaults", cfg.ExtraDirs)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	clearQuillEnv(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName),
		"generator: zola\ndraft_dir: drafts\nserver_port: 1111\n")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Generator != "zola" {
		t.Errorf("Generator = %q, want zola", cfg.Generator)
	}
	if cfg.DraftDir != "drafts" {
		t.Errorf("DraftDir = %q, want drafts", cfg.DraftDir)
	}
	if cfg.ServerPort != 1111 {
		t.Errorf("ServerPort = %d, want 1111", cfg.ServerPort)
	}
	// Unset keys keep their defaults
	if cfg.SourceDir != filepath.Join("source", "_posts") {
		t.Errorf("SourceDir = %q, want default", cfg.SourceDir)
	}
}

func TestLoad_EmptyExtraDirsIsOptOut(t *testing.T) {
	clearQuillEnv(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "extra_dirs: []\n")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.ExtraDirs) != 0 {
		t.Errorf("ExtraDirs = %v, want empty (explicit opt-out)", cfg.ExtraDirs)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearQuillEnv(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "generator: [unclosed\n")

	_, err := Load(root)
	if err == nil {
		t.Fatal("Load() should fail on malformed quill.yaml")
	}
	if !strings.Contains(err.Error(), FileName) {
		t.Errorf("error should name the file: %q", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "generator: hexo\nserver_port: 4000\n")

	t.Setenv("QUILL_GENERATOR", "hugo")
	t.Setenv("QUILL_SERVER_PORT", "1414")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Generator != "hugo" {
		t.Errorf("Generator = %q, want env override hugo", cfg.Generator)
	}
	if cfg.ServerPort != 1414 {
		t.Errorf("ServerPort = %d, want env override 1414", cfg.ServerPort)
	}
}

func TestLoad_InvalidEnvPort(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "_config.yml"), "title: blog\n")

	t.Setenv("QUILL_GENERATOR", "")
	t.Setenv("QUILL_SERVER_PORT", "forty")

	_, err := Load(root)
	if err == nil {
		t.Fatal("Load() should reject non-numeric QUILL_SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "QUILL_SERVER_PORT") {
		t.Errorf("error should name the variable: %q", err)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errHint string
	}{
		{
			name:    "port out of range",
			content: "server_port: 70000\n",
			errHint: "out of range",
		},
		{
			name:    "source equals draft",
			content: "source_dir: posts\ndraft_dir: posts\n",
			errHint: "must differ",
		},
		{
			name:    "image dir with separator",
			content: "image_dir: a/b\n",
			errHint: "plain directory name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearQuillEnv(t)
			root := t.TempDir()
			writeFile(t, filepath.Join(root, FileName), tt.content)

			_, err := Load(root)
			if err == nil {
				t.Fatal("Load() should fail validation")
			}
			if !strings.Contains(err.Error(), tt.errHint) {
				t.Errorf("error = %q, want to contain %q", err, tt.errHint)
			}
		})
	}
}

func TestConfig_Paths(t *testing.T) {
	clearQuillEnv(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "_config.yml"), "title: blog\n")

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.DraftPath("hello-world"); got != filepath.Join(cfg.Root, "_drafts", "hello-world") {
		t.Errorf("DraftPath = %q", got)
	}
	if got := cfg.PostPath("hello-world"); got != filepath.Join(cfg.Root, "source", "_posts", "hello-world.md") {
		t.Errorf("PostPath = %q", got)
	}
	if got := cfg.AssetPath("hello-world"); got != filepath.Join(cfg.Root, "source", "_posts", "hello-world") {
		t.Errorf("AssetPath = %q", got)
	}
}

func TestConfig_PreviewAddr(t *testing.T) {
	cfg := Default()
	if got := cfg.PreviewAddr(); got != "http://localhost:4000/" {
		t.Errorf("PreviewAddr = %q, want derived default", got)
	}

	cfg.PreviewURL = "https://blog.example.com/"
	if got := cfg.PreviewAddr(); got != "https://blog.example.com/" {
		t.Errorf("PreviewAddr = %q, want explicit URL", got)
	}
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	clearQuillEnv(t)
	root := t.TempDir()
	path := filepath.Join(root, FileName)

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	cfg, err := LoadAt(root)
	if err != nil {
		t.Fatalf("LoadAt() after WriteDefault error = %v", err)
	}

	def := Default()
	if cfg.Generator != def.Generator || cfg.DraftDir != def.DraftDir ||
		cfg.ServerPort != def.ServerPort {
		t.Errorf("written defaults differ from Default(): %+v", cfg)
	}
}
