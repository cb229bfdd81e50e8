// Package config locates the blog workspace and loads quill's configuration.
//
// A workspace is the root directory of a generator site. It is found by
// walking upward from the starting directory until a quill.yaml or the
// generator's _config.yml appears. Configuration is the built-in defaults,
// overlaid by quill.yaml when present, overlaid by QUILL_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quillhq/quill/internal/output"
)

const (
	// FileName is the workspace configuration file, looked up at the root.
	FileName = "quill.yaml"

	// GeneratorMarker identifies a generator site root when quill.yaml is
	// absent (Hexo and Jekyll both keep _config.yml at the site root).
	GeneratorMarker = "_config.yml"
)

// defaultConfigFile is written by `quill init` when no quill.yaml exists.
const defaultConfigFile = `# quill workspace configuration

# External site generator executable.
generator: hexo

# Directory the generator renders posts from (the publish location).
source_dir: source/_posts

# Directory holding drafts until quill finalize moves them out.
draft_dir: _drafts

# Image subdirectory inside each draft.
image_dir: img

# Port the generator's local server listens on.
server_port: 4000

# Overrides the preview URL opened by quill preview.
# Defaults to http://localhost:<server_port>/.
#preview_url: ""

# Additional workspace directories created by quill init.
extra_dirs:
  - _hidden
  - _archived
`

// Config carries every path and setting the commands need. It is built
// once per invocation and passed to components at construction; nothing
// else reads the working directory.
type Config struct {
	// Root is the resolved workspace root (absolute). Not read from YAML.
	Root string `yaml:"-"`

	Generator  string   `yaml:"generator"`
	SourceDir  string   `yaml:"source_dir"`
	DraftDir   string   `yaml:"draft_dir"`
	ImageDir   string   `yaml:"image_dir"`
	ServerPort int      `yaml:"server_port"`
	PreviewURL string   `yaml:"preview_url"`
	ExtraDirs  []string `yaml:"extra_dirs"`
}

// Default returns the built-in configuration, unrooted.
func Default() *Config {
	return &Config{
		Generator:  "hexo",
		SourceDir:  filepath.Join("source", "_posts"),
		DraftDir:   "_drafts",
		ImageDir:   "img",
		ServerPort: 4000,
		ExtraDirs:  []string{"_hidden", "_archived"},
	}
}

// FindRoot walks upward from start looking for a workspace root.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", output.NewUserError(fmt.Sprintf("resolving %s: %v", start, err))
	}

	for {
		for _, marker := range []string{FileName, GeneratorMarker} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", output.NewUserError(
				"not inside a blog workspace (no quill.yaml or _config.yml found)")
		}
		dir = parent
	}
}

// Load finds the workspace root from start and builds the configuration:
// quill.yaml when present, defaults for everything it leaves out, QUILL_*
// environment variables on top.
func Load(start string) (*Config, error) {
	root, err := FindRoot(start)
	if err != nil {
		return nil, err
	}
	return LoadAt(root)
}

// LoadAt builds the configuration for an already-resolved workspace root.
func LoadAt(root string) (*Config, error) {
	cfg := &Config{Root: root}

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, output.NewUserError(fmt.Sprintf("parsing %s: %v", path, err))
		}
	case os.IsNotExist(err):
		// Defaults only
	default:
		return nil, output.NewFilesystemErrorWithCause(
			fmt.Sprintf("reading %s", path), err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays QUILL_* environment variables.
func (c *Config) applyEnv() error {
	if gen := os.Getenv("QUILL_GENERATOR"); gen != "" {
		c.Generator = gen
	}
	if port := os.Getenv("QUILL_SERVER_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return output.NewUserError(fmt.Sprintf("invalid QUILL_SERVER_PORT %q", port))
		}
		c.ServerPort = n
	}
	return nil
}

// applyDefaults fills zero values with the built-in defaults.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Generator == "" {
		c.Generator = def.Generator
	}
	if c.SourceDir == "" {
		c.SourceDir = def.SourceDir
	}
	if c.DraftDir == "" {
		c.DraftDir = def.DraftDir
	}
	if c.ImageDir == "" {
		c.ImageDir = def.ImageDir
	}
	if c.ServerPort == 0 {
		c.ServerPort = def.ServerPort
	}
	// A present-but-empty extra_dirs list is an explicit opt-out;
	// only a missing key gets the defaults.
	if c.ExtraDirs == nil {
		c.ExtraDirs = def.ExtraDirs
	}
}

// normalize cleans configured paths.
func (c *Config) normalize() {
	c.SourceDir = filepath.Clean(c.SourceDir)
	c.DraftDir = filepath.Clean(c.DraftDir)
	c.ImageDir = filepath.Clean(c.ImageDir)
	for i, d := range c.ExtraDirs {
		c.ExtraDirs[i] = filepath.Clean(d)
	}
}

// validate rejects configurations the pipeline cannot run against.
func (c *Config) validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return output.NewUserError(fmt.Sprintf("server_port %d out of range", c.ServerPort))
	}
	if c.SourceDir == c.DraftDir {
		return output.NewUserError("source_dir and draft_dir must differ")
	}
	if strings.ContainsRune(c.ImageDir, os.PathSeparator) || c.ImageDir == ".." {
		return output.NewUserError(fmt.Sprintf("image_dir %q must be a plain directory name", c.ImageDir))
	}
	return nil
}

// WriteDefault writes the commented default configuration file.
func WriteDefault(path string) error {
	if err := os.WriteFile(path, []byte(defaultConfigFile), 0o644); err != nil {
		return output.NewFilesystemErrorWithCause(fmt.Sprintf("writing %s", path), err)
	}
	return nil
}

// resolve turns a configured directory into an absolute path under Root.
func (c *Config) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(c.Root, dir)
}

// PostsPath returns the publish location.
func (c *Config) PostsPath() string {
	return c.resolve(c.SourceDir)
}

// DraftsPath returns the draft location.
func (c *Config) DraftsPath() string {
	return c.resolve(c.DraftDir)
}

// DraftPath returns the directory a named draft lives in.
func (c *Config) DraftPath(name string) string {
	return filepath.Join(c.DraftsPath(), name)
}

// PostPath returns the published markdown file for a post name.
func (c *Config) PostPath(name string) string {
	return filepath.Join(c.PostsPath(), name+".md")
}

// AssetPath returns the published asset directory for a post name.
func (c *Config) AssetPath(name string) string {
	return filepath.Join(c.PostsPath(), name)
}

// PreviewAddr returns the URL the preview command opens.
func (c *Config) PreviewAddr() string {
	if c.PreviewURL != "" {
		return c.PreviewURL
	}
	return fmt.Sprintf("http://localhost:%d/", c.ServerPort)
}
