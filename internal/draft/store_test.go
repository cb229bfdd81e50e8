package draft

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/output"
	"github.com/quillhq/quill/internal/post"
)

// fakeCreator plays the generator's part: it records calls and scaffolds
// the post file the way Hexo would.
type fakeCreator struct {
	cfg      *config.Config
	calls    []string
	err      error
	noFile   bool
	scaffold string
	assetDir bool
}

func (f *fakeCreator) NewPost(_ context.Context, slug string) error {
	f.calls = append(f.calls, slug)
	if f.err != nil {
		return f.err
	}
	if f.noFile {
		return nil
	}
	if f.assetDir {
		if err := os.MkdirAll(f.cfg.AssetPath(slug), 0o755); err != nil {
			return err
		}
	}
	scaffold := f.scaffold
	if scaffold == "" {
		scaffold = "---\ntitle: " + slug + "\ndate: 2026-08-23 10:11:12\ntags:\n---\n"
	}
	return os.WriteFile(f.cfg.PostPath(slug), []byte(scaffold), 0o644)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Root = t.TempDir()
	if err := os.MkdirAll(cfg.PostsPath(), 0o755); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func testStore(t *testing.T) (*Store, *fakeCreator) {
	t.Helper()
	cfg := testConfig(t)
	f := &fakeCreator{cfg: cfg}
	return New(cfg, f), f
}

func TestCreateSingle(t *testing.T) {
	s, f := testStore(t)

	created, err := s.Create(context.Background(), []string{"Hello World"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created %d drafts, want 1", len(created))
	}

	c := created[0]
	if c.Slug != "hello-world" {
		t.Errorf("Slug = %q, want %q", c.Slug, "hello-world")
	}
	want := s.cfg.DraftPath("hello-world")
	if c.Path != filepath.Join(want, "hello-world.md") {
		t.Errorf("Path = %q, want it inside %q", c.Path, want)
	}
	if len(f.calls) != 1 || f.calls[0] != "hello-world" {
		t.Errorf("generator calls = %v, want [hello-world]", f.calls)
	}

	p, err := post.Load(c.Path)
	if err != nil {
		t.Fatalf("Load() of created draft error = %v", err)
	}
	if title, _ := p.Meta.Get("title"); title != "Hello World" {
		t.Errorf("title = %q, want the pretty title %q", title, "Hello World")
	}
	if cover, _ := p.Meta.Get("cover"); cover != "2026/08/hello-world/cover.jpg" {
		t.Errorf("cover = %q, want %q", cover, "2026/08/hello-world/cover.jpg")
	}
	if draft, ok := p.Meta.Bool("draft"); !ok || !draft {
		t.Errorf("draft = (%v, %v), want (true, true)", draft, ok)
	}

	// The scaffold must be gone from the publish location.
	if _, err := os.Stat(s.cfg.PostPath("hello-world")); !os.IsNotExist(err) {
		t.Errorf("scaffold still present in publish location")
	}
}

func TestCreateMultiple(t *testing.T) {
	s, _ := testStore(t)

	created, err := s.Create(context.Background(), []string{"First Post", "Second Post"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created %d drafts, want 2", len(created))
	}
	if created[0].Slug != "first-post" || created[1].Slug != "second-post" {
		t.Errorf("slugs = %q, %q; want first-post, second-post", created[0].Slug, created[1].Slug)
	}
}

func TestCreateAbortsOnFirstFailure(t *testing.T) {
	s, f := testStore(t)

	created, err := s.Create(context.Background(), []string{"Good One", "!!!", "Never Made"})
	if err == nil {
		t.Fatal("Create() expected error, got nil")
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if len(created) != 1 || created[0].Slug != "good-one" {
		t.Errorf("created = %+v, want just good-one", created)
	}
	// The generator never ran for the failing or the following title.
	if len(f.calls) != 1 {
		t.Errorf("generator calls = %v, want [good-one]", f.calls)
	}
}

func TestCreateDuplicateDraft(t *testing.T) {
	s, f := testStore(t)

	if _, err := s.Create(context.Background(), []string{"Hello World"}); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	_, err := s.Create(context.Background(), []string{"hello world"})
	if err == nil {
		t.Fatal("Create() expected duplicate error, got nil")
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error = %v, want it to mention the existing draft", err)
	}
	// Duplicate detection runs before the generator.
	if len(f.calls) != 1 {
		t.Errorf("generator calls = %v, want only the first", f.calls)
	}
}

func TestCreateGeneratorFailurePropagates(t *testing.T) {
	s, f := testStore(t)
	f.err = output.NewExternalToolExitError("hexo new post exited with status 2", 2)

	created, err := s.Create(context.Background(), []string{"Hello World"})
	if err == nil {
		t.Fatal("Create() expected error, got nil")
	}
	if code := output.GetExitCode(err); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if len(created) != 0 {
		t.Errorf("created = %+v, want none", created)
	}
}

func TestCreateGeneratorProducedNothing(t *testing.T) {
	s, f := testStore(t)
	f.noFile = true

	_, err := s.Create(context.Background(), []string{"Hello World"})
	if err == nil {
		t.Fatal("Create() expected error, got nil")
	}
	if code := output.GetExitCode(err); code != output.ExitExternalToolError {
		t.Errorf("exit code = %d, want %d", code, output.ExitExternalToolError)
	}
	if !strings.Contains(err.Error(), "did not produce") {
		t.Errorf("error = %v, want it to name the missing file", err)
	}
}

func TestCreateRemovesScaffoldAssetDir(t *testing.T) {
	s, f := testStore(t)
	f.assetDir = true

	if _, err := s.Create(context.Background(), []string{"Hello World"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := os.Stat(s.cfg.AssetPath("hello-world")); !os.IsNotExist(err) {
		t.Errorf("scaffold asset directory still present in publish location")
	}
}

func TestCreateScaffoldWithoutDate(t *testing.T) {
	s, f := testStore(t)
	f.scaffold = "---\ntitle: hello-world\ntags:\n---\n"

	_, err := s.Create(context.Background(), []string{"Hello World"})
	if err == nil {
		t.Fatal("Create() expected error, got nil")
	}
	if code := output.GetExitCode(err); code != output.ExitParseError {
		t.Errorf("exit code = %d, want %d", code, output.ExitParseError)
	}
}

func TestCreateScaffoldWithBadDate(t *testing.T) {
	s, f := testStore(t)
	f.scaffold = "---\ntitle: hello-world\ndate: sometime soon\n---\n"

	_, err := s.Create(context.Background(), []string{"Hello World"})
	if err == nil {
		t.Fatal("Create() expected error, got nil")
	}
	if code := output.GetExitCode(err); code != output.ExitParseError {
		t.Errorf("exit code = %d, want %d", code, output.ExitParseError)
	}
}

func TestCreateCoverFollowsDate(t *testing.T) {
	s, f := testStore(t)
	f.scaffold = "---\ntitle: winter-post\ndate: 2025-01-05 00:00:00\n---\n"

	created, err := s.Create(context.Background(), []string{"Winter Post"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	p, err := post.Load(created[0].Path)
	if err != nil {
		t.Fatal(err)
	}
	if cover, _ := p.Meta.Get("cover"); cover != "2025/01/winter-post/cover.jpg" {
		t.Errorf("cover = %q, want %q", cover, "2025/01/winter-post/cover.jpg")
	}
}

func TestCreateLongSlugWarns(t *testing.T) {
	s, _ := testStore(t)
	title := strings.Repeat("a", post.LongSlugRunes+6)

	created, err := s.Create(context.Background(), []string{title})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created[0].Warning == "" {
		t.Error("Warning empty, want a long slug notice")
	}
}

func TestListEmpty(t *testing.T) {
	s, _ := testStore(t)

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List() = %+v, want empty", entries)
	}
}

func TestListSortedAndFiltered(t *testing.T) {
	s, _ := testStore(t)

	titles := []string{"Zeta", "Alpha"}
	if _, err := s.Create(context.Background(), titles); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Stray file and dot directory must be ignored.
	if err := os.WriteFile(filepath.Join(s.cfg.DraftsPath(), "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(s.cfg.DraftsPath(), ".cache"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(entries))
	}
	if entries[0].Name != "alpha" || entries[1].Name != "zeta" {
		t.Errorf("names = %q, %q; want alpha, zeta", entries[0].Name, entries[1].Name)
	}
	if entries[0].PostPath != filepath.Join(entries[0].Dir, "alpha.md") {
		t.Errorf("PostPath = %q, want alpha.md inside the draft dir", entries[0].PostPath)
	}
	if entries[0].ImageDir != filepath.Join(entries[0].Dir, "img") {
		t.Errorf("ImageDir = %q, want img inside the draft dir", entries[0].ImageDir)
	}
}

func TestListWithMalformed(t *testing.T) {
	s, _ := testStore(t)

	if _, err := s.Create(context.Background(), []string{"Valid Draft"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := os.MkdirAll(filepath.Join(s.cfg.DraftsPath(), "empty-husk"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, malformed, err := s.ListWithMalformed()
	if err != nil {
		t.Fatalf("ListWithMalformed() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "valid-draft" {
		t.Errorf("entries = %+v, want just valid-draft", entries)
	}
	if len(malformed) != 1 || malformed[0] != "empty-husk" {
		t.Errorf("malformed = %v, want [empty-husk]", malformed)
	}
}
