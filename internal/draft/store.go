package draft

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/generator"
	"github.com/quillhq/quill/internal/output"
	"github.com/quillhq/quill/internal/post"
)

// PostCreator scaffolds a new post in the publish directory. Satisfied by
// *generator.Generator; tests substitute a fake that writes the file
// itself.
type PostCreator interface {
	NewPost(ctx context.Context, slug string) error
}

// Store manages the draft location: one subdirectory per draft, holding
// the post markdown file and its images.
type Store struct {
	cfg     *config.Config
	creator PostCreator
}

// New creates a Store. If creator is nil, the generator configured in cfg
// is invoked for real.
func New(cfg *config.Config, creator PostCreator) *Store {
	if creator == nil {
		creator = generator.New(cfg.Generator, cfg.Root, nil)
	}
	return &Store{cfg: cfg, creator: creator}
}

// Created describes one draft produced by Create.
type Created struct {
	Title   string
	Slug    string
	Path    string
	Warning string
}

// Entry is one draft on disk.
type Entry struct {
	Name     string // slug, also the directory name
	Dir      string // the draft's directory
	PostPath string // markdown file inside Dir
	ImageDir string // image directory inside Dir, may not exist
}

// Create makes one draft per title, in order, stopping at the first
// failure. The drafts created before the failure are returned alongside
// the error so the caller can report partial progress.
func (s *Store) Create(ctx context.Context, titles []string) ([]Created, error) {
	var created []Created
	for _, title := range titles {
		c, err := s.createOne(ctx, title)
		if err != nil {
			return created, err
		}
		created = append(created, c)
	}
	return created, nil
}

// createOne drives the full pipeline for a single title: slugify, let the
// generator scaffold the post, relocate it into the draft location, then
// rewrite its front matter.
func (s *Store) createOne(ctx context.Context, title string) (Created, error) {
	slug, err := post.Slugify(title)
	if err != nil {
		return Created{}, err
	}

	c := Created{Title: title, Slug: slug}
	if post.IsLongSlug(slug) {
		c.Warning = fmt.Sprintf("slug is %d runes long, consider a shorter title", utf8.RuneCountInString(slug))
	}

	draftDir := s.cfg.DraftPath(slug)
	if _, err := os.Stat(draftDir); err == nil {
		return Created{}, output.NewUserError("draft already exists: " + draftDir)
	}

	if err := s.creator.NewPost(ctx, slug); err != nil {
		return Created{}, err
	}

	src := s.cfg.PostPath(slug)
	if _, err := os.Stat(src); err != nil {
		return Created{}, output.NewExternalToolError(
			s.cfg.Generator + " did not produce the expected file: " + src)
	}

	if err := os.MkdirAll(draftDir, 0o755); err != nil {
		return Created{}, output.NewFilesystemErrorWithCause(
			"failed to create draft directory: "+draftDir, err)
	}
	dest := filepath.Join(draftDir, slug+".md")
	if err := os.Rename(src, dest); err != nil {
		return Created{}, output.NewFilesystemErrorWithCause(
			"failed to move post into drafts: "+src, err)
	}

	// With post_asset_folder enabled the generator scaffolds an asset
	// directory next to the post; the draft keeps its images under its own
	// directory instead.
	_ = os.RemoveAll(s.cfg.AssetPath(slug))

	if err := s.rewriteFrontMatter(dest, title, slug); err != nil {
		return Created{}, err
	}

	c.Path = dest
	return c, nil
}

// rewriteFrontMatter turns the generator's scaffold into a quill draft:
// the pretty title instead of the slug, a cover path derived from the
// assigned date, and the draft flag.
func (s *Store) rewriteFrontMatter(path, title, slug string) error {
	p, err := post.Load(path)
	if err != nil {
		return err
	}

	raw, ok := p.Meta.Get("date")
	if !ok {
		return output.NewParseError(path + ": generator wrote no date field")
	}
	date, err := post.ParseDate(raw)
	if err != nil {
		return output.NewParseError(path + ": " + err.Error())
	}

	p.Meta.Set("title", title)
	p.Meta.Set("cover", fmt.Sprintf("%04d/%02d/%s/cover.jpg", date.Year(), date.Month(), slug))
	p.Meta.SetBool("draft", true)

	return p.WriteAtomic(path)
}

// List enumerates drafts sorted by name. Returns an empty list when the
// draft location does not exist yet.
func (s *Store) List() ([]Entry, error) {
	entries, _, err := s.ListWithMalformed()
	return entries, err
}

// ListWithMalformed also returns the names of subdirectories missing
// their expected markdown file, for callers that report workspace health.
func (s *Store) ListWithMalformed() ([]Entry, []string, error) {
	dirents, err := os.ReadDir(s.cfg.DraftsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, output.NewFilesystemErrorWithCause(
			"failed to read draft directory: "+s.cfg.DraftsPath(), err)
	}

	var entries []Entry
	var malformed []string
	for _, d := range dirents {
		if !d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			continue
		}
		name := d.Name()
		dir := s.cfg.DraftPath(name)
		postPath := filepath.Join(dir, name+".md")
		if _, err := os.Stat(postPath); err != nil {
			malformed = append(malformed, name)
			continue
		}
		entries = append(entries, Entry{
			Name:     name,
			Dir:      dir,
			PostPath: postPath,
			ImageDir: filepath.Join(dir, s.cfg.ImageDir),
		})
	}
	return entries, malformed, nil
}
