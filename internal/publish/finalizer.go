package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/draft"
	"github.com/quillhq/quill/internal/output"
	"github.com/quillhq/quill/internal/post"
)

// Report summarizes one finalize run.
type Report struct {
	Finalized []Finalized `json:"finalized"`
	Skipped   []Skipped   `json:"skipped"`
}

// Finalized is one draft moved into the publish location.
type Finalized struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Skipped is one draft left in place, with the reason.
type Skipped struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Count returns the number of posts finalized.
func (r *Report) Count() int {
	return len(r.Finalized)
}

// Finalizer drains the draft location into the publish location.
type Finalizer struct {
	cfg   *config.Config
	store *draft.Store
	trans *Transformer
	now   func() time.Time
}

// New creates a Finalizer. If store is nil, a store over cfg's draft
// location is used.
func New(cfg *config.Config, store *draft.Store) *Finalizer {
	if store == nil {
		store = draft.New(cfg, nil)
	}
	return &Finalizer{
		cfg:   cfg,
		store: store,
		trans: NewTransformer(cfg.ImageDir),
		now:   time.Now,
	}
}

// Run drains every draft into the publish location. The error return is
// reserved for the draft location being unreadable or the context ending;
// per-draft failures land in the report and the run continues. An empty
// draft location yields an empty report and touches nothing.
func (f *Finalizer) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	entries, malformed, err := f.store.ListWithMalformed()
	if err != nil {
		return nil, err
	}
	for _, name := range malformed {
		report.Skipped = append(report.Skipped, Skipped{
			Name:   name,
			Reason: "draft directory has no " + name + ".md",
		})
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		dest, err := f.finalizeOne(e)
		if err != nil {
			report.Skipped = append(report.Skipped, Skipped{Name: e.Name, Reason: err.Error()})
			continue
		}
		report.Finalized = append(report.Finalized, Finalized{Name: e.Name, Path: dest})
	}
	return report, nil
}

// finalizeOne moves a single draft into the publish location: transform
// the body, clear the draft flag, normalize the date, write the post next
// to its asset directory, then dismantle the draft. Any failure after the
// destination write rolls the published artifacts back so the draft stays
// the only copy.
func (f *Finalizer) finalizeOne(e draft.Entry) (string, error) {
	p, err := post.Load(e.PostPath)
	if err != nil {
		return "", err
	}

	p.Body = f.trans.Apply(p.Body)

	p.Meta.SetBool("draft", false)
	if raw, ok := p.Meta.Get("date"); ok {
		t, perr := post.ParseDate(raw)
		if perr != nil {
			return "", output.NewParseError(e.PostPath + ": " + perr.Error())
		}
		p.Meta.SetDate("date", t)
	} else {
		p.Meta.SetDate("date", f.now())
	}

	dest := f.cfg.PostPath(e.Name)
	assetDir := f.cfg.AssetPath(e.Name)
	if err := f.publish(e, p, dest, assetDir); err != nil {
		f.rollback(e, dest, assetDir)
		return "", err
	}

	// The draft's markdown goes first; once it is gone the published copy
	// is the post and the rest of the directory is cleanup.
	if err := os.Remove(e.PostPath); err != nil {
		f.rollback(e, dest, assetDir)
		return "", output.NewFilesystemErrorWithCause("failed to remove draft post: "+e.PostPath, err)
	}
	_ = os.RemoveAll(e.Dir)

	return dest, nil
}

// publish writes the transformed post and moves the draft's images into
// the asset directory, replacing whatever an earlier finalize of the same
// name left behind.
func (f *Finalizer) publish(e draft.Entry, p *post.Post, dest, assetDir string) error {
	if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
		return output.NewFilesystemErrorWithCause("failed to replace "+dest, err)
	}
	if err := os.RemoveAll(assetDir); err != nil {
		return output.NewFilesystemErrorWithCause("failed to replace "+assetDir, err)
	}
	if err := os.MkdirAll(assetDir, 0o755); err != nil {
		return output.NewFilesystemErrorWithCause("failed to create "+assetDir, err)
	}

	if err := p.WriteAtomic(dest); err != nil {
		return err
	}

	imgs, err := os.ReadDir(e.ImageDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return output.NewFilesystemErrorWithCause("failed to read "+e.ImageDir, err)
	}
	for _, img := range imgs {
		if img.IsDir() {
			continue
		}
		src := filepath.Join(e.ImageDir, img.Name())
		if err := os.Rename(src, filepath.Join(assetDir, img.Name())); err != nil {
			return output.NewFilesystemErrorWithCause("failed to move image "+src, err)
		}
	}
	return nil
}

// rollback restores a draft to its pre-publish state: images that were
// already moved go back to the draft's image directory, then the
// published artifacts are removed. Best effort.
func (f *Finalizer) rollback(e draft.Entry, dest, assetDir string) {
	if imgs, err := os.ReadDir(assetDir); err == nil && len(imgs) > 0 {
		_ = os.MkdirAll(e.ImageDir, 0o755)
		for _, img := range imgs {
			_ = os.Rename(filepath.Join(assetDir, img.Name()), filepath.Join(e.ImageDir, img.Name()))
		}
	}
	_ = os.Remove(dest)
	_ = os.RemoveAll(assetDir)
}
