// Package post provides the post data model shared by drafting and
// finalizing: slug derivation, typed front matter access, and post file
// reading and writing.
package post

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quillhq/quill/internal/output"
)

// fence is the front matter delimiter line.
const fence = "---"

// Post is one markdown post: its front matter and everything after the
// closing fence, byte for byte.
type Post struct {
	Meta *FrontMatter
	Body string
}

// Parse splits raw post content into front matter and body. The opening
// fence must be the first line; the closing fence is the next line that
// consists solely of ---. name appears in error messages only.
func Parse(name string, data []byte) (*Post, error) {
	lines := strings.SplitAfter(string(data), "\n")
	if strings.TrimSuffix(lines[0], "\n") != fence {
		return nil, output.NewParseError(name + ": post does not open with a --- fence")
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSuffix(lines[i], "\n") == fence {
			closing = i
			break
		}
	}
	if closing < 0 {
		return nil, output.NewParseError(name + ": front matter has no closing --- fence")
	}

	meta, err := decodeFrontMatter([]byte(strings.Join(lines[1:closing], "")))
	if err != nil {
		return nil, output.NewParseErrorWithCause(name+": malformed front matter", err)
	}
	return &Post{Meta: meta, Body: strings.Join(lines[closing+1:], "")}, nil
}

// Load reads and parses the post at path. Read failures are filesystem
// errors; malformed content is a parse error naming the file.
func Load(path string) (*Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, output.NewFilesystemError("post file not found: " + path)
		}
		return nil, output.NewFilesystemErrorWithCause("failed to read post: "+path, err)
	}
	return Parse(filepath.Base(path), data)
}

// Render reassembles the post: fences around the front matter, then the
// body unchanged.
func (p *Post) Render() ([]byte, error) {
	meta, err := p.Meta.encode()
	if err != nil {
		return nil, output.NewParseErrorWithCause("failed to render front matter", err)
	}

	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	buf.Write(meta)
	buf.WriteString(fence + "\n")
	buf.WriteString(p.Body)
	return buf.Bytes(), nil
}

// WriteAtomic renders the post and writes it to path using
// write-to-temp-then-rename. The temp file is created in the destination
// directory so the rename never crosses filesystems.
func (p *Post) WriteAtomic(path string) error {
	data, err := p.Render()
	if err != nil {
		return err
	}
	if err := atomicWrite(path, data); err != nil {
		return output.NewFilesystemErrorWithCause("failed to write post: "+path, err)
	}
	return nil
}

// atomicWrite writes data to path using write-to-temp-then-rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.md")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
