package post

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/quillhq/quill/internal/output"
)

// LongSlugRunes is the length above which a slug is reported as unwieldy.
// Long slugs are allowed; callers surface a warning.
const LongSlugRunes = 64

// MaxSlugRunes is the hard limit on slug length. Titles that slugify to
// something longer are rejected rather than truncated.
const MaxSlugRunes = 255

// separatorRuns matches runs of whitespace, underscores, and hyphens.
var separatorRuns = regexp.MustCompile(`[\s_-]+`)

// invalidRunes matches every rune that may not appear in a slug:
// anything outside letters, marks, digits, underscore, and hyphen.
var invalidRunes = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_-]`)

// Slugify converts a post title into the slug used as the post's file and
// directory name. Runs of whitespace, underscores, and hyphens collapse
// into a single hyphen, all remaining punctuation is stripped, and the
// result is lowercased. Letters outside ASCII pass through untouched, so
// CJK and other non-Latin titles keep readable slugs.
//
// Returns a user error when the title slugifies to nothing, or when the
// slug exceeds MaxSlugRunes.
func Slugify(title string) (string, error) {
	slug := separatorRuns.ReplaceAllString(title, "-")
	slug = invalidRunes.ReplaceAllString(slug, "")
	slug = strings.ToLower(slug)

	if slug == "" {
		return "", output.NewUserError(fmt.Sprintf("title %q leaves nothing to name the post after", title))
	}
	if n := utf8.RuneCountInString(slug); n > MaxSlugRunes {
		return "", output.NewUserError(fmt.Sprintf("slug for %q is %d runes long, the limit is %d", title, n, MaxSlugRunes))
	}
	return slug, nil
}

// IsLongSlug reports whether slug exceeds LongSlugRunes.
func IsLongSlug(slug string) bool {
	return utf8.RuneCountInString(slug) > LongSlugRunes
}
