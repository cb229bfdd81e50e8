package publish

import (
	"fmt"
	"regexp"
	"strings"
)

// codeSpans matches fenced code blocks and inline code spans.
var codeSpans = regexp.MustCompile("(?s)~~~.*?~~~|```.*?```|`[^`]*`")

// fencedBlocks matches fenced code blocks only.
var fencedBlocks = regexp.MustCompile("(?s)~~~.*?~~~|```.*?```")

// topHeading matches a first-level heading line together with the newline
// before it.
var topHeading = regexp.MustCompile(`(?m)\n^#\s+.+\n`)

// linkCard matches an icon comment line followed by a markdown link.
var linkCard = regexp.MustCompile(`(?s)<!--\s([^>]+?)\s-->\n\[(.*?)\]\((.*?)\)`)

// iconAliases maps shorthand icon names in link card comments to the
// site logo URLs the theme expects. Lookup is case-insensitive.
var iconAliases = map[string]string{
	"知乎":     "https://pic1.zhimg.com/v2-4cd83ae3d6ca76dabecf001244a62310.jpg?source=57bbeac9",
	"zhihu":  "https://pic1.zhimg.com/v2-4cd83ae3d6ca76dabecf001244a62310.jpg?source=57bbeac9",
	"github": "https://github.githubassets.com/assets/apple-touch-icon-144x144-b882e354c005.png",
}

// Transformer rewrites draft bodies into their published form. Draft
// images live in a subdirectory next to the markdown file; published
// images sit in the post's asset directory, so the prefix has to go.
type Transformer struct {
	mdImage   *regexp.Regexp
	htmlImage *regexp.Regexp
}

// NewTransformer builds the rewrite rules for the given image directory
// name (usually "img").
func NewTransformer(imageDir string) *Transformer {
	prefix := regexp.QuoteMeta(imageDir + "/")
	return &Transformer{
		mdImage:   regexp.MustCompile(`\[(.*?)\]\((` + prefix + `)?([^)]+)\)`),
		htmlImage: regexp.MustCompile(`<img\s+src=["']` + prefix + `([^"']+)["']`),
	}
}

// Apply runs the rewrite pipeline over a post body, in order: image
// prefix stripping, first-level heading removal, link card expansion.
func (t *Transformer) Apply(body string) string {
	body = t.stripImagePrefix(body)
	body = removeTopHeadings(body)
	body = expandLinkCards(body)
	return body
}

// stripImagePrefix removes the image directory prefix from markdown links
// and HTML img tags. Code blocks and inline code keep their text.
func (t *Transformer) stripImagePrefix(body string) string {
	return applyOutsideCode(body, true, func(text string) string {
		text = t.mdImage.ReplaceAllString(text, `[${1}](${3})`)
		return t.htmlImage.ReplaceAllString(text, `<img src="${1}"`)
	})
}

// removeTopHeadings drops first-level headings, along with the newline
// that precedes them. Only fenced code is protected; a heading cannot
// start inside an inline span.
func removeTopHeadings(body string) string {
	// The line before the body is the closing front matter fence, so a
	// heading on the first body line still counts as preceded by a newline.
	prefixed := "\n" + body
	out := applyOutsideCode(prefixed, false, func(text string) string {
		return topHeading.ReplaceAllString(text, "")
	})
	return strings.TrimPrefix(out, "\n")
}

// expandLinkCards rewrites an icon comment followed by a markdown link
// into the theme's externalLinkCard tag, expanding known icon aliases.
func expandLinkCards(body string) string {
	return linkCard.ReplaceAllStringFunc(body, func(m string) string {
		groups := linkCard.FindStringSubmatch(m)
		icon := strings.TrimSpace(groups[1])
		title := strings.TrimSpace(groups[2])
		url := strings.TrimSpace(groups[3])
		if full, ok := iconAliases[strings.ToLower(icon)]; ok {
			icon = full
		}
		return fmt.Sprintf("{%% externalLinkCard \"%s\" \"%s\" \"%s\" %%}", title, url, icon)
	})
}

// applyOutsideCode runs transform over the stretches of content between
// code spans, leaving the spans themselves untouched. guardInline extends
// the protection from fenced blocks to inline `code`.
func applyOutsideCode(content string, guardInline bool, transform func(string) string) string {
	pattern := fencedBlocks
	if guardInline {
		pattern = codeSpans
	}

	var b strings.Builder
	last := 0
	for _, span := range pattern.FindAllStringIndex(content, -1) {
		if span[0] > last {
			b.WriteString(transform(content[last:span[0]]))
		}
		b.WriteString(content[span[0]:span[1]])
		last = span[1]
	}
	if last < len(content) {
		b.WriteString(transform(content[last:]))
	}
	return b.String()
}
