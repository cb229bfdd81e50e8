// Package draft manages the hidden drafting area of a blog workspace.
//
// A draft lives in its own directory under the configured draft dir,
// markdown file and images side by side:
//
//	_drafts/my-first-post/my-first-post.md
//	_drafts/my-first-post/cover.jpg
//
// The Store creates drafts by asking the site generator to scaffold a
// post, then claims the scaffold: it moves the file into the draft
// directory and rewrites the front matter with the pretty title, the
// draft flag, and a cover path derived from the scaffold date. Listing
// reads the draft dir back, reporting entries whose markdown file is
// missing as malformed rather than failing the whole listing.
package draft
