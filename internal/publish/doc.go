// Package publish turns drafts into posts the site generator can build.
//
// Finalizing a draft does three things, per draft, independently:
//  1. rewrite the body for its published layout (image paths, headings,
//     link cards),
//  2. clear the draft flag and normalize the date,
//  3. move the markdown file and images into the publish location and
//     remove the draft directory.
//
// A draft that fails is skipped with a recorded reason and the run moves
// on; a failure after the destination write rolls the published artifacts
// back, so a post is never left in both locations.
package publish
