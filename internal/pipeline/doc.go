// Package pipeline implements the built-in transform stages of the
// document pipeline:
//   - body normalization (line endings, blank-line compression)
//   - Markdown to HTML conversion via Goldmark
//   - heading slug and anchor-link post-processing
//   - HTML sanitization via bluemonday
//   - Markdown to program-source compilation
//
// Stage ordering, per-call overrides, and error wrapping are handled by
// the root mdfront package; this package holds only the transforms
// themselves, each usable on its own.
package pipeline
