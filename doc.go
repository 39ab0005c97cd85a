// Package mdfront parses, transforms, and compiles Markdown documents that
// carry a YAML front-fence metadata header.
//
// # Quick Start
//
// Create a service, parse a document, and render it:
//
//	svc := mdfront.NewService()
//
//	parsed, err := svc.Parse("---\ntitle: Hello\n---\n# Hello\n\nWorld")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(parsed.Attributes["title"]) // Hello
//
//	html, err := svc.RenderHTML(ctx, doc)
//
// # Document Model
//
// A document is raw text with an optional header delimited by lines that
// are exactly "---":
//
//	---
//	title: Release Notes
//	provider: openai
//	model: gpt-4o
//	---
//	# Release Notes
//	...
//
// Splitting yields a Document{FullText, Metadata, Body}. Metadata is a
// JSON-compatible mapping; Sanitize coerces anything the YAML codec
// produced that JSON cannot represent.
//
// # Processing Pipeline
//
// Rendering and compilation run the body through an ordered stage chain:
//
//  1. Normalization (line endings, blank-line compression)
//  2. Configured pre-stages, in list order
//  3. Core transform (Markdown to HTML via Goldmark, or Markdown with
//     embedded expressions to program source)
//  4. Configured post-stages, in list order
//  5. Serialization of the final output
//
// Stage lists come from the PipelineConfig resolved once at service
// construction. Per-call overrides on CompileProgram replace (never
// append to) the configured lists for that call only.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := mdfront.NewService(
//	    mdfront.WithConfig(mdfront.PipelineConfig{Slug: true}),
//	)
//
// A ConfigSource (for example FileConfigSource) may supply the config
// instead; if it fails to resolve, the service silently falls back to the
// default no-op pipeline, which is always safe.
//
// # Errors
//
// All failures are returned as one of two recoverable kinds:
//
//   - *MalformedHeaderError: the header region failed the fence heuristic
//     or the YAML codec rejected it.
//   - *CompileError: a transform stage or the renderer failed after the
//     header was separated.
//
// Both preserve the originating error via Unwrap; the collaborator's own
// error type never crosses the package boundary. Filesystem errors from
// LoadAndSplit pass through untouched.
package mdfront
