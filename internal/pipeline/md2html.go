package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLOptions configures the default renderer.
type HTMLOptions struct {
	HeadingIDs bool // generate slug IDs for headings
	Autolink   bool // turn bare URLs into links
}

// HTMLRenderer converts Markdown to an HTML fragment using goldmark
// (pure Go). The output is a fragment rather than a full document so
// post-stages (sanitization in particular) can operate on it directly.
type HTMLRenderer struct {
	md goldmark.Markdown
}

// NewHTMLRenderer creates a renderer with GFM extensions and syntax
// highlighting.
func NewHTMLRenderer(opts HTMLOptions) *HTMLRenderer {
	extensions := []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Footnote, // [^1] footnotes
		highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // CSS classes for external stylesheet control
			),
		),
	}
	if opts.Autolink {
		extensions = append(extensions, extension.Linkify)
	}

	var parserOptions []parser.Option
	if opts.HeadingIDs {
		parserOptions = append(parserOptions, parser.WithAutoHeadingID())
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithRendererOptions(
			html.WithXHTML(), // Self-closing tags
			// Note: WithUnsafe() intentionally NOT used; raw HTML in the
			// body stays escaped unless a sanitize-aware post-stage
			// reintroduces it.
		),
	)
	return &HTMLRenderer{md: md}
}

// Render converts Markdown content to an HTML fragment. Supports context
// cancellation via goroutine + select pattern since goldmark doesn't
// natively support context.
func (r *HTMLRenderer) Render(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}
