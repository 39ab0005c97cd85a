package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrProgramEmit indicates program compilation failed.
var ErrProgramEmit = errors.New("program emit failed")

// Program is the compiled representation of a document body: module
// source, an optional source map, and ordered diagnostics collected while
// emitting.
type Program struct {
	Code        string
	SourceMap   []byte
	Diagnostics []string
}

// embeddedExpr matches single-brace embedded expressions like {user.name}.
// Double braces and brace pairs spanning lines are left to the author.
var embeddedExpr = regexp.MustCompile(`\{[^{}\n]+\}`)

// ProgramEmitter compiles a Markdown body with embedded expressions into a
// JavaScript module source. The Markdown is rendered through the same
// goldmark configuration as the HTML path; embedded expressions become
// template slots the generated module interpolates at call time.
type ProgramEmitter struct {
	renderer *HTMLRenderer
}

// NewProgramEmitter creates an emitter with heading IDs enabled, since
// compiled documents are typically navigated by anchor.
func NewProgramEmitter() *ProgramEmitter {
	return &ProgramEmitter{renderer: NewHTMLRenderer(HTMLOptions{HeadingIDs: true})}
}

// Compile renders the body and emits a self-contained module. Embedded
// expressions are recorded as diagnostics and preserved as interpolation
// slots; they are not evaluated here.
func (e *ProgramEmitter) Compile(ctx context.Context, body string) (*Program, error) {
	exprs := collectExpressions(body)

	htmlContent, err := e.renderer.Render(ctx, body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrProgramEmit, err)
	}

	code, err := emitModule(htmlContent, exprs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProgramEmit, err)
	}

	diagnostics := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		diagnostics = append(diagnostics, "embedded expression preserved as slot: "+expr)
	}
	return &Program{Code: code, Diagnostics: diagnostics}, nil
}

// collectExpressions gathers embedded expressions outside fenced code
// blocks, in document order, deduplicated.
func collectExpressions(body string) []string {
	var exprs []string
	seen := map[string]bool{}
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		for _, loc := range embeddedExpr.FindAllStringIndex(line, -1) {
			if loc[0] > 0 && line[loc[0]-1] == '{' {
				continue
			}
			if loc[1] < len(line) && line[loc[1]] == '}' {
				continue
			}
			m := line[loc[0]:loc[1]]
			if !seen[m] {
				seen[m] = true
				exprs = append(exprs, m)
			}
		}
	}
	return exprs
}

// emitModule wraps the rendered HTML in a module that substitutes
// expression slots from a props object at call time.
func emitModule(htmlContent string, exprs []string) (string, error) {
	encodedHTML, err := json.Marshal(htmlContent)
	if err != nil {
		return "", err
	}

	slots := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		key := strings.TrimSpace(expr[1 : len(expr)-1])
		slot, err := json.Marshal(expr)
		if err != nil {
			return "", err
		}
		path, err := json.Marshal(key)
		if err != nil {
			return "", err
		}
		slots = append(slots, fmt.Sprintf("  [%s, %s],", slot, path))
	}

	var b strings.Builder
	b.WriteString("const html = ")
	b.Write(encodedHTML)
	b.WriteString(";\n")
	b.WriteString("const slots = [\n")
	for _, s := range slots {
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString("];\n")
	b.WriteString(`function resolve(props, path) {
  let v = props;
  for (const part of path.split(".")) {
    if (v == null) return "";
    v = v[part];
  }
  return v == null ? "" : String(v);
}
export default function DocumentContent(props = {}) {
  let out = html;
  for (const [slot, path] of slots) {
    out = out.split(slot).join(resolve(props, path));
  }
  return out;
}
`)
	return b.String(), nil
}
