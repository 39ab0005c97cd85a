package mdfront

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdfront/internal/fileutil"
	"github.com/alnah/go-mdfront/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ Renderer        = (*pipeline.HTMLRenderer)(nil)
	_ ProgramCompiler = (*goldmarkProgramCompiler)(nil)
	_ FS              = osFS{}
	_ ConfigSource    = FileConfigSource{}
)

// FS is the filesystem collaborator consumed by LoadAndSplit. Its errors
// pass through the service untouched; callers already understand the os
// error taxonomy.
type FS interface {
	ReadText(path string) (string, error)
}

// osFS is the default FS backed by the local filesystem.
type osFS struct{}

func (osFS) ReadText(path string) (string, error) {
	return fileutil.ReadTextFile(path)
}

// Renderer is the core Markdown-to-HTML transform collaborator.
type Renderer interface {
	Render(ctx context.Context, body string) (string, error)
}

// CompiledProgram is a program compiler's raw output before the service
// attaches sanitized metadata.
type CompiledProgram struct {
	Code        string
	SourceMap   []byte
	Diagnostics []string
}

// ProgramCompiler is the core Markdown-with-embedded-expressions to
// program-source transform collaborator.
type ProgramCompiler interface {
	Compile(ctx context.Context, body string) (*CompiledProgram, error)
}

// goldmarkProgramCompiler adapts the built-in emitter to ProgramCompiler.
type goldmarkProgramCompiler struct {
	emitter *pipeline.ProgramEmitter
}

func (c *goldmarkProgramCompiler) Compile(ctx context.Context, body string) (*CompiledProgram, error) {
	prog, err := c.emitter.Compile(ctx, body)
	if err != nil {
		return nil, err
	}
	return &CompiledProgram{
		Code:        prog.Code,
		SourceMap:   prog.SourceMap,
		Diagnostics: prog.Diagnostics,
	}, nil
}

// Parsed is the split view exposed by Parse.
type Parsed struct {
	Attributes Metadata
	Body       string
}

// CompiledResult is the output of CompileProgram. Created fresh per call;
// Diagnostics keep emit order.
type CompiledResult struct {
	Code        string
	SourceMap   []byte
	Diagnostics []string
	Metadata    Metadata
}

// InteractiveMarker tags a document prepared for interactive consumption.
type InteractiveMarker struct {
	InteractiveMode bool
}

// InteractiveDocument is the cheap, render-free preparation of a document
// for untrusted preview contexts.
type InteractiveDocument struct {
	RawBody  string
	Metadata Metadata
	Marker   InteractiveMarker
}

// Option configures a Service.
type Option func(*Service)

// WithConfig injects the pipeline configuration directly. Takes
// precedence over any ConfigSource.
func WithConfig(cfg PipelineConfig) Option {
	return func(s *Service) {
		c := cfg.clone()
		s.injected = &c
	}
}

// WithConfigSource supplies the configuration from a source (for example
// FileConfigSource). A source that fails to resolve degrades silently to
// the default no-op pipeline rather than failing construction.
func WithConfigSource(src ConfigSource) Option {
	return func(s *Service) { s.source = src }
}

// WithFS replaces the filesystem collaborator (e.g., by tests).
func WithFS(fsys FS) Option {
	return func(s *Service) { s.fs = fsys }
}

// WithRenderer replaces the core HTML transform.
func WithRenderer(r Renderer) Option {
	return func(s *Service) { s.renderer = r }
}

// WithCompiler replaces the core program transform.
func WithCompiler(c ProgramCompiler) Option {
	return func(s *Service) { s.compiler = c }
}

// Service orchestrates the document pipeline. It owns no transform logic
// itself: splitting, stage sequencing, and error wrapping are delegated to
// the components it composes. All state is resolved at construction and
// read-only afterward, so a Service is safe for concurrent use.
type Service struct {
	cfg       PipelineConfig
	injected  *PipelineConfig
	source    ConfigSource
	fs        FS
	renderer  Renderer
	compiler  ProgramCompiler
	sanitizer Stage
}

// NewService creates a Service with the resolved configuration.
// Precedence: WithConfig > WithConfigSource > compiled-in default. The
// default renderer and compiler are created unless injected.
func NewService(opts ...Option) *Service {
	s := &Service{fs: osFS{}}
	for _, opt := range opts {
		opt(s)
	}

	s.cfg = resolveConfig(s.injected, s.source)

	if s.renderer == nil {
		s.renderer = pipeline.NewHTMLRenderer(pipeline.HTMLOptions{
			HeadingIDs: s.cfg.Slug,
			Autolink:   s.cfg.Autolink,
		})
	}
	if s.compiler == nil {
		s.compiler = &goldmarkProgramCompiler{emitter: pipeline.NewProgramEmitter()}
	}
	if s.cfg.Sanitize != nil {
		s.sanitizer = NewSanitizeStage(s.cfg.Sanitize)
	}
	return s
}

// Config returns a copy of the resolved pipeline configuration.
func (s *Service) Config() PipelineConfig {
	return s.cfg.clone()
}

// LoadAndSplit reads raw text through the filesystem collaborator and
// splits it. Read failures are the collaborator's own error kind; split
// failures are *MalformedHeaderError.
func (s *Service) LoadAndSplit(path string) (*Document, error) {
	text, err := s.fs.ReadText(path)
	if err != nil {
		return nil, err
	}
	return Split(text)
}

// Parse splits text into attributes and body.
func (s *Service) Parse(text string) (*Parsed, error) {
	doc, err := Split(text)
	if err != nil {
		return nil, err
	}
	return &Parsed{Attributes: doc.Metadata, Body: doc.Body}, nil
}

// Reconstruct replaces the header of text with newMetadata, keeping the
// body. See the package-level Reconstruct for the precondition.
func (s *Service) Reconstruct(text string, newMetadata Metadata) string {
	return Reconstruct(text, newMetadata)
}

// RenderHTML parses text and renders the body through the HTML pipeline:
// normalize, configured pre-stages, Markdown to HTML, configured
// post-stages, then the sanitize policy when one is set. Fails with
// *MalformedHeaderError or *CompileError. Recovers from stage panics so
// a misbehaving stage cannot crash the caller.
func (s *Service) RenderHTML(ctx context.Context, text string) (out string, err error) {
	parsed, err := s.Parse(text)
	if err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = &CompileError{Reason: fmt.Sprintf("internal panic: %v", r)}
		}
	}()

	chain, err := s.resolveChain(nil)
	if err != nil {
		return "", err
	}

	body := []byte(pipeline.Normalize(parsed.Body))
	body, err = applyStages(ctx, chain.pre, body)
	if err != nil {
		return "", err
	}

	htmlContent, err := s.renderer.Render(ctx, string(body))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &CompileError{Reason: "rendering HTML", Cause: err}
	}

	body, err = applyStages(ctx, chain.post, []byte(htmlContent))
	if err != nil {
		return "", err
	}

	if s.sanitizer != nil {
		body, err = applyStages(ctx, []Stage{s.sanitizer}, body)
		if err != nil {
			return "", err
		}
	}
	return string(body), nil
}

// CompileProgram parses text and compiles the body to program source.
// Per-call options replace the configured stage lists for this call only.
// Pre-stages transform the body before compilation; post-stages transform
// the emitted code. Fails with *MalformedHeaderError or *CompileError.
func (s *Service) CompileProgram(ctx context.Context, text string, opts *CompileOptions) (res *CompiledResult, err error) {
	parsed, err := s.Parse(text)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = &CompileError{Reason: fmt.Sprintf("internal panic: %v", r)}
		}
	}()

	chain, err := s.resolveChain(opts)
	if err != nil {
		return nil, err
	}

	body := []byte(pipeline.Normalize(parsed.Body))
	body, err = applyStages(ctx, chain.pre, body)
	if err != nil {
		return nil, err
	}

	prog, err := s.compiler.Compile(ctx, string(body))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &CompileError{Reason: "compiling program", Cause: err}
	}

	code, err := applyStages(ctx, chain.post, []byte(prog.Code))
	if err != nil {
		return nil, err
	}

	return &CompiledResult{
		Code:        string(code),
		SourceMap:   prog.SourceMap,
		Diagnostics: prog.Diagnostics,
		Metadata:    Sanitize(parsed.Attributes),
	}, nil
}

// PrepareInteractive parses text and returns the raw body with sanitized
// metadata, deliberately skipping the render stage so it stays cheap and
// safe for untrusted preview contexts.
func (s *Service) PrepareInteractive(text string) (*InteractiveDocument, error) {
	parsed, err := s.Parse(text)
	if err != nil {
		return nil, err
	}
	return &InteractiveDocument{
		RawBody:  parsed.Body,
		Metadata: Sanitize(parsed.Attributes),
		Marker:   InteractiveMarker{InteractiveMode: true},
	}, nil
}

// ExtractKnownConfigFields projects the well-known configuration keys.
func (s *Service) ExtractKnownConfigFields(m Metadata) KnownConfigFields {
	return ExtractKnownConfigFields(m)
}

// ExtractParameterDefinitions projects typed parameter definitions.
func (s *Service) ExtractParameterDefinitions(m Metadata) map[string]ParameterDefinition {
	return ExtractParameterDefinitions(m)
}
