package mdfront

import (
	"context"
	"fmt"
)

// Stage is a named transform unit in the render pipeline. A stage consumes
// and produces body content (or an intermediate representation); the
// builder does not interpret it beyond its position relative to the core
// transform.
type Stage interface {
	Name() string
	Apply(ctx context.Context, input []byte) ([]byte, error)
}

// Configurable is implemented by stages that accept an options payload.
// Configure is called once at pipeline build time, so a bad payload fails
// the build rather than a later call.
type Configurable interface {
	Configure(options map[string]any) (Stage, error)
}

// StageEntry is the tagged list-entry variant: a bare stage, or a stage
// paired with an options payload. Both shapes may appear in the same list.
type StageEntry struct {
	stage      Stage
	options    map[string]any
	hasOptions bool
}

// Bare wraps a stage with no options payload.
func Bare(s Stage) StageEntry {
	return StageEntry{stage: s}
}

// WithOptions pairs a stage with an options payload resolved at build
// time. The stage must implement Configurable or the build fails.
func WithOptions(s Stage, options map[string]any) StageEntry {
	return StageEntry{stage: s, options: options, hasOptions: true}
}

// Stage returns the underlying stage of the entry.
func (e StageEntry) Stage() Stage { return e.stage }

// resolve produces the runnable stage, applying the options payload when
// one was attached.
func (e StageEntry) resolve() (Stage, error) {
	if e.stage == nil {
		return nil, fmt.Errorf("nil stage in entry")
	}
	if !e.hasOptions {
		return e.stage, nil
	}
	c, ok := e.stage.(Configurable)
	if !ok {
		return nil, fmt.Errorf("stage %q does not accept options", e.stage.Name())
	}
	s, err := c.Configure(e.options)
	if err != nil {
		return nil, fmt.Errorf("configuring stage %q: %w", e.stage.Name(), err)
	}
	if s == nil {
		return nil, fmt.Errorf("stage %q configured to nil", e.stage.Name())
	}
	return s, nil
}

// stageFunc adapts a plain function into a Stage.
type stageFunc struct {
	name string
	fn   func(ctx context.Context, input []byte) ([]byte, error)
}

// NewStage builds a Stage from a name and a transform function.
func NewStage(name string, fn func(ctx context.Context, input []byte) ([]byte, error)) Stage {
	return &stageFunc{name: name, fn: fn}
}

func (s *stageFunc) Name() string { return s.name }

func (s *stageFunc) Apply(ctx context.Context, input []byte) ([]byte, error) {
	return s.fn(ctx, input)
}
