package mdfront

import (
	"context"
	"fmt"
)

// CompileOptions carries per-call pipeline overrides. A non-nil list
// replaces the configured list for that call only; an empty non-nil slice
// removes every stage. Nil leaves the configured list in effect.
// Replacement rather than merge is deliberate: appending silently would
// duplicate stage side effects for callers who intend full control.
type CompileOptions struct {
	PreStages  []StageEntry
	PostStages []StageEntry
}

// stageChain is the resolved, runnable stage sequence around a core
// transform: normalize, pre-stages, core, post-stages, serialize.
type stageChain struct {
	pre  []Stage
	post []Stage
}

// resolveChain applies the override precedence and resolves every entry's
// options payload. Resolution happens here, at build time, so a bad
// payload fails the call before any stage runs.
func (s *Service) resolveChain(opts *CompileOptions) (*stageChain, error) {
	preEntries := s.cfg.PreStages
	postEntries := s.cfg.PostStages
	if opts != nil && opts.PreStages != nil {
		preEntries = opts.PreStages
	}
	if opts != nil && opts.PostStages != nil {
		postEntries = opts.PostStages
	}

	pre, err := resolveEntries(preEntries)
	if err != nil {
		return nil, &CompileError{Reason: "building pre-stages", Cause: err}
	}
	post, err := resolveEntries(postEntries)
	if err != nil {
		return nil, &CompileError{Reason: "building post-stages", Cause: err}
	}
	return &stageChain{pre: pre, post: post}, nil
}

func resolveEntries(entries []StageEntry) ([]Stage, error) {
	stages := make([]Stage, 0, len(entries))
	for _, e := range entries {
		st, err := e.resolve()
		if err != nil {
			return nil, err
		}
		stages = append(stages, st)
	}
	return stages, nil
}

// applyStages runs stages in order. The first failure aborts the chain
// wrapped with the stage name; partial output never escapes. Context
// cancellation is checked between stages and returned unwrapped, since it
// is the caller's own signal.
func applyStages(ctx context.Context, stages []Stage, input []byte) ([]byte, error) {
	current := input
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := st.Apply(ctx, current)
		if err != nil {
			return nil, &CompileError{Reason: fmt.Sprintf("stage %q failed", st.Name()), Cause: err}
		}
		current = out
	}
	return current, nil
}
