package mdfront

import (
	"github.com/alnah/go-mdfront/internal/config"
)

// SanitizePolicy describes the HTML allowlist applied as the final step of
// the HTML pipeline. Nil means sanitization is off; the zero value strips
// everything.
type SanitizePolicy struct {
	AllowStandard bool                // start from a standard user-generated-content allowlist
	AllowedTags   []string            // additional elements to allow
	AllowedAttrs  map[string][]string // attribute -> elements (empty slice = allow globally)
}

// PipelineConfig is the effective configuration of a Service's transform
// pipeline. One instance is resolved per Service at construction; per-call
// overrides produce an ephemeral copy and never mutate it.
type PipelineConfig struct {
	// PreStages run after normalization and before the core transform,
	// in list order.
	PreStages []StageEntry
	// PostStages run after the core transform, in list order.
	PostStages []StageEntry
	// Sanitize, when non-nil, applies an allowlist policy after the
	// post-stages of the HTML pipeline.
	Sanitize *SanitizePolicy
	// Slug makes the default renderer generate heading IDs.
	Slug bool
	// Autolink makes the default renderer link bare URLs.
	Autolink bool
}

// DefaultPipelineConfig is the compiled-in fallback: a safe no-op
// pipeline with no stages and every toggle off.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{}
}

// clone copies the config so a per-call override or a caller holding the
// original cannot mutate the service-owned instance.
func (c PipelineConfig) clone() PipelineConfig {
	out := c
	out.PreStages = append([]StageEntry(nil), c.PreStages...)
	out.PostStages = append([]StageEntry(nil), c.PostStages...)
	if c.Sanitize != nil {
		sp := *c.Sanitize
		out.Sanitize = &sp
	}
	return out
}

// ConfigSource supplies a PipelineConfig at service construction time.
type ConfigSource interface {
	Resolve() (PipelineConfig, error)
}

// FileConfigSource resolves configuration from a YAML file by name or
// path (searched in the current directory, then the user config dir).
// File configs express only the declarative toggles; stage lists are code
// and come from WithConfig or DocsPreset.
type FileConfigSource struct {
	NameOrPath string
}

// Resolve loads and maps the file config.
func (f FileConfigSource) Resolve() (PipelineConfig, error) {
	fc, err := config.Load(f.NameOrPath)
	if err != nil {
		return PipelineConfig{}, err
	}
	cfg := PipelineConfig{
		Slug:     fc.Slug,
		Autolink: fc.Autolink,
	}
	if fc.Sanitize.Enabled {
		cfg.Sanitize = &SanitizePolicy{
			AllowStandard: fc.Sanitize.AllowStandard,
			AllowedTags:   fc.Sanitize.AllowedTags,
			AllowedAttrs:  fc.Sanitize.AllowedAttrs,
		}
	}
	return cfg, nil
}

// resolveConfig applies the precedence: injected config > config source >
// compiled-in default. A source that fails to resolve degrades silently to
// the default; that favors availability over strictness and is safe
// because the default pipeline is a no-op.
func resolveConfig(injected *PipelineConfig, source ConfigSource) PipelineConfig {
	if injected != nil {
		return injected.clone()
	}
	if source != nil {
		if cfg, err := source.Resolve(); err == nil {
			return cfg.clone()
		}
	}
	return DefaultPipelineConfig()
}

// PresetOptions drive DocsPreset. Each toggle composes the corresponding
// caller-supplied stage into the post-stage list; an enabled toggle with a
// nil stage is a no-op, since the preset does not bundle implementations
// itself. NewSlugStage, NewAutolinkStage, and NewSanitizeStage provide
// ready-made ones.
type PresetOptions struct {
	Slug     bool
	Autolink bool
	Sanitize *SanitizePolicy

	SlugStage     Stage
	AutolinkStage Stage
	SanitizeStage Stage
}

// DocsPreset composes a documentation-oriented PipelineConfig
// declaratively from named toggles. Stage order is slug, autolink,
// sanitize: IDs must exist before anchors reference them, and
// sanitization always runs last.
func DocsPreset(opts PresetOptions) PipelineConfig {
	cfg := DefaultPipelineConfig()
	if opts.Slug && opts.SlugStage != nil {
		cfg.PostStages = append(cfg.PostStages, Bare(opts.SlugStage))
	}
	if opts.Autolink && opts.AutolinkStage != nil {
		cfg.PostStages = append(cfg.PostStages, Bare(opts.AutolinkStage))
	}
	if opts.Sanitize != nil && opts.SanitizeStage != nil {
		cfg.PostStages = append(cfg.PostStages, Bare(opts.SanitizeStage))
	}
	return cfg
}
