package mdfront

import (
	"context"

	"github.com/alnah/go-mdfront/internal/pipeline"
)

// NewSlugStage returns a post-stage that gives headings without an id a
// slug derived from their text, with numeric suffixes on duplicates.
func NewSlugStage() Stage {
	return NewStage("slug", func(ctx context.Context, input []byte) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []byte(pipeline.AddHeadingIDs(string(input))), nil
	})
}

// NewAutolinkStage returns a post-stage that wraps a self-referencing
// anchor around every heading that carries an id. Compose it after the
// slug stage so all headings are covered.
func NewAutolinkStage() Stage {
	return NewStage("autolink", func(ctx context.Context, input []byte) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []byte(pipeline.AutolinkHeadings(string(input))), nil
	})
}

// NewSanitizeStage returns a post-stage applying the policy's allowlist.
// A nil policy yields a pass-through stage.
func NewSanitizeStage(policy *SanitizePolicy) Stage {
	if policy == nil {
		return NewStage("sanitize", func(ctx context.Context, input []byte) ([]byte, error) {
			return input, nil
		})
	}
	sanitizer := newSanitizer(policy)
	return NewStage("sanitize", func(ctx context.Context, input []byte) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return sanitizer.SanitizeBytes(input), nil
	})
}

func newSanitizer(policy *SanitizePolicy) *pipeline.Sanitizer {
	return pipeline.NewSanitizer(pipeline.SanitizeSpec{
		AllowStandard: policy.AllowStandard,
		AllowedTags:   policy.AllowedTags,
		AllowedAttrs:  policy.AllowedAttrs,
	})
}
