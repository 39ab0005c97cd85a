package pipeline

import (
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeSpec describes the allowlist a sanitizer is built from. A nil
// spec means sanitization is off; the zero value is a strip-everything
// policy.
type SanitizeSpec struct {
	AllowStandard bool                // start from bluemonday's UGC policy
	AllowedTags   []string            // additional elements to allow
	AllowedAttrs  map[string][]string // attribute -> elements (empty = global)
}

// Sanitizer applies an HTML allowlist policy built on bluemonday.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer compiles the spec into a reusable policy. Policies are
// safe for concurrent use, so one Sanitizer serves all calls.
func NewSanitizer(spec SanitizeSpec) *Sanitizer {
	var p *bluemonday.Policy
	if spec.AllowStandard {
		p = bluemonday.UGCPolicy()
	} else {
		p = bluemonday.NewPolicy()
	}
	if len(spec.AllowedTags) > 0 {
		p.AllowElements(spec.AllowedTags...)
	}
	for attr, elements := range spec.AllowedAttrs {
		if len(elements) == 0 {
			p.AllowAttrs(attr).Globally()
		} else {
			p.AllowAttrs(attr).OnElements(elements...)
		}
	}
	return &Sanitizer{policy: p}
}

// Sanitize strips everything the policy does not allow.
func (s *Sanitizer) Sanitize(htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}

// SanitizeBytes is Sanitize for byte slices, avoiding a copy on the
// stage-chain path.
func (s *Sanitizer) SanitizeBytes(htmlContent []byte) []byte {
	return s.policy.SanitizeBytes(htmlContent)
}
