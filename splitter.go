package mdfront

import (
	"github.com/alnah/go-mdfront/internal/frontmatter"
)

// Split separates raw text into a Document. The fence heuristic runs
// first; only when it passes is the codec invoked, and any codec failure
// is wrapped so its error type never leaks past this boundary. Absence of
// a header is success with the body equal to the full input.
func Split(text string) (*Document, error) {
	if err := ValidateFence(text); err != nil {
		return nil, err
	}
	meta, body, err := frontmatter.Parse(text)
	if err != nil {
		return nil, &MalformedHeaderError{Reason: "header parse failed", Cause: err}
	}
	return &Document{
		FullText: text,
		Metadata: Metadata(meta),
		Body:     body,
	}, nil
}

// Reconstruct discards the original header, keeps the body, and writes
// newMetadata in front of it. The original must already have been accepted
// by Split; an unparsable original is treated as all body rather than
// reported, and a codec write failure falls back to returning the original
// text unchanged. Under the documented precondition neither happens.
func Reconstruct(originalFullText string, newMetadata Metadata) string {
	body := originalFullText
	if doc, err := Split(originalFullText); err == nil {
		body = doc.Body
	}
	out, err := frontmatter.Serialize(map[string]any(newMetadata), body)
	if err != nil {
		return originalFullText
	}
	return out
}
