// Package frontmatter parses and serializes YAML front-fence headers. It
// wraps the YAML library so the external dependency stays isolated and can
// be swapped without modifying callers.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits what is fed to the YAML parser (default 1MB). It
// bounds the header region, never the body: body size is the caller's
// concern.
var MaxInputSize = 1 << 20

// Sentinel errors for codec operations.
var (
	ErrInputTooLarge  = errors.New("frontmatter: input exceeds maximum size")
	ErrHeaderParse    = errors.New("frontmatter: header parse failed")
	ErrSerialize      = errors.New("frontmatter: serialize failed")
	ErrNilDestination = errors.New("frontmatter: nil destination pointer")
	ErrNilData        = errors.New("frontmatter: nil or empty data")
)

// delimiter is the fence line bounding the header block.
const delimiter = "---"

// Parse splits text into header metadata and remaining body. Text without
// a leading fence has no header: the metadata is empty and the body is the
// full input. A present but empty header region also yields empty metadata.
func Parse(text string) (map[string]any, string, error) {
	header, body, found := extract(text)
	if !found {
		return map[string]any{}, text, nil
	}
	if len(header) > MaxInputSize {
		return nil, "", fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(header), MaxInputSize)
	}
	if strings.TrimSpace(header) == "" {
		return map[string]any{}, body, nil
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrHeaderParse, err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, body, nil
}

// Serialize writes metadata as a fenced header in front of body. Empty
// metadata produces no header at all, so a headerless document survives a
// parse/serialize round trip unchanged.
func Serialize(meta map[string]any, body string) (string, error) {
	if len(meta) == 0 {
		return body, nil
	}
	out, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	var b strings.Builder
	b.Grow(len(delimiter)*2 + len(out) + len(body) + 2)
	b.WriteString(delimiter)
	b.WriteByte('\n')
	b.Write(out)
	b.WriteString(delimiter)
	b.WriteByte('\n')
	b.WriteString(body)
	return b.String(), nil
}

// extract captures the header region and body around the fences. A missing
// closing fence makes the header everything after the opening marker with
// an empty body; whether that region is valid YAML is the parser's call.
// Header lines lose their trailing \r so CRLF input parses cleanly; the
// body is returned verbatim.
func extract(text string) (header, body string, found bool) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || !isFence(lines[0]) {
		return "", "", false
	}
	for i := 1; i < len(lines); i++ {
		if isFence(lines[i]) {
			return joinHeader(lines[1:i]), strings.Join(lines[i+1:], "\n"), true
		}
	}
	return joinHeader(lines[1:]), "", true
}

func joinHeader(lines []string) string {
	trimmed := make([]string, len(lines))
	for i, line := range lines {
		trimmed[i] = strings.TrimSuffix(line, "\r")
	}
	return strings.Join(trimmed, "\n")
}

func isFence(line string) bool {
	return strings.TrimSuffix(line, "\r") == delimiter
}

// UnmarshalStrict parses YAML data into v, guarding input size and
// rejecting unknown fields.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("frontmatter: %w", err)
	}
	return nil
}

// Marshal serializes v as YAML.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: %w", err)
	}
	return out, nil
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}
