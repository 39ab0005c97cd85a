package mdfront

import (
	"fmt"
	"math"
	"reflect"
	"time"
)

// Reserved metadata keys.
const (
	expectedOutputKey = "expectedOutput"
	expectedErrorKey  = "expectedError"
	needsReviewKey    = "needsReview"
)

// Metadata is the key-value mapping held by a document's front-fence
// header. All other keys besides the reserved ones are open; values are
// JSON-compatible after Sanitize.
type Metadata map[string]any

// Document is an immutable split of a raw input into header metadata and
// remaining body. FullText is always reconstructible as
// serialize(Metadata) + Body, modulo codec formatting normalization.
type Document struct {
	FullText string
	Metadata Metadata
	Body     string
}

// ExpectedOutput returns the reserved self-test output field, if present.
func (m Metadata) ExpectedOutput() (string, bool) {
	s, ok := m[expectedOutputKey].(string)
	return s, ok
}

// ExpectedError returns the reserved self-test error field, if present.
func (m Metadata) ExpectedError() (string, bool) {
	s, ok := m[expectedErrorKey].(string)
	return s, ok
}

// NeedsReview reports the reserved review flag. Missing or non-boolean
// values read as false.
func (m Metadata) NeedsReview() bool {
	b, _ := m[needsReviewKey].(bool)
	return b
}

// WithNeedsReview returns a shallow copy of the metadata with the review
// flag set. The receiver is not mutated.
func (m Metadata) WithNeedsReview(v bool) Metadata {
	out := make(Metadata, len(m)+1)
	for k, val := range m {
		out[k] = val
	}
	out[needsReviewKey] = v
	return out
}

// Sanitize returns a deep copy of the metadata holding only
// JSON-representable values. Non-representable members (functions,
// channels, NaN, cyclic values via their string form) are coerced to
// strings; non-string map keys are stringified; nested containers are
// sanitized recursively.
func Sanitize(m Metadata) Metadata {
	if m == nil {
		return Metadata{}
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool, string:
		return val
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return val
	case float32:
		return sanitizeFloat(float64(val))
	case float64:
		return sanitizeFloat(val)
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case Metadata:
		return map[string]any(Sanitize(val))
	case map[string]any:
		return map[string]any(Sanitize(Metadata(val)))
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[fmt.Sprint(k)] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = sanitizeValue(inner)
		}
		return out
	}
	return sanitizeReflect(v)
}

// sanitizeReflect handles container types the switch above cannot name
// (e.g. []string or map[string]int produced by a caller rather than the
// codec). Anything else falls back to its string form.
func sanitizeReflect(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = sanitizeValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = sanitizeValue(iter.Value().Interface())
		}
		return out
	default:
		return fmt.Sprint(v)
	}
}

func sanitizeFloat(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprint(f)
	}
	return f
}
