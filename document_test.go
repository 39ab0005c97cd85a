package mdfront

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
	"time"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input Metadata
		want  Metadata
	}{
		{
			name:  "nil metadata yields empty",
			input: nil,
			want:  Metadata{},
		},
		{
			name:  "scalars pass through",
			input: Metadata{"s": "text", "b": true, "n": 42, "f": 1.5},
			want:  Metadata{"s": "text", "b": true, "n": 42, "f": 1.5},
		},
		{
			name:  "nil value preserved",
			input: Metadata{"empty": nil},
			want:  Metadata{"empty": nil},
		},
		{
			name:  "function coerced to string form",
			input: Metadata{"fn": TestSanitize},
			want:  nil, // checked structurally below
		},
		{
			name:  "NaN coerced to string",
			input: Metadata{"nan": math.NaN()},
			want:  Metadata{"nan": "NaN"},
		},
		{
			name:  "infinity coerced to string",
			input: Metadata{"inf": math.Inf(1)},
			want:  Metadata{"inf": "+Inf"},
		},
		{
			name:  "bytes become string",
			input: Metadata{"raw": []byte("abc")},
			want:  Metadata{"raw": "abc"},
		},
		{
			name:  "interface keys stringified",
			input: Metadata{"m": map[any]any{1: "one", "two": 2}},
			want:  Metadata{"m": map[string]any{"1": "one", "two": 2}},
		},
		{
			name:  "nested containers recursed",
			input: Metadata{"list": []any{"a", map[string]any{"inner": math.NaN()}}},
			want:  Metadata{"list": []any{"a", map[string]any{"inner": "NaN"}}},
		},
		{
			name:  "typed slice normalized",
			input: Metadata{"tags": []string{"x", "y"}},
			want:  Metadata{"tags": []any{"x", "y"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Sanitize(tt.input)

			// Every sanitized mapping must be JSON-representable.
			if _, err := json.Marshal(got); err != nil {
				t.Fatalf("sanitized metadata not JSON-representable: %v", err)
			}

			if tt.want != nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sanitize() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSanitize_Time(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got := Sanitize(Metadata{"date": ts})
	if got["date"] != "2026-03-01T12:00:00Z" {
		t.Errorf("date = %v, want RFC3339 string", got["date"])
	}
}

func TestSanitize_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := Metadata{"nested": map[string]any{"keep": math.NaN()}}
	_ = Sanitize(input)

	inner := input["nested"].(map[string]any)
	if _, ok := inner["keep"].(float64); !ok {
		t.Error("Sanitize mutated its input")
	}
}

func TestMetadata_ReservedFields(t *testing.T) {
	t.Parallel()

	m := Metadata{
		"expectedOutput": "<h1>x</h1>",
		"expectedError":  "compile failed",
		"needsReview":    true,
	}

	if out, ok := m.ExpectedOutput(); !ok || out != "<h1>x</h1>" {
		t.Errorf("ExpectedOutput() = %q, %v", out, ok)
	}
	if e, ok := m.ExpectedError(); !ok || e != "compile failed" {
		t.Errorf("ExpectedError() = %q, %v", e, ok)
	}
	if !m.NeedsReview() {
		t.Error("NeedsReview() = false, want true")
	}

	empty := Metadata{}
	if _, ok := empty.ExpectedOutput(); ok {
		t.Error("ExpectedOutput() present on empty metadata")
	}
	if empty.NeedsReview() {
		t.Error("NeedsReview() = true on empty metadata")
	}
}

func TestMetadata_WithNeedsReview(t *testing.T) {
	t.Parallel()

	original := Metadata{"title": "doc"}
	updated := original.WithNeedsReview(true)

	if !updated.NeedsReview() {
		t.Error("updated copy should need review")
	}
	if original.NeedsReview() {
		t.Error("original was mutated")
	}
	if updated["title"] != "doc" {
		t.Error("existing keys must carry over")
	}
}
