package mdfront

import (
	"reflect"
	"testing"
)

func TestExtractKnownConfigFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta Metadata
		want KnownConfigFields
	}{
		{
			name: "all fields present",
			meta: Metadata{
				"provider":   "openai",
				"model":      "gpt-4o",
				"parameters": map[string]any{"topic": "go"},
			},
			want: KnownConfigFields{
				Provider:   "openai",
				Model:      "gpt-4o",
				Parameters: Metadata{"topic": "go"},
			},
		},
		{
			name: "absent fields read as zero values",
			meta: Metadata{"title": "unrelated"},
			want: KnownConfigFields{},
		},
		{
			name: "nil metadata",
			meta: nil,
			want: KnownConfigFields{},
		},
		{
			name: "wrong shapes read as absent",
			meta: Metadata{
				"provider":   42,
				"model":      []any{"not", "a", "string"},
				"parameters": "not a mapping",
			},
			want: KnownConfigFields{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractKnownConfigFields(tt.meta)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractKnownConfigFields() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractParameterDefinitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta Metadata
		want map[string]ParameterDefinition
	}{
		{
			name: "lenient extraction keeps good entries only",
			meta: Metadata{
				"parameters": map[string]any{
					"a": map[string]any{"type": "string", "required": true},
					"z": "ignore",
				},
			},
			want: map[string]ParameterDefinition{
				"a": {Type: "string", Required: true},
			},
		},
		{
			name: "unrecognized type dropped silently",
			meta: Metadata{
				"parameters": map[string]any{
					"good": map[string]any{"type": "number"},
					"bad":  map[string]any{"type": "integer"},
				},
			},
			want: map[string]ParameterDefinition{
				"good": {Type: "number"},
			},
		},
		{
			name: "missing type key dropped",
			meta: Metadata{
				"parameters": map[string]any{
					"x": map[string]any{"description": "typeless"},
				},
			},
			want: map[string]ParameterDefinition{},
		},
		{
			name: "all five kinds recognized",
			meta: Metadata{
				"parameters": map[string]any{
					"s": map[string]any{"type": "string"},
					"n": map[string]any{"type": "number"},
					"b": map[string]any{"type": "boolean"},
					"a": map[string]any{"type": "array"},
					"o": map[string]any{"type": "object"},
				},
			},
			want: map[string]ParameterDefinition{
				"s": {Type: "string"},
				"n": {Type: "number"},
				"b": {Type: "boolean"},
				"a": {Type: "array"},
				"o": {Type: "object"},
			},
		},
		{
			name: "description and default carried over",
			meta: Metadata{
				"parameters": map[string]any{
					"topic": map[string]any{
						"type":        "string",
						"description": "what to write about",
						"default":     "golang",
					},
				},
			},
			want: map[string]ParameterDefinition{
				"topic": {Type: "string", Description: "what to write about", Default: "golang"},
			},
		},
		{
			name: "no parameters mapping yields empty",
			meta: Metadata{"title": "doc"},
			want: map[string]ParameterDefinition{},
		},
		{
			name: "parameters of wrong shape yields empty",
			meta: Metadata{"parameters": []any{"list", "not", "map"}},
			want: map[string]ParameterDefinition{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractParameterDefinitions(tt.meta)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractParameterDefinitions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Parameters that arrive through an actual YAML header must extract the
// same way as hand-built mappings.
func TestExtractParameterDefinitions_FromSplitDocument(t *testing.T) {
	t.Parallel()

	input := "---\nparameters:\n  topic:\n    type: string\n    required: true\n  junk: plain\n---\nbody"
	doc, err := Split(input)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	defs := ExtractParameterDefinitions(doc.Metadata)
	if len(defs) != 1 {
		t.Fatalf("got %d definitions, want 1: %+v", len(defs), defs)
	}
	def, ok := defs["topic"]
	if !ok {
		t.Fatal("topic definition missing")
	}
	if def.Type != ParameterString || !def.Required {
		t.Errorf("definition = %+v, want string/required", def)
	}
}
