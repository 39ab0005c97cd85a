package pipeline

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "crlf to lf",
			input: "line one\r\nline two",
			want:  "line one\nline two",
		},
		{
			name:  "bare cr to lf",
			input: "line one\rline two",
			want:  "line one\nline two",
		},
		{
			name:  "mixed endings",
			input: "a\r\nb\rc\nd",
			want:  "a\nb\nc\nd",
		},
		{
			name:  "blank line runs compressed to two",
			input: "para one\n\n\n\n\npara two",
			want:  "para one\n\npara two",
		},
		{
			name:  "double blank line preserved",
			input: "para one\n\npara two",
			want:  "para one\n\npara two",
		},
		{
			name:  "already normalized unchanged",
			input: "# Title\n\nBody text.",
			want:  "# Title\n\nBody text.",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}
