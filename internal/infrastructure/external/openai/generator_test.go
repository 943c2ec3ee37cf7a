package openai

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare object",
			content: `{"summary": "done"}`,
			want:    `{"summary": "done"}`,
		},
		{
			name:    "fenced object",
			content: "```json\n{\"summary\": \"done\"}\n```",
			want:    `{"summary": "done"}`,
		},
		{
			name:    "object with nested braces",
			content: `prefix {"a": {"b": 1}} suffix`,
			want:    `{"a": {"b": 1}}`,
		},
		{
			name:    "braces inside string",
			content: `{"text": "literal } brace"}`,
			want:    `{"text": "literal } brace"}`,
		},
		{
			name:    "no object",
			content: "plain text",
			want:    "",
		},
		{
			name:    "unbalanced",
			content: `{"summary": "oops"`,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.content); got != tt.want {
				t.Errorf("extractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}
