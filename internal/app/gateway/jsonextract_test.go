package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			text: `{"crisis_level": "low"}`,
			want: `{"crisis_level": "low"}`,
			ok:   true,
		},
		{
			name: "leading prose",
			text: "Sure! Here is the assessment you asked for:\n{\"crisis_level\": \"medium\", \"confidence\": 0.7}\nLet me know if you need more.",
			want: `{"crisis_level": "medium", "confidence": 0.7}`,
			ok:   true,
		},
		{
			name: "nested object",
			text: `prefix {"a": {"b": 1}, "c": [2, 3]} suffix`,
			want: `{"a": {"b": 1}, "c": [2, 3]}`,
			ok:   true,
		},
		{
			name: "brace inside string value",
			text: `{"note": "use {988} now", "level": "high"}`,
			want: `{"note": "use {988} now", "level": "high"}`,
			ok:   true,
		},
		{
			name: "escaped quote inside string",
			text: `{"note": "she said \"help\"", "ok": true}`,
			want: `{"note": "she said \"help\"", "ok": true}`,
			ok:   true,
		},
		{
			name: "no JSON at all",
			text: "I'm sorry, I can't produce structured output right now.",
			ok:   false,
		},
		{
			name: "unbalanced braces",
			text: `{"crisis_level": "low"`,
			ok:   false,
		},
		{
			name: "invalid first region, valid second",
			text: `{not json} and then {"fine": true}`,
			want: `{"fine": true}`,
			ok:   true,
		},
		{
			name: "empty input",
			text: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.text)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
