package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "hello world", "hello world"},
		{"trims whitespace", "  hello  ", "hello"},
		{"ampersand", "fish & chips", "fish &amp; chips"},
		{"angle brackets", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"double quotes", `say "hi"`, "say &quot;hi&quot;"},
		{"single quotes", "it's fine", "it&#39;s fine"},
		{"ampersand not double escaped", "&lt;", "&amp;lt;"},
		{"whitespace only", "   \t\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}
