package render

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"plain text", "Hello, World!", "Hello, World!"},
		{"ampersand", "Tom & Jerry", "Tom &amp; Jerry"},
		{"angle brackets", "a < b > c", "a &lt; b &gt; c"},
		{"quotes", `say "hi" it's`, "say &quot;hi&quot; it&#39;s"},
		{"script tag", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"already escaped", "&amp;", "&amp;amp;"},
		{"unicode", "héllo ✓", "héllo ✓"},
		{"newline kept", "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeHTML(tt.input); got != tt.expected {
				t.Errorf("EscapeHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "card", "card"},
		{"quote breakout", `x" onclick="evil()`, "x&quot; onclick=&quot;evil()"},
		{"whitespace", "a\tb\nc\rd", "a&#9;b&#10;c&#13;d"},
		{"css", "transform: translateY(-8px) scale(1.02)", "transform: translateY(-8px) scale(1.02)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeAttr(tt.input); got != tt.expected {
				t.Errorf("EscapeAttr(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
