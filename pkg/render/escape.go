package render

import "strings"

// textEscaper converts characters that are significant in HTML content.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// attrEscaper additionally encodes whitespace that would otherwise be
// normalized away inside attribute values.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

// EscapeHTML escapes text for safe inclusion in HTML content.
func EscapeHTML(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes text for safe inclusion in a double-quoted attribute.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
