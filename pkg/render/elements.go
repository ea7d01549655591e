package render

import "github.com/vango-dev/folio/pkg/vdom"

// rawTextElements hold text that must be written without escaping.
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}

// inlineElements are elements that are typically rendered inline
// and don't need newlines in pretty-printed output.
var inlineElements = map[string]bool{
	"a":        true,
	"b":        true,
	"br":       true,
	"button":   true,
	"code":     true,
	"em":       true,
	"i":        true,
	"label":    true,
	"small":    true,
	"span":     true,
	"strong":   true,
	"textarea": true,
	"title":    true,
}

// isInlineElement returns true if the tag is an inline element.
func isInlineElement(tag string) bool {
	return inlineElements[tag] || rawTextElements[tag]
}

// booleanAttrs are attributes that don't need a value.
// When true, they're rendered as just the attribute name.
var booleanAttrs = map[string]bool{
	"async":      true,
	"autofocus":  true,
	"checked":    true,
	"defer":      true,
	"disabled":   true,
	"hidden":     true,
	"multiple":   true,
	"novalidate": true,
	"readonly":   true,
	"required":   true,
	"selected":   true,
}

// isBooleanAttr returns true if the attribute is a boolean attribute.
func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}

// isVoidElement returns true if the tag is a void element.
func isVoidElement(tag string) bool {
	return vdom.IsVoidElement(tag)
}
