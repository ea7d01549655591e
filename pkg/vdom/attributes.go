package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute (named to avoid conflict with Style element).
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("prevent", "click") → data-prevent="click"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Links and resources

func Href(url string) Attr      { return attr("href", url) }
func Src(url string) Attr       { return attr("src", url) }
func Rel(rel string) Attr       { return attr("rel", rel) }
func Target(t string) Attr      { return attr("target", t) }
func Alt(text string) Attr      { return attr("alt", text) }
func Charset(cs string) Attr    { return attr("charset", cs) }
func Lang(lang string) Attr     { return attr("lang", lang) }
func Content(c string) Attr     { return attr("content", c) }
func NameAttr(n string) Attr    { return attr("name", n) }
func Defer() Attr               { return attr("defer", true) }
func TypeAttr(t string) Attr    { return attr("type", t) }
func Placeholder(p string) Attr { return attr("placeholder", p) }
func Value(v string) Attr       { return attr("value", v) }
func For(id string) Attr        { return attr("for", id) }
func Rows(n int) Attr           { return attr("rows", n) }
func MaxLength(n int) Attr      { return attr("maxlength", n) }

// Boolean attributes

// Required marks a form control as required.
func Required() Attr { return attr("required", true) }

// Disabled sets the disabled attribute when d is true.
func Disabled(d bool) Attr { return attr("disabled", d) }

// Attribute creates an arbitrary attribute.
func Attribute(key string, value any) Attr { return attr(key, value) }
