package view

import (
	"fmt"
	"strings"
)

// Selector is an XPath 1.0 expression evaluated against the document.
type Selector string

// String returns the expression.
func (s Selector) String() string { return string(s) }

// ByID selects the element with the given id.
func ByID(id string) Selector {
	return Selector(fmt.Sprintf("//*[@id=%s]", literal(id)))
}

// ByClass selects elements carrying class.
func ByClass(class string) Selector {
	return Selector("//*" + classPredicate(class))
}

// ByTag selects all <tag> elements.
func ByTag(tag string) Selector {
	return Selector("//" + tag)
}

// Union selects elements matching any of sels, in document order.
func Union(sels ...Selector) Selector {
	parts := make([]string, len(sels))
	for i, s := range sels {
		parts[i] = string(s)
	}
	return Selector(strings.Join(parts, " | "))
}

// Descendant selects elements matching the relative step below sel,
// e.g. Descendant(ByClass("nav-menu"), "a").
func Descendant(sel Selector, step string) Selector {
	return Selector(string(sel) + "//" + step)
}

// Children selects the element children of elements matching sel.
func Children(sel Selector) Selector {
	return Selector(string(sel) + "/*")
}

// HrefPrefix is a step matching anchors whose href starts with prefix.
func HrefPrefix(prefix string) string {
	return fmt.Sprintf("a[starts-with(@href, %s)]", literal(prefix))
}

// HasAttr is a step matching <tag> elements that carry attribute attr.
func HasAttr(tag, attr string) string {
	return fmt.Sprintf("%s[@%s]", tag, attr)
}

func classPredicate(class string) string {
	return fmt.Sprintf("[contains(concat(' ', normalize-space(@class), ' '), %s)]", literal(" "+class+" "))
}

// literal quotes s as an XPath string literal.
func literal(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	return "concat('" + strings.Join(parts, `', "'", '`) + "')"
}
