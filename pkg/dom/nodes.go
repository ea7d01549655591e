package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// walk calls fn for every element node below and including n.
func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

func classes(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

func setClasses(n *html.Node, cs []string) {
	if len(cs) == 0 {
		removeAttr(n, "class")
		return
	}
	setAttr(n, "class", strings.Join(cs, " "))
}

// styleDecl is an ordered list of inline style declarations.
type styleDecl [][2]string

func parseStyle(s string) styleDecl {
	var decl styleDecl
	for _, part := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(strings.ToLower(prop))
		if prop == "" {
			continue
		}
		decl = append(decl, [2]string{prop, strings.TrimSpace(val)})
	}
	return decl
}

func (s styleDecl) get(prop string) (string, bool) {
	for _, kv := range s {
		if kv[0] == prop {
			return kv[1], true
		}
	}
	return "", false
}

func (s *styleDecl) set(prop, val string) {
	for i := range *s {
		if (*s)[i][0] == prop {
			(*s)[i][1] = val
			return
		}
	}
	*s = append(*s, [2]string{prop, val})
}

func (s styleDecl) String() string {
	parts := make([]string, len(s))
	for i, kv := range s {
		parts[i] = kv[0] + ": " + kv[1]
	}
	return strings.Join(parts, "; ")
}
