package vdom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML converts an HTML fragment into VNodes so that every element in
// it is rendered with a hydration ID. The fragment is parsed in the context
// of a <div>. Comments are dropped.
func ParseHTML(fragment string) ([]*VNode, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, fmt.Errorf("vdom: parse fragment: %w", err)
	}

	out := make([]*VNode, 0, len(nodes))
	for _, n := range nodes {
		if v := fromHTML(n); v != nil {
			out = append(out, v)
		}
	}
	return out, nil
}

func fromHTML(n *html.Node) *VNode {
	switch n.Type {
	case html.TextNode:
		return Text(n.Data)
	case html.ElementNode:
		v := &VNode{
			Kind:     KindElement,
			Tag:      n.Data,
			Props:    make(Props, len(n.Attr)),
			Children: make([]*VNode, 0),
		}
		for _, a := range n.Attr {
			v.Props[a.Key] = a.Val
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := fromHTML(c); child != nil {
				v.Children = append(v.Children, child)
			}
		}
		return v
	default:
		return nil
	}
}
