package vdom

import (
	"testing"
)

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindRaw, "Raw"},
		{VKind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestCreateElement(t *testing.T) {
	node := Div(
		ID("main"),
		Class("card"),
		nil,
		[]Attr{Data("prevent", "click"), {}},
		H1("Title"),
		[]*VNode{P(Text("a")), nil, P(Text("b"))},
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("got %v <%s>, want Element <div>", node.Kind, node.Tag)
	}
	if node.Props["id"] != "main" {
		t.Errorf("id = %v, want main", node.Props["id"])
	}
	if node.Props["data-prevent"] != "click" {
		t.Errorf("data-prevent = %v, want click", node.Props["data-prevent"])
	}
	if len(node.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3", len(node.Children))
	}
	if h1 := node.Children[0]; h1.Children[0].Kind != KindText || h1.Children[0].Text != "Title" {
		t.Errorf("string argument should become a text child, got %+v", h1.Children[0])
	}
}

func TestClassAccumulates(t *testing.T) {
	node := Div(Class("btn"), Class("btn-primary"))
	if got := node.StringProp("class"); got != "btn btn-primary" {
		t.Errorf("class = %q, want %q", got, "btn btn-primary")
	}

	node = Div(Class("a", "b"))
	if got := node.StringProp("class"); got != "a b" {
		t.Errorf("class = %q, want %q", got, "a b")
	}
}

func TestIsVoidElement(t *testing.T) {
	for _, tag := range []string{"input", "br", "meta", "link", "img"} {
		if !IsVoidElement(tag) {
			t.Errorf("IsVoidElement(%q) = false, want true", tag)
		}
	}
	for _, tag := range []string{"div", "textarea", "script"} {
		if IsVoidElement(tag) {
			t.Errorf("IsVoidElement(%q) = true, want false", tag)
		}
	}
}

func TestFragmentAndHelpers(t *testing.T) {
	frag := Fragment("x", nil, Span(), []*VNode{nil, Strong()})
	if len(frag.Children) != 3 {
		t.Errorf("len(Children) = %d, want 3", len(frag.Children))
	}

	if If(false, Div()) != nil {
		t.Error("If(false) should return nil")
	}
	if If(true, Div()) == nil {
		t.Error("If(true) should return the node")
	}

	items := []string{"a", "", "c"}
	nodes := Range(items, func(s string, i int) *VNode {
		if s == "" {
			return nil
		}
		return Li(s)
	})
	if len(nodes) != 2 {
		t.Errorf("Range produced %d nodes, want 2", len(nodes))
	}
}

func TestPrefixedHIDGenerator(t *testing.T) {
	gen := NewPrefixedHIDGenerator("d")
	if got := gen.Next(); got != "d1" {
		t.Errorf("Next() = %q, want d1", got)
	}
	if got := gen.Next(); got != "d2" {
		t.Errorf("Next() = %q, want d2", got)
	}
	gen.Reset()
	if got := gen.Next(); got != "d1" {
		t.Errorf("after Reset Next() = %q, want d1", got)
	}
}
