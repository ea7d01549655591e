package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/folio/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Class("container"),
		vdom.H1(vdom.Text("Title")),
		vdom.P(vdom.Text("Content")),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `<div class="container" data-hid="h1"><h1 data-hid="h2">Title</h1><p data-hid="h3">Content</p></div>`
	if html != want {
		t.Errorf("got  %q\nwant %q", html, want)
	}
}

func TestRenderKeepsExistingHID(t *testing.T) {
	renderer := NewRenderer(RendererConfig{HIDs: vdom.NewPrefixedHIDGenerator("d")})

	node := vdom.Div(vdom.Span())
	node.HID = "custom"
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != `<div data-hid="custom"><span data-hid="d1"></span></div>` {
		t.Errorf("got %q", html)
	}
}

func TestRenderAttributes(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Input(
		vdom.TypeAttr("email"),
		vdom.ID("email"),
		vdom.Required(),
		vdom.Disabled(false),
		vdom.Placeholder(`Say "hi"`),
		vdom.Attribute("data-nil", nil),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `<input id="email" placeholder="Say &quot;hi&quot;" required type="email" data-hid="h1">`
	if html != want {
		t.Errorf("got  %q\nwant %q", html, want)
	}
}

func TestRenderRawTextElements(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Style(vdom.Text(".contact-content > * { opacity: 1; }"))
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, ".contact-content > *") {
		t.Errorf("style body should not be escaped, got %q", html)
	}
}

func TestRenderFragmentAndRaw(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Fragment(vdom.Raw("<b>bold</b>"), vdom.Text("&"))
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<b>bold</b>&amp;" {
		t.Errorf("got %q", html)
	}
}

func TestRenderDeterministicHIDs(t *testing.T) {
	build := func() *vdom.VNode {
		return vdom.Ul(vdom.Li("a"), vdom.Li("b"))
	}

	first, _ := NewRenderer(RendererConfig{}).RenderToString(build())
	second, _ := NewRenderer(RendererConfig{}).RenderToString(build())
	if first != second {
		t.Errorf("rendering the same tree twice differs:\n%s\n%s", first, second)
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true})

	html, err := renderer.RenderToString(vdom.Div(vdom.P("x")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "\n  <p") {
		t.Errorf("pretty output should indent children, got %q", html)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	if _, err := renderer.RenderToString(&vdom.VNode{Kind: vdom.VKind(42)}); err == nil {
		t.Error("expected error for unknown node kind")
	}
}

func TestRenderPage(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	var buf bytes.Buffer
	err := renderer.RenderPage(&buf, PageData{
		Title:       "Jane <Doe>",
		Meta:        []MetaTag{{Name: "description", Content: "Portfolio"}},
		StyleSheets: []string{"/assets/style.css"},
		Body:        vdom.Div(vdom.ID("app")),
		PageVersion: "v1",
	})
	if err != nil {
		t.Fatalf("RenderPage error: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>\n",
		`<html lang="en"`,
		`<title data-hid=`,
		"Jane &lt;Doe&gt;</title>",
		`<meta content="Portfolio" name="description"`,
		`<link href="/assets/style.css" rel="stylesheet"`,
		`<body data-hid=`,
		`<div id="app"`,
		`data-live="/_folio/live"`,
		`data-page-version="v1"`,
		`src="/_folio/client.js"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q\n%s", want, html)
		}
	}
	if strings.Contains(html, "data-debug") {
		t.Error("debug flag should be omitted by default")
	}
}

func TestDocumentKeepsBodyElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	body := vdom.Body(vdom.Class("home"))
	doc := renderer.Document(PageData{Body: body, Lang: "de"})
	if doc.StringProp("lang") != "de" {
		t.Errorf("lang = %q, want de", doc.StringProp("lang"))
	}
	if got := doc.Children[1]; got != body {
		t.Error("a <body> element should be used without wrapping")
	}
	last := body.Children[len(body.Children)-1]
	if last.Tag != "script" {
		t.Errorf("last body child = <%s>, want <script>", last.Tag)
	}
}

func TestRenderStaticPage(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	var buf bytes.Buffer
	err := renderer.RenderPage(&buf, PageData{
		Title:  "Static",
		Body:   vdom.Div(vdom.ID("app")),
		Static: true,
	})
	if err != nil {
		t.Fatalf("RenderPage error: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, `<div id="app"`) {
		t.Errorf("page missing body content\n%s", html)
	}
	if strings.Contains(html, "<script") {
		t.Errorf("static page should not load the thin client\n%s", html)
	}
}
