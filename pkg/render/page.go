package render

import (
	"io"

	"github.com/vango-dev/folio/pkg/vdom"
)

// DefaultClientScript is the path the thin client is served from.
const DefaultClientScript = "/_folio/client.js"

// DefaultLiveURL is the WebSocket endpoint the thin client connects to.
const DefaultLiveURL = "/_folio/live"

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the page content. A <body> element is used as is, anything
	// else is wrapped in one.
	Body *vdom.VNode

	// Title is the page title
	Title string

	// Meta contains meta tags for the page
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets
	StyleSheets []string

	// ClientScript is the path to the thin client JavaScript.
	// Defaults to "/_folio/client.js" if not specified.
	ClientScript string

	// LiveURL is the WebSocket endpoint, relative or absolute.
	// Defaults to "/_folio/live".
	LiveURL string

	// PageVersion identifies the content the page was rendered from.
	// The live session refuses clients holding a different version.
	PageVersion string

	// Debug makes the thin client log to the console.
	Debug bool

	// Static leaves out the thin client. The page renders but never
	// connects to a live session.
	Static bool

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string // name attribute
	Content  string // content attribute
	Property string // property attribute (for OpenGraph)
}

// Document assembles the <html> tree for a page without rendering it.
func (r *Renderer) Document(page PageData) *vdom.VNode {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	var tail []*vdom.VNode
	if !page.Static {
		tail = append(tail, clientScript(page))
	}

	var body *vdom.VNode
	if b := page.Body; b != nil && b.Kind == vdom.KindElement && b.Tag == "body" {
		// Copy so rendering twice does not add a second script.
		cp := *b
		cp.Children = append(append([]*vdom.VNode(nil), b.Children...), tail...)
		body = &cp
	} else {
		args := []any{page.Body}
		for _, n := range tail {
			args = append(args, n)
		}
		body = vdom.Body(args...)
	}

	return vdom.Html(vdom.Lang(lang),
		head(page),
		body,
	)
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, r.Document(page)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// head renders the document head section.
func head(page PageData) *vdom.VNode {
	h := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.NameAttr("viewport"), vdom.Content("width=device-width, initial-scale=1")),
	)

	if page.Title != "" {
		h.Children = append(h.Children, vdom.Title(page.Title))
	}

	for _, meta := range page.Meta {
		m := vdom.Meta()
		if meta.Name != "" {
			m.Props["name"] = meta.Name
		}
		if meta.Property != "" {
			m.Props["property"] = meta.Property
		}
		m.Props["content"] = meta.Content
		h.Children = append(h.Children, m)
	}

	for _, href := range page.StyleSheets {
		h.Children = append(h.Children, vdom.Link(vdom.Rel("stylesheet"), vdom.Href(href)))
	}

	return h
}

// clientScript builds the thin client tag with its connection settings.
func clientScript(page PageData) *vdom.VNode {
	src := page.ClientScript
	if src == "" {
		src = DefaultClientScript
	}
	live := page.LiveURL
	if live == "" {
		live = DefaultLiveURL
	}

	script := vdom.Script(vdom.Src(src), vdom.Defer(), vdom.Data("live", live))
	if page.PageVersion != "" {
		script.Props["data-page-version"] = page.PageVersion
	}
	if page.Debug {
		script.Props["data-debug"] = "true"
	}
	return script
}
