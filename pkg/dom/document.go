package dom

import (
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/vango-dev/folio/pkg/protocol"
	"github.com/vango-dev/folio/pkg/render"
	"github.com/vango-dev/folio/pkg/vdom"
	"github.com/vango-dev/folio/pkg/view"
)

// InsertedPrefix prefixes hydration ids of elements created after render.
const InsertedPrefix = "d"

// Options configure a Document.
type Options struct {
	// Sink receives patches. Defaults to discarding them.
	Sink Sink

	// Logger receives debug diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// ViewportHeight is used until the client reports its layout.
	ViewportHeight float64
}

// Document is the DOM mirror of one page instance.
type Document struct {
	root   *html.Node
	byHID  map[view.Ref]*html.Node
	sink   Sink
	logger *slog.Logger

	renderer *render.Renderer

	listeners    map[view.Ref]map[string][]view.Handler
	docListeners map[string][]view.Handler
	observers    map[uint32]*observer
	nextObserver uint32

	scrollY        float64
	viewportHeight float64
	offsets        map[view.Ref]float64
}

// Parse builds a Document from rendered HTML.
func Parse(r io.Reader, opts Options) (*Document, error) {
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, err
	}

	if opts.Sink == nil {
		opts.Sink = discard{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	d := &Document{
		root:   root,
		byHID:  make(map[view.Ref]*html.Node),
		sink:   opts.Sink,
		logger: opts.Logger.With("component", "dom"),
		renderer: render.NewRenderer(render.RendererConfig{
			HIDs: vdom.NewPrefixedHIDGenerator(InsertedPrefix),
		}),
		listeners:      make(map[view.Ref]map[string][]view.Handler),
		docListeners:   make(map[string][]view.Handler),
		observers:      make(map[uint32]*observer),
		viewportHeight: opts.ViewportHeight,
		offsets:        make(map[view.Ref]float64),
	}
	d.index(root)
	return d, nil
}

// ParseString is Parse for an HTML string.
func ParseString(s string, opts Options) (*Document, error) {
	return Parse(strings.NewReader(s), opts)
}

// HTML serializes the current mirror.
func (d *Document) HTML() string {
	return htmlquery.OutputHTML(d.root, true)
}

// index registers every element with a data-hid below n.
func (d *Document) index(n *html.Node) {
	walk(n, func(el *html.Node) {
		if hid := attr(el, render.HIDAttr); hid != "" {
			d.byHID[view.Ref(hid)] = el
		}
	})
}

// unindex forgets every element below n, including listeners and
// observations attached to them.
func (d *Document) unindex(n *html.Node) {
	walk(n, func(el *html.Node) {
		ref := view.Ref(attr(el, render.HIDAttr))
		if ref == "" {
			return
		}
		delete(d.byHID, ref)
		delete(d.listeners, ref)
		delete(d.offsets, ref)
		for _, o := range d.observers {
			delete(o.targets, ref)
		}
	})
}

func (d *Document) node(ref view.Ref) *html.Node {
	if ref == "" {
		return nil
	}
	return d.byHID[ref]
}

func (d *Document) ref(n *html.Node) view.Ref {
	return view.Ref(attr(n, render.HIDAttr))
}

// Query returns the first element matching sel in document order.
func (d *Document) Query(sel view.Selector) (view.Ref, bool) {
	refs := d.QueryAll(sel)
	if len(refs) == 0 {
		return "", false
	}
	return refs[0], true
}

// QueryAll returns all addressable elements matching sel in document order.
func (d *Document) QueryAll(sel view.Selector) []view.Ref {
	return d.queryFrom(d.root, string(sel))
}

// QueryWithin returns the first descendant of root matching sel.
func (d *Document) QueryWithin(root view.Ref, sel view.Selector) (view.Ref, bool) {
	n := d.node(root)
	if n == nil {
		return "", false
	}
	expr := string(sel)
	if strings.HasPrefix(expr, "//") {
		expr = "." + expr
	}
	refs := d.queryFrom(n, expr)
	if len(refs) == 0 {
		return "", false
	}
	return refs[0], true
}

func (d *Document) queryFrom(top *html.Node, expr string) []view.Ref {
	nodes, err := htmlquery.QueryAll(top, expr)
	if err != nil {
		d.logger.Debug("invalid selector", "selector", expr, "error", err)
		return nil
	}
	if len(nodes) > 1 && strings.Contains(expr, "|") {
		d.sortDocumentOrder(nodes)
	}

	refs := make([]view.Ref, 0, len(nodes))
	for _, n := range nodes {
		if ref := d.ref(n); ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}

// sortDocumentOrder orders union results, which the evaluator may return
// grouped by operand.
func (d *Document) sortDocumentOrder(nodes []*html.Node) {
	pos := make(map[*html.Node]int)
	i := 0
	walk(d.root, func(n *html.Node) {
		pos[n] = i
		i++
	})
	sort.SliceStable(nodes, func(a, b int) bool {
		return pos[nodes[a]] < pos[nodes[b]]
	})
}

// Contains reports whether node is ancestor or a descendant of it.
func (d *Document) Contains(ancestor, node view.Ref) bool {
	a, n := d.node(ancestor), d.node(node)
	if a == nil || n == nil {
		return false
	}
	for ; n != nil; n = n.Parent {
		if n == a {
			return true
		}
	}
	return false
}

// Attached reports whether ref is part of the document.
func (d *Document) Attached(ref view.Ref) bool {
	return d.node(ref) != nil
}

// Attr returns an attribute value.
func (d *Document) Attr(ref view.Ref, name string) (string, bool) {
	n := d.node(ref)
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Text returns the element's text content.
func (d *Document) Text(ref view.Ref) string {
	n := d.node(ref)
	if n == nil {
		return ""
	}
	return htmlquery.InnerText(n)
}

// SetText replaces the element's children with a single text node.
func (d *Document) SetText(ref view.Ref, text string) {
	n := d.node(ref)
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		d.unindex(c)
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	d.sink.Emit(protocol.NewSetTextPatch(string(ref), text))
}

// HasClass reports whether the element carries class.
func (d *Document) HasClass(ref view.Ref, class string) bool {
	n := d.node(ref)
	if n == nil {
		return false
	}
	for _, c := range classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds class. Nothing is emitted if the element already has it.
func (d *Document) AddClass(ref view.Ref, class string) {
	n := d.node(ref)
	if n == nil || d.HasClass(ref, class) {
		return
	}
	setClasses(n, append(classes(n), class))
	d.sink.Emit(protocol.NewAddClassPatch(string(ref), class))
}

// RemoveClass removes class. Nothing is emitted if the element lacks it.
func (d *Document) RemoveClass(ref view.Ref, class string) {
	n := d.node(ref)
	if n == nil || !d.HasClass(ref, class) {
		return
	}
	var kept []string
	for _, c := range classes(n) {
		if c != class {
			kept = append(kept, c)
		}
	}
	setClasses(n, kept)
	d.sink.Emit(protocol.NewRemoveClassPatch(string(ref), class))
}

// ToggleClass flips class.
func (d *Document) ToggleClass(ref view.Ref, class string) {
	if d.HasClass(ref, class) {
		d.RemoveClass(ref, class)
		return
	}
	d.AddClass(ref, class)
}

// SetStyle sets one inline style property.
func (d *Document) SetStyle(ref view.Ref, property, value string) {
	n := d.node(ref)
	if n == nil {
		return
	}
	style := parseStyle(attr(n, "style"))
	if cur, ok := style.get(property); ok && cur == value {
		return
	}
	style.set(property, value)
	setAttr(n, "style", style.String())
	d.sink.Emit(protocol.NewSetStylePatch(string(ref), property, value))
}

// Style returns one inline style property.
func (d *Document) Style(ref view.Ref, property string) string {
	n := d.node(ref)
	if n == nil {
		return ""
	}
	v, _ := parseStyle(attr(n, "style")).get(property)
	return v
}

// SetDisabled sets or clears the disabled attribute.
func (d *Document) SetDisabled(ref view.Ref, disabled bool) {
	n := d.node(ref)
	if n == nil {
		return
	}
	_, has := d.Attr(ref, "disabled")
	switch {
	case disabled && !has:
		setAttr(n, "disabled", "")
		d.sink.Emit(protocol.NewSetAttrPatch(string(ref), "disabled", ""))
	case !disabled && has:
		removeAttr(n, "disabled")
		d.sink.Emit(protocol.NewRemoveAttrPatch(string(ref), "disabled"))
	}
}

// ResetForm restores a form's controls to their initial values. Control
// values live in the browser, so only the patch is emitted.
func (d *Document) ResetForm(ref view.Ref) {
	n := d.node(ref)
	if n == nil || n.Data != "form" {
		return
	}
	d.sink.Emit(protocol.NewResetFormPatch(string(ref)))
}

// Append renders node and appends it to parent.
func (d *Document) Append(parent view.Ref, node *vdom.VNode) view.Ref {
	p := d.node(parent)
	if p == nil || node == nil {
		return ""
	}

	markup, err := d.renderer.RenderToString(node)
	if err != nil {
		d.logger.Error("render appended node", "error", err)
		return ""
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), p)
	if err != nil {
		d.logger.Error("parse appended node", "error", err)
		return ""
	}
	for _, n := range nodes {
		p.AppendChild(n)
		d.index(n)
	}
	d.sink.Emit(protocol.NewInsertHTMLPatch(string(parent), markup))
	return view.Ref(node.HID)
}

// Remove detaches ref from the document.
func (d *Document) Remove(ref view.Ref) {
	n := d.node(ref)
	if n == nil || n.Parent == nil {
		return
	}
	d.unindex(n)
	n.Parent.RemoveChild(n)
	d.sink.Emit(protocol.NewRemoveNodePatch(string(ref)))
}

// InjectStyle adds a <style> element with the given id to the head.
func (d *Document) InjectStyle(id, css string) bool {
	if n := htmlquery.FindOne(d.root, string(view.ByID(id))); n != nil {
		return false
	}
	head, ok := d.Query(view.ByTag("head"))
	if !ok {
		return false
	}
	return d.Append(head, vdom.Style(vdom.ID(id), vdom.Text(css))) != ""
}

// ScrollTo scrolls the window.
func (d *Document) ScrollTo(y float64, smooth bool) {
	d.sink.Emit(protocol.NewScrollToPatch(y, smooth))
}

// ScrollY returns the last reported scroll position.
func (d *Document) ScrollY() float64 { return d.scrollY }

// ViewportHeight returns the last reported viewport height.
func (d *Document) ViewportHeight() float64 { return d.viewportHeight }

// OffsetTop returns the last reported offset of ref, or 0 if unknown.
func (d *Document) OffsetTop(ref view.Ref) float64 { return d.offsets[ref] }

var _ view.View = (*Document)(nil)
