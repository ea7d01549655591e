package vtest

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vango-dev/folio/pkg/clock"
	"github.com/vango-dev/folio/pkg/content"
	"github.com/vango-dev/folio/pkg/dom"
	"github.com/vango-dev/folio/pkg/page"
	"github.com/vango-dev/folio/pkg/protocol"
	"github.com/vango-dev/folio/pkg/site"
	"github.com/vango-dev/folio/pkg/toast"
	"github.com/vango-dev/folio/pkg/view"
)

// Default layout of a harness page.
const (
	DefaultViewportHeight = 900
	DefaultSectionHeight  = 1000
)

// Epoch is the fake clock's start time.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// PageBuilder allows fluent construction of test pages.
type PageBuilder struct {
	content  content.Content
	opts     page.Options
	viewport float64
	offsets  map[string]float64
}

// NewPage creates a builder for the sample content with default options.
func NewPage() *PageBuilder {
	opts := page.DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return &PageBuilder{
		content:  content.Default(),
		opts:     opts,
		viewport: DefaultViewportHeight,
		offsets:  make(map[string]float64),
	}
}

// WithContent replaces the page content.
func (b *PageBuilder) WithContent(c content.Content) *PageBuilder {
	b.content = c
	return b
}

// WithOptions adjusts the controller options.
func (b *PageBuilder) WithOptions(fn func(*page.Options)) *PageBuilder {
	fn(&b.opts)
	return b
}

// WithoutWelcome disables the welcome notification.
func (b *PageBuilder) WithoutWelcome() *PageBuilder {
	b.opts.WelcomeDelay = 0
	return b
}

// WithViewport sets the reported viewport height.
func (b *PageBuilder) WithViewport(height float64) *PageBuilder {
	b.viewport = height
	return b
}

// WithSectionOffsets overrides section offsets by section id. Sections
// not listed are placed DefaultSectionHeight apart in document order.
func (b *PageBuilder) WithSectionOffsets(offsets map[string]float64) *PageBuilder {
	for id, top := range offsets {
		b.offsets[id] = top
	}
	return b
}

// Build renders the page, reports its layout and initializes a
// controller on a fake clock.
func (b *PageBuilder) Build(t testing.TB) *Page {
	t.Helper()

	rendered, err := site.Render(b.content, site.Options{})
	if err != nil {
		t.Fatalf("vtest: render page: %v", err)
	}

	rec := &dom.Recorder{}
	doc, err := dom.Parse(bytes.NewReader(rendered.HTML), dom.Options{
		Sink:           rec,
		Logger:         b.opts.Logger,
		ViewportHeight: b.viewport,
	})
	if err != nil {
		t.Fatalf("vtest: parse page: %v", err)
	}

	p := &Page{
		t:       t,
		Doc:     doc,
		Clock:   clock.NewFake(Epoch),
		Patches: rec,
		offsets: make(map[string]float64),
	}

	layout := make(map[view.Ref]float64)
	for i, ref := range doc.QueryAll(view.Selector("//section[@id]")) {
		id, _ := doc.Attr(ref, "id")
		top, ok := b.offsets[id]
		if !ok {
			top = float64(i * DefaultSectionHeight)
		}
		layout[ref] = top
		p.offsets[id] = top
	}
	doc.SetLayout(b.viewport, layout)

	p.Controller = page.New(doc, p.Clock, b.opts)
	p.Controller.Init()
	return p
}

// Page is a live page under test.
type Page struct {
	t testing.TB

	Doc        *dom.Document
	Clock      *clock.Fake
	Controller *page.Controller
	Patches    *dom.Recorder

	offsets map[string]float64
}

// Ref returns the first element matching sel, failing the test if there
// is none.
func (p *Page) Ref(sel view.Selector) view.Ref {
	p.t.Helper()
	ref, ok := p.Doc.Query(sel)
	if !ok {
		p.t.Fatalf("vtest: no element matches %s", sel)
	}
	return ref
}

// SectionOffset returns the offset reported for a section.
func (p *Page) SectionOffset(id string) float64 {
	return p.offsets[id]
}

// Relayout reports new section offsets by section id, as the client
// does after content changes. Sections not listed keep their offsets.
func (p *Page) Relayout(offsets map[string]float64) {
	p.t.Helper()
	for id, top := range offsets {
		p.offsets[id] = top
	}
	layout := make(map[view.Ref]float64, len(p.offsets))
	for id, top := range p.offsets {
		layout[p.Ref(view.ByID(id))] = top
	}
	p.Doc.SetLayout(p.Doc.ViewportHeight(), layout)
}

// Click clicks the first element matching sel.
func (p *Page) Click(sel view.Selector) {
	p.t.Helper()
	p.Doc.Click(p.Ref(sel))
}

// Hover moves the pointer onto the first element matching sel.
func (p *Page) Hover(sel view.Selector) {
	p.t.Helper()
	p.Doc.Hover(p.Ref(sel))
}

// Leave moves the pointer off the first element matching sel.
func (p *Page) Leave(sel view.Selector) {
	p.t.Helper()
	p.Doc.Leave(p.Ref(sel))
}

// Scroll scrolls the window to y.
func (p *Page) Scroll(y float64) {
	p.Doc.ScrollWindow(y)
}

// Submit submits the contact form with the given values.
func (p *Page) Submit(fields map[string]string) {
	p.t.Helper()
	p.Doc.Submit(p.Ref(view.ByID("contact-form")), fields)
}

// Intersect reports the first element matching sel as visible with the
// given ratio to every observer watching it.
func (p *Page) Intersect(sel view.Selector, ratio float64) {
	p.t.Helper()
	p.Doc.Intersect(p.Ref(sel), ratio)
}

// Advance moves the fake clock forward, running due timers.
func (p *Page) Advance(d time.Duration) {
	p.Clock.Advance(d)
}

// Notifications returns the attached notification elements.
func (p *Page) Notifications() []view.Ref {
	return p.Doc.QueryAll(view.ByClass(toast.ClassNotification))
}

// Notification returns the message and kind of the only visible
// notification, failing the test unless exactly one is attached.
func (p *Page) Notification() (string, toast.Kind) {
	p.t.Helper()
	refs := p.Notifications()
	if len(refs) != 1 {
		p.t.Fatalf("vtest: %d notifications attached, want 1", len(refs))
	}
	msg, _ := p.Doc.QueryWithin(refs[0], view.ByClass(toast.ClassMessage))
	for _, k := range []toast.Kind{toast.KindSuccess, toast.KindError, toast.KindInfo} {
		if p.Doc.HasClass(refs[0], toast.ClassNotification+"--"+string(k)) {
			return p.Doc.Text(msg), k
		}
	}
	return p.Doc.Text(msg), ""
}

// PatchesOf returns the recorded patches with the given op, draining
// nothing.
func (p *Page) PatchesOf(op protocol.PatchOp) []protocol.Patch {
	var out []protocol.Patch
	for _, patch := range p.Patches.Patches() {
		if patch.Op == op {
			out = append(out, patch)
		}
	}
	return out
}

// ExpectClass asserts that the first element matching sel has class.
func (p *Page) ExpectClass(sel view.Selector, class string) {
	p.t.Helper()
	if !p.Doc.HasClass(p.Ref(sel), class) {
		p.t.Errorf("expected %s to have class %q", sel, class)
	}
}

// ExpectNoClass asserts that the first element matching sel lacks class.
func (p *Page) ExpectNoClass(sel view.Selector, class string) {
	p.t.Helper()
	if p.Doc.HasClass(p.Ref(sel), class) {
		p.t.Errorf("expected %s not to have class %q", sel, class)
	}
}

// ExpectText asserts the text content of the first element matching sel.
func (p *Page) ExpectText(sel view.Selector, want string) {
	p.t.Helper()
	if got := p.Doc.Text(p.Ref(sel)); got != want {
		p.t.Errorf("text of %s = %q, want %q", sel, got, want)
	}
}

// ExpectStyle asserts one inline style property of the first element
// matching sel.
func (p *Page) ExpectStyle(sel view.Selector, property, want string) {
	p.t.Helper()
	if got := p.Doc.Style(p.Ref(sel), property); got != want {
		p.t.Errorf("style %s of %s = %q, want %q", property, sel, got, want)
	}
}
