// Package view defines the capabilities the page controller needs from a
// rendered document: querying, mutating classes, text and styles, scrolling,
// event subscription and intersection observation.
//
// The controller never touches a concrete document. pkg/dom implements View
// over a server-side mirror of the page that is kept in sync with the
// browser through the live protocol.
package view

import "github.com/vango-dev/folio/pkg/vdom"

// Ref identifies an element of the document. It is the element's hydration
// id; the zero Ref means "no element".
type Ref string

// IsZero reports whether r refers to nothing.
func (r Ref) IsZero() bool { return r == "" }

// Event types understood by On and OnDocument.
const (
	Click      = "click"
	Submit     = "submit"
	MouseEnter = "mouseenter"
	MouseLeave = "mouseleave"
	Scroll     = "scroll"
)

// Event is delivered to listeners.
type Event struct {
	// Type is one of the event type constants.
	Type string

	// Target is the element the event originated on (zero for window events).
	Target Ref

	// Current is the element the listener is attached to.
	Current Ref

	// Fields holds the submitted form values for submit events.
	Fields map[string]string

	// ScrollY is the window scroll position for scroll events.
	ScrollY float64
}

// Handler reacts to an event.
type Handler func(Event)

// ListenOptions configure an element listener.
type ListenOptions struct {
	// PreventDefault suppresses the browser's default action (navigation
	// for anchors, page reload for forms).
	PreventDefault bool
}

// ObserverOptions configure an intersection observer.
type ObserverOptions struct {
	// Threshold is the visible fraction at which an element counts as
	// intersecting.
	Threshold float64

	// RootMargin grows or shrinks the viewport, in CSS margin syntax.
	RootMargin string
}

// Entry is one intersection observation.
type Entry struct {
	Target       Ref
	Ratio        float64
	Intersecting bool
}

// Observer watches elements for viewport intersection.
type Observer interface {
	Observe(ref Ref)
	Unobserve(ref Ref)
}

// View is the document capability set.
type View interface {
	// Query returns the first element matching sel in document order.
	Query(sel Selector) (Ref, bool)

	// QueryAll returns all elements matching sel in document order.
	QueryAll(sel Selector) []Ref

	// QueryWithin returns the first descendant of root matching sel.
	QueryWithin(root Ref, sel Selector) (Ref, bool)

	// Contains reports whether node is ancestor or the same element.
	Contains(ancestor, node Ref) bool

	// Attached reports whether ref is still part of the document.
	Attached(ref Ref) bool

	Attr(ref Ref, name string) (string, bool)
	Text(ref Ref) string
	SetText(ref Ref, text string)

	HasClass(ref Ref, class string) bool
	AddClass(ref Ref, class string)
	RemoveClass(ref Ref, class string)
	ToggleClass(ref Ref, class string)

	SetStyle(ref Ref, property, value string)
	SetDisabled(ref Ref, disabled bool)
	ResetForm(ref Ref)

	// Append renders node and appends it as the last child of parent.
	Append(parent Ref, node *vdom.VNode) Ref

	// Remove detaches ref from the document. Removing a detached
	// element is a no-op.
	Remove(ref Ref)

	// InjectStyle adds a <style id=id> element to the head unless an
	// element with that id exists. It reports whether it injected.
	InjectStyle(id, css string) bool

	// ScrollTo scrolls the window to the vertical position y.
	ScrollTo(y float64, smooth bool)
	ScrollY() float64
	ViewportHeight() float64

	// OffsetTop is the element's distance from the top of the document.
	OffsetTop(ref Ref) float64

	// On attaches a listener to an element. Click and submit events bubble
	// from descendants.
	On(ref Ref, event string, opts ListenOptions, h Handler)

	// OnDocument attaches a listener that sees every event of a type
	// after element listeners ran.
	OnDocument(event string, h Handler)

	// Observe creates an intersection observer. fn runs once per entry.
	Observe(opts ObserverOptions, fn func(Entry)) Observer
}
