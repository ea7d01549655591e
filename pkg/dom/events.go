package dom

import (
	"github.com/vango-dev/folio/pkg/protocol"
	"github.com/vango-dev/folio/pkg/view"
)

// On attaches a listener to an element.
func (d *Document) On(ref view.Ref, event string, opts view.ListenOptions, h view.Handler) {
	if d.node(ref) == nil || h == nil {
		return
	}
	byType := d.listeners[ref]
	if byType == nil {
		byType = make(map[string][]view.Handler)
		d.listeners[ref] = byType
	}
	byType[event] = append(byType[event], h)

	// Clicks are always forwarded; the client needs to know about
	// everything else and about suppressed defaults.
	if event != view.Click || opts.PreventDefault {
		d.sink.Emit(protocol.NewListenPatch(string(ref), event, opts.PreventDefault))
	}
}

// OnDocument attaches a document-level listener.
func (d *Document) OnDocument(event string, h view.Handler) {
	if h == nil {
		return
	}
	d.docListeners[event] = append(d.docListeners[event], h)
}

// Observe creates an intersection observer.
func (d *Document) Observe(opts view.ObserverOptions, fn func(view.Entry)) view.Observer {
	d.nextObserver++
	o := &observer{
		id:      d.nextObserver,
		doc:     d,
		opts:    opts,
		fn:      fn,
		targets: make(map[view.Ref]bool),
	}
	d.observers[o.id] = o
	return o
}

type observer struct {
	id      uint32
	doc     *Document
	opts    view.ObserverOptions
	fn      func(view.Entry)
	targets map[view.Ref]bool
}

func (o *observer) Observe(ref view.Ref) {
	if o.doc.node(ref) == nil || o.targets[ref] {
		return
	}
	o.targets[ref] = true
	o.doc.sink.Emit(protocol.NewObservePatch(string(ref), o.id, o.opts.Threshold, o.opts.RootMargin))
}

func (o *observer) Unobserve(ref view.Ref) {
	if !o.targets[ref] {
		return
	}
	delete(o.targets, ref)
	o.doc.sink.Emit(protocol.NewUnobservePatch(string(ref), o.id))
}

// Observing reports whether any observer watches ref.
func (d *Document) Observing(ref view.Ref) bool {
	for _, o := range d.observers {
		if o.targets[ref] {
			return true
		}
	}
	return false
}

// Dispatch applies a client event to the document and runs listeners.
// Events for elements that no longer exist are dropped.
func (d *Document) Dispatch(ev *protocol.Event) {
	target := view.Ref(ev.HID)

	switch ev.Type {
	case protocol.EventClick:
		d.bubble(view.Event{Type: view.Click, Target: target})

	case protocol.EventSubmit:
		e := view.Event{Type: view.Submit, Target: target}
		if data, ok := ev.Payload.(*protocol.SubmitEventData); ok {
			e.Fields = data.Fields
		}
		d.bubble(e)

	case protocol.EventMouseEnter:
		d.direct(view.Event{Type: view.MouseEnter, Target: target})

	case protocol.EventMouseLeave:
		d.direct(view.Event{Type: view.MouseLeave, Target: target})

	case protocol.EventScroll:
		if data, ok := ev.Payload.(*protocol.ScrollEventData); ok {
			d.scrollY = data.ScrollY
		}
		e := view.Event{Type: view.Scroll, ScrollY: d.scrollY}
		for _, h := range d.docListeners[view.Scroll] {
			h(e)
		}

	case protocol.EventLayout:
		data, ok := ev.Payload.(*protocol.LayoutEventData)
		if !ok {
			return
		}
		d.viewportHeight = data.ViewportHeight
		d.scrollY = data.ScrollY
		for hid, top := range data.Offsets {
			if ref := view.Ref(hid); d.node(ref) != nil {
				d.offsets[ref] = top
			}
		}

	case protocol.EventIntersect:
		data, ok := ev.Payload.(*protocol.IntersectEventData)
		if !ok {
			return
		}
		o := d.observers[data.ObserverID]
		if o == nil || !o.targets[target] {
			d.logger.Debug("stale intersection", "hid", ev.HID, "observer", data.ObserverID)
			return
		}
		o.fn(view.Entry{Target: target, Ratio: data.Ratio, Intersecting: data.Intersecting})

	default:
		d.logger.Debug("unhandled event", "type", ev.Type.String(), "hid", ev.HID)
	}
}

// bubble runs listeners from the target up through its ancestors, then
// document listeners.
func (d *Document) bubble(e view.Event) {
	for n := d.node(e.Target); n != nil; n = n.Parent {
		ref := d.ref(n)
		if ref == "" {
			continue
		}
		for _, h := range d.listeners[ref][e.Type] {
			e.Current = ref
			h(e)
		}
	}
	e.Current = ""
	for _, h := range d.docListeners[e.Type] {
		h(e)
	}
}

// direct runs listeners attached to the target only.
func (d *Document) direct(e view.Event) {
	e.Current = e.Target
	for _, h := range d.listeners[e.Target][e.Type] {
		h(e)
	}
}

// SetLayout records viewport height and element offsets, as a client
// layout report would.
func (d *Document) SetLayout(viewportHeight float64, offsets map[view.Ref]float64) {
	data := &protocol.LayoutEventData{
		ViewportHeight: viewportHeight,
		ScrollY:        d.scrollY,
		Offsets:        make(map[string]float64, len(offsets)),
	}
	for ref, top := range offsets {
		data.Offsets[string(ref)] = top
	}
	d.Dispatch(&protocol.Event{Type: protocol.EventLayout, Payload: data})
}

// Click simulates a click on ref.
func (d *Document) Click(ref view.Ref) {
	d.Dispatch(&protocol.Event{Type: protocol.EventClick, HID: string(ref)})
}

// Submit simulates submitting the form ref with the given field values.
func (d *Document) Submit(ref view.Ref, fields map[string]string) {
	d.Dispatch(&protocol.Event{
		Type:    protocol.EventSubmit,
		HID:     string(ref),
		Payload: &protocol.SubmitEventData{Fields: fields},
	})
}

// Hover simulates the pointer entering ref.
func (d *Document) Hover(ref view.Ref) {
	d.Dispatch(&protocol.Event{Type: protocol.EventMouseEnter, HID: string(ref)})
}

// Leave simulates the pointer leaving ref.
func (d *Document) Leave(ref view.Ref) {
	d.Dispatch(&protocol.Event{Type: protocol.EventMouseLeave, HID: string(ref)})
}

// ScrollWindow simulates the window scrolling to y.
func (d *Document) ScrollWindow(y float64) {
	d.Dispatch(&protocol.Event{Type: protocol.EventScroll, Payload: &protocol.ScrollEventData{ScrollY: y}})
}

// Intersect simulates ref becoming visible with the given ratio. Every
// observer watching ref receives an entry; it counts as intersecting when
// ratio is positive and reaches the observer's threshold.
func (d *Document) Intersect(ref view.Ref, ratio float64) {
	for id := uint32(1); id <= d.nextObserver; id++ {
		o := d.observers[id]
		if o == nil || !o.targets[ref] {
			continue
		}
		d.Dispatch(&protocol.Event{
			Type: protocol.EventIntersect,
			HID:  string(ref),
			Payload: &protocol.IntersectEventData{
				ObserverID:   id,
				Ratio:        ratio,
				Intersecting: ratio > 0 && ratio >= o.opts.Threshold,
			},
		})
	}
}
