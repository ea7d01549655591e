// Package dom keeps a server-side mirror of a rendered page and implements
// view.View on top of it.
//
// The mirror is parsed from the same HTML the browser received. Elements are
// addressed by their data-hid attribute. Every mutation updates the mirror
// and emits a protocol.Patch to a Sink; the live session batches those and
// sends them to the thin client, which applies them to the real DOM.
//
// Browser-side facts the server cannot compute (scroll position, viewport
// height, element offsets, intersections) arrive as protocol events and are
// fed in through Dispatch.
//
// A Document is not safe for concurrent use. The live session owns it from
// a single goroutine.
package dom
