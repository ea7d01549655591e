// Package vdom provides the virtual node tree folio renders pages from.
//
// A VNode is an in-memory description of markup: elements, text, fragments
// and pre-rendered HTML. Trees are built with variadic factory functions and
// handed to pkg/render, which serializes them with a hydration id on every
// element so the live session can address nodes on the client.
//
// # Element API
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
//
// # Hydration
//
// AssignAllHIDs walks the tree and numbers every element. The same numbering
// is what the server-side DOM mirror reads back from the data-hid attribute.
package vdom
