// Package render provides server-side rendering (SSR) of vdom trees.
//
// The renderer converts VNode trees into HTML, handling:
//
//   - Text and attribute escaping (script and style bodies stay raw)
//   - Void and boolean attributes
//   - A data-hid attribute on every element
//   - Full page documents with the thin client script
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Full Page Rendering
//
//	page := render.PageData{
//	    Body:        bodyNode,
//	    Title:       "Jane Doe",
//	    StyleSheets: []string{"/assets/style.css"},
//	    PageVersion: version,
//	}
//	err := renderer.RenderPage(w, page)
//
// # Hydration IDs
//
// The live session parses the rendered HTML back into a DOM mirror and
// addresses elements by their data-hid. Numbering is deterministic in
// document order, so rendering the same tree twice yields the same ids.
package render
