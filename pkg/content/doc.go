// Package content holds the data a portfolio page is rendered from.
//
// Content is plain data with koanf and yaml tags so it can live under the
// content key of folio.yaml. Default returns a complete sample portfolio;
// Validate checks the few structural rules the page depends on.
//
// The about text is Markdown. RenderMarkdown turns it into vdom nodes so
// the generated elements carry hydration ids like the rest of the page.
package content
