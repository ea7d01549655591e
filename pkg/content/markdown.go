package content

import (
	"bytes"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/pkg/vdom"
)

var (
	mdOnce sync.Once
	md     goldmark.Markdown
)

func markdown() goldmark.Markdown {
	mdOnce.Do(func() {
		md = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		)
	})
	return md
}

// RenderMarkdown converts Markdown source to vdom nodes. Raw HTML in the
// source is omitted.
func RenderMarkdown(src string) ([]*vdom.VNode, error) {
	var buf bytes.Buffer
	if err := markdown().Convert([]byte(src), &buf); err != nil {
		return nil, errors.New("F203").Wrap(err)
	}
	nodes, err := vdom.ParseHTML(buf.String())
	if err != nil {
		return nil, errors.New("F203").Wrap(err)
	}
	return nodes, nil
}
