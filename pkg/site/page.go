package site

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/pkg/content"
	"github.com/vango-dev/folio/pkg/render"
)

// Options configure page rendering.
type Options struct {
	// LiveURL is the WebSocket endpoint the client connects to.
	// Defaults to render.DefaultLiveURL.
	LiveURL string

	// ClientScript is the thin client path.
	// Defaults to render.DefaultClientScript.
	ClientScript string

	// StyleSheet is the stylesheet path. Defaults to StyleSheetPath.
	StyleSheet string

	// Debug makes the thin client log to the console.
	Debug bool

	// Static renders the page without the thin client.
	Static bool
}

// Page is a rendered portfolio page.
type Page struct {
	// HTML is the complete document.
	HTML []byte

	// Version identifies the content the page was rendered from.
	Version string

	// Title is the document title.
	Title string
}

// Render renders the complete document for c.
func Render(c content.Content, opts Options) (*Page, error) {
	if opts.StyleSheet == "" {
		opts.StyleSheet = StyleSheetPath
	}

	body, err := Build(c)
	if err != nil {
		return nil, err
	}
	version, err := Version(c)
	if err != nil {
		return nil, err
	}

	title := c.Owner.Name
	if c.Owner.Title != "" {
		title += " | " + c.Owner.Title
	}

	data := render.PageData{
		Body:         body,
		Title:        title,
		StyleSheets:  []string{opts.StyleSheet},
		ClientScript: opts.ClientScript,
		LiveURL:      opts.LiveURL,
		PageVersion:  version,
		Debug:        opts.Debug,
		Static:       opts.Static,
		Meta: []render.MetaTag{
			{Name: "description", Content: c.Owner.Tagline},
			{Property: "og:title", Content: title},
		},
	}
	for name, value := range c.Meta {
		data.Meta = append(data.Meta, render.MetaTag{Name: name, Content: value})
	}
	slices.SortFunc(data.Meta[2:], func(a, b render.MetaTag) int {
		return strings.Compare(a.Name, b.Name)
	})

	var buf bytes.Buffer
	r := render.NewRenderer(render.RendererConfig{})
	if err := r.RenderPage(&buf, data); err != nil {
		return nil, errors.New("F300").Wrap(err)
	}

	return &Page{HTML: buf.Bytes(), Version: version, Title: title}, nil
}

// Version hashes c. Pages rendered from equal content share a version.
func Version(c content.Content) (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", errors.New("F300").Wrap(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:6]), nil
}
