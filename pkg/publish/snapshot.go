package publish

import (
	"mime"
	"path"

	clientdist "github.com/vango-dev/folio/client/dist"
	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/pkg/content"
	"github.com/vango-dev/folio/pkg/site"
)

// Snapshot paths.
const (
	IndexPath       = "index.html"
	StyleSheetPath  = "assets/style.css"
	ClientPath      = "_folio/client.js"
	defaultMimeType = "application/octet-stream"
)

// File is one file of a snapshot.
type File struct {
	// Path is slash separated and relative to the snapshot root.
	Path        string
	ContentType string
	Data        []byte
}

// Snapshot is a static rendition of the page.
type Snapshot struct {
	// Version identifies the content the page was rendered from.
	Version string
	Files   []File
}

// Options configure Build.
type Options struct {
	// LiveURL is the absolute WebSocket URL of a running folio server.
	// Empty builds a page without the thin client.
	LiveURL string

	// Debug makes the thin client log to the console.
	Debug bool
}

// Build renders c into a snapshot.
func Build(c content.Content, opts Options) (*Snapshot, error) {
	live := opts.LiveURL != ""
	page, err := site.Render(c, site.Options{
		LiveURL:      opts.LiveURL,
		ClientScript: ClientPath,
		StyleSheet:   StyleSheetPath,
		Debug:        opts.Debug,
		Static:       !live,
	})
	if err != nil {
		return nil, errors.New("F400").Wrap(err)
	}

	snap := &Snapshot{Version: page.Version}
	snap.add(IndexPath, page.HTML)
	snap.add(StyleSheetPath, site.StyleSheet)
	if live {
		snap.add(ClientPath, clientdist.FolioJS)
	}
	return snap, nil
}

func (s *Snapshot) add(p string, data []byte) {
	s.Files = append(s.Files, File{Path: p, ContentType: ContentType(p), Data: data})
}

// File returns the file at p.
func (s *Snapshot) File(p string) (File, bool) {
	for _, f := range s.Files {
		if f.Path == p {
			return f, true
		}
	}
	return File{}, false
}

// Size returns the total size of the snapshot's files in bytes.
func (s *Snapshot) Size() int {
	var n int
	for _, f := range s.Files {
		n += len(f.Data)
	}
	return n
}

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
}

// ContentType returns the MIME type served for p.
func ContentType(p string) string {
	ext := path.Ext(p)
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return defaultMimeType
}
