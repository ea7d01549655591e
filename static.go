package folio

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

// assetRelPath returns a sanitized path below /assets/ for a request
// path. It rejects traversal so requests cannot escape the asset tree.
func assetRelPath(urlPath string) (string, bool) {
	rel := strings.TrimPrefix(urlPath, "/assets/")
	if rel == urlPath || rel == "" {
		return "", false
	}

	// Reject NUL early (can appear via %00).
	if strings.IndexByte(rel, 0) != -1 || strings.Contains(rel, "\\") {
		return "", false
	}
	if strings.HasPrefix(rel, "/") {
		return "", false
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if !fs.ValidPath(clean) || clean == "." {
		return "", false
	}
	return clean, true
}

// serveAsset serves an embedded stylesheet or image. Assets change only
// with the binary, so their content hash is the ETag.
func (a *App) serveAsset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	rel, ok := assetRelPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data, err := fs.ReadFile(a.assets, rel)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	sum := sha256.Sum256(data)
	w.Header().Set("ETag", `"`+hex.EncodeToString(sum[:8])+`"`)
	if a.opts.DevMode {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
	}

	// ServeContent handles If-None-Match, HEAD and the content type.
	http.ServeContent(w, r, rel, time.Time{}, bytes.NewReader(data))
}
