// Package clientdist embeds the thin client served to browsers.
package clientdist

import _ "embed"

// FolioJS is the thin client JavaScript.
//
// It is served at "/_folio/client.js" and written to "_folio/client.js"
// by static export.
//
//go:embed folio.js
var FolioJS []byte
