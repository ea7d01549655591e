package site

import (
	"embed"
	"io/fs"
)

// StyleSheetPath is where the stylesheet is served from.
const StyleSheetPath = "/assets/style.css"

// StyleSheet is the page stylesheet.
//
//go:embed assets/style.css
var StyleSheet []byte

//go:embed assets
var assets embed.FS

// Assets returns the static files served under /assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
