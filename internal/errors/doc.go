// Package errors provides structured, actionable error messages for folio.
//
// Every error carries a code from the registry (e.g. "F101") which maps to a
// category, a short message, a longer explanation and a documentation link.
// Call sites add the specifics: which config key was wrong, what to do
// about it, and the underlying error.
//
// # Error Categories
//
//   - config: folio.yaml and environment overrides
//   - content: portfolio content (sections, stats, markdown)
//   - server: HTTP and live session setup
//   - publish: static export and S3 upload
//   - cli: command-line usage
//
// # Usage
//
//	err := errors.New("F103").
//	    WithKey("server.port").
//	    WithDetail("port 70000 is out of range").
//	    WithSuggestion("Use a port between 1 and 65535")
//
//	errors.PrintError(err)
package errors
