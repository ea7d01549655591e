// Package page implements the interactive behavior of the portfolio page.
//
// A Controller is created once per page instance and wired to a view.View
// and a clock.Clock by Init. Every feature registers listeners or
// observers on the view and otherwise keeps its state in marker classes on
// elements:
//
//   - navigation toggle: "active" on #nav-menu and #nav-toggle
//   - smooth scrolling for in-page anchors and the two call-to-action buttons
//   - navbar "scrolled" state and hero parallax on scroll
//   - staggered "fade-in"/"visible" reveal of content blocks
//   - one-shot hero stat counters
//   - the simulated contact form with notifications
//   - active navigation link tracking
//   - hover transforms on project cards and skill icons
//
// A feature whose elements are missing from the page is skipped silently.
//
// The controller is not safe for concurrent use. All calls, including
// listener and timer callbacks, must happen on one goroutine; the live
// session's event loop guarantees this in production and the fake clock
// does in tests.
package page
