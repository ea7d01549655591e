// Package vtest provides testing helpers for folio pages.
//
// The harness renders content into a page, parses it into a DOM mirror,
// runs the page controller against it on a fake clock and records the
// patches it emits. Tests drive it the way a browser would.
//
// # Quick Start
//
//	func TestMenuCloses(t *testing.T) {
//	    p := vtest.NewPage().Build(t)
//	    p.Click(view.ByID("nav-toggle"))
//	    p.ExpectClass(view.ByID("nav-menu"), "active")
//	    p.Click(view.ByTag("footer"))
//	    p.ExpectNoClass(view.ByID("nav-menu"), "active")
//	}
//
// # Fluent Page Builder
//
//	p := vtest.NewPage().
//	    WithContent(myContent).
//	    WithOptions(func(o *page.Options) { o.SubmitDelay = time.Second }).
//	    WithSectionOffsets(map[string]float64{"projects": 2400}).
//	    WithoutWelcome().
//	    Build(t)
//
// # Time
//
// Nothing scheduled by the controller runs until the test advances the
// fake clock:
//
//	p.Advance(1500 * time.Millisecond)
//
// # Render Assertions
//
// Assert on rendered HTML output of a single node:
//
//	vtest.ExpectContains(t, toast.Banner(toast.KindInfo, "hi"), "notification--info")
package vtest
