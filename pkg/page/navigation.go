package page

import (
	"strings"

	"github.com/vango-dev/folio/pkg/view"
)

// initNavigation wires the mobile menu toggle.
func (c *Controller) initNavigation() {
	c.navToggle = c.query(view.ByID(idNavToggle))
	c.navMenu = c.query(view.ByID(idNavMenu))
	if c.navToggle.IsZero() || c.navMenu.IsZero() {
		c.logger.Debug("navigation toggle disabled", "toggle", !c.navToggle.IsZero(), "menu", !c.navMenu.IsZero())
		c.navToggle, c.navMenu = "", ""
		return
	}

	c.view.On(c.navToggle, view.Click, view.ListenOptions{}, func(view.Event) {
		c.view.ToggleClass(c.navMenu, classActive)
		c.view.ToggleClass(c.navToggle, classActive)
	})

	for _, link := range c.view.QueryAll(view.Descendant(view.ByClass(classNavMenu), "a")) {
		c.view.On(link, view.Click, view.ListenOptions{}, func(view.Event) {
			c.closeMenu()
		})
	}

	c.view.OnDocument(view.Click, func(e view.Event) {
		if !c.view.Contains(c.navToggle, e.Target) && !c.view.Contains(c.navMenu, e.Target) {
			c.closeMenu()
		}
	})
}

func (c *Controller) closeMenu() {
	if c.navMenu.IsZero() {
		return
	}
	c.view.RemoveClass(c.navMenu, classActive)
	c.view.RemoveClass(c.navToggle, classActive)
}

// initSmoothScroll makes in-page anchors and the call-to-action buttons
// scroll instead of jumping.
func (c *Controller) initSmoothScroll() {
	for _, link := range c.view.QueryAll(view.Selector("//" + view.HrefPrefix("#"))) {
		c.view.On(link, view.Click, view.ListenOptions{PreventDefault: true}, func(view.Event) {
			href, _ := c.view.Attr(link, "href")
			c.ScrollToSection(href)
			if c.MenuOpen() {
				c.closeMenu()
			}
		})
	}

	ctas := []struct{ id, target string }{
		{idViewWork, "#projects"},
		{idGetInTouch, "#contact"},
	}
	for _, cta := range ctas {
		ref := c.query(view.ByID(cta.id))
		if ref.IsZero() {
			continue
		}
		target := cta.target
		c.view.On(ref, view.Click, view.ListenOptions{PreventDefault: true}, func(view.Event) {
			c.ScrollToSection(target)
		})
	}
}

// ScrollToSection smoothly scrolls to the element referenced by an
// in-page link such as "#projects", leaving room for the navbar. Unknown
// targets are ignored.
func (c *Controller) ScrollToSection(href string) {
	id := strings.TrimPrefix(href, "#")
	if id == "" || id == href {
		return
	}
	target, ok := c.view.Query(view.ByID(id))
	if !ok {
		return
	}
	c.view.ScrollTo(c.view.OffsetTop(target)-c.opts.HeaderOffset, true)
}
