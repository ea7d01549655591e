package page

import (
	"strconv"

	"github.com/vango-dev/folio/pkg/view"
)

// ActiveLinkStyleID is the id of the injected active link style block.
const ActiveLinkStyleID = "active-link-styles"

// activeLinkStyles underline the current section's navigation link.
const activeLinkStyles = `
.nav-menu a.active {
  color: var(--color-primary) !important;
  position: relative;
}

.nav-menu a.active::after {
  content: '';
  position: absolute;
  bottom: -5px;
  left: 0;
  width: 100%;
  height: 2px;
  background: var(--color-primary);
  border-radius: 1px;
}

@media (max-width: 768px) {
  .nav-menu a.active::after {
    bottom: 0;
    height: 100%;
    width: 3px;
    left: -12px;
  }
}
`

// initNavbar marks the navbar once the page has scrolled past the
// threshold.
func (c *Controller) initNavbar() {
	c.navbar = c.query(view.ByClass(classNavbar))
	c.view.OnDocument(view.Scroll, func(e view.Event) {
		if !c.navbar.IsZero() {
			if e.ScrollY > c.opts.NavbarThreshold {
				c.view.AddClass(c.navbar, classScrolled)
			} else {
				c.view.RemoveClass(c.navbar, classScrolled)
			}
		}
		c.lastScroll = e.ScrollY
	})
}

// initActiveLinks highlights the navigation link of the section being
// read.
func (c *Controller) initActiveLinks() {
	c.sections = c.view.QueryAll(view.Selector("//" + view.HasAttr("section", "id")))
	c.navLinks = c.view.QueryAll(view.Descendant(view.ByClass(classNavMenu), view.HrefPrefix("#")))

	c.view.OnDocument(view.Scroll, func(e view.Event) {
		c.highlight(c.CurrentSection(e.ScrollY))
	})

	c.view.InjectStyle(ActiveLinkStyleID, activeLinkStyles)
}

// CurrentSection returns the id of the last section whose top, less the
// active threshold, is at or above scrollY. It returns "" above the
// first section.
func (c *Controller) CurrentSection(scrollY float64) string {
	current := ""
	for _, s := range c.sections {
		if scrollY >= c.view.OffsetTop(s)-c.opts.ActiveThreshold {
			current, _ = c.view.Attr(s, "id")
		}
	}
	return current
}

func (c *Controller) highlight(section string) {
	want := "#" + section
	for _, link := range c.navLinks {
		if href, _ := c.view.Attr(link, "href"); href == want {
			c.view.AddClass(link, classActive)
		} else {
			c.view.RemoveClass(link, classActive)
		}
	}
}

// initParallax shifts the hero while it is within the first screen.
func (c *Controller) initParallax() {
	if c.hero.IsZero() {
		c.hero = c.query(view.ByClass(classHero))
	}
	if c.hero.IsZero() {
		return
	}
	c.view.OnDocument(view.Scroll, func(e view.Event) {
		if e.ScrollY >= c.view.ViewportHeight() {
			return
		}
		c.view.SetStyle(c.hero, "transform", "translateY("+formatPx(e.ScrollY*c.opts.ParallaxRate)+"px)")
	})
}

// formatPx formats a CSS length without trailing zeros or negative zero.
func formatPx(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
