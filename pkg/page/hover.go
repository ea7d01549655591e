package page

import "github.com/vango-dev/folio/pkg/view"

// initHoverEffects lifts project cards and tilts skill icons under the
// pointer.
func (c *Controller) initHoverEffects() {
	for _, card := range c.view.QueryAll(view.ByClass("project-card")) {
		c.view.On(card, view.MouseEnter, view.ListenOptions{}, func(view.Event) {
			c.view.SetStyle(card, "transform", "translateY(-8px) scale(1.02)")
		})
		c.view.On(card, view.MouseLeave, view.ListenOptions{}, func(view.Event) {
			c.view.SetStyle(card, "transform", "translateY(0) scale(1)")
		})
	}

	for _, skill := range c.view.QueryAll(view.ByClass("skill-category")) {
		c.view.On(skill, view.MouseEnter, view.ListenOptions{}, func(view.Event) {
			if icon, ok := c.view.QueryWithin(skill, view.ByClass("skill-icon")); ok {
				c.view.SetStyle(icon, "transform", "scale(1.1) rotate(5deg)")
				c.view.SetStyle(icon, "transition", "all 0.3s ease")
			}
		})
		c.view.On(skill, view.MouseLeave, view.ListenOptions{}, func(view.Event) {
			if icon, ok := c.view.QueryWithin(skill, view.ByClass("skill-icon")); ok {
				c.view.SetStyle(icon, "transform", "scale(1) rotate(0deg)")
			}
		})
	}
}
