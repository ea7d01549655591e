package page

import (
	"github.com/vango-dev/folio/pkg/toast"
	"github.com/vango-dev/folio/pkg/view"
)

var _ toast.Notifier = (*Controller)(nil)

// Notify replaces any visible notification with a new one. An empty kind
// means info. The notification dismisses itself after the toast duration
// unless closed earlier.
func (c *Controller) Notify(message string, kind toast.Kind) {
	kind = toast.Normalize(kind)

	for _, old := range c.view.QueryAll(view.ByClass(toast.ClassNotification)) {
		c.view.Remove(old)
	}

	body, ok := c.view.Query(view.ByTag("body"))
	if !ok {
		return
	}
	ref := c.view.Append(body, toast.Banner(kind, message))
	if ref.IsZero() {
		return
	}

	if closeBtn, ok := c.view.QueryWithin(ref, view.ByClass(toast.ClassClose)); ok {
		c.view.On(closeBtn, view.Click, view.ListenOptions{}, func(view.Event) {
			c.view.Remove(ref)
		})
	}

	// Timers of a replaced or closed notification find it detached and
	// do nothing.
	c.clock.AfterFunc(c.opts.ToastDuration, func() {
		if !c.view.Attached(ref) {
			return
		}
		c.view.SetStyle(ref, "animation", toast.ExitAnimation)
		c.clock.AfterFunc(c.opts.ToastExit, func() {
			c.view.Remove(ref)
		})
	})

	if c.opts.Hooks.Notified != nil {
		c.opts.Hooks.Notified(kind)
	}
}

// injectNotificationStyles adds the notification rules once per page.
func (c *Controller) injectNotificationStyles() {
	c.view.InjectStyle(toast.StyleID, toast.Styles)
}
