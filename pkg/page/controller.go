package page

import (
	"log/slog"

	"github.com/vango-dev/folio/pkg/clock"
	"github.com/vango-dev/folio/pkg/toast"
	"github.com/vango-dev/folio/pkg/view"
)

// Element ids and classes the controller looks for.
const (
	idNavToggle    = "nav-toggle"
	idNavMenu      = "nav-menu"
	idViewWork     = "view-work-btn"
	idGetInTouch   = "get-in-touch-btn"
	idContactForm  = "contact-form"
	idSubmitButton = "submit-btn"

	classActive   = "active"
	classNavMenu  = "nav-menu"
	classNavbar   = "navbar"
	classScrolled = "scrolled"
	classHero     = "hero"
)

// Controller drives the interactive behavior of one page instance.
type Controller struct {
	view   view.View
	clock  clock.Clock
	opts   Options
	logger *slog.Logger

	navToggle view.Ref
	navMenu   view.Ref
	navbar    view.Ref
	hero      view.Ref

	// sections and navLinks feed the active link highlighter.
	sections []view.Ref
	navLinks []view.Ref

	contactForm  view.Ref
	submitButton view.Ref
	submitLabel  string
	formState    FormState

	statsObserver view.Observer
	statsStarted  bool

	lastScroll  float64
	initialized bool
}

// New creates a Controller. Call Init to wire it to the page.
func New(v view.View, clk clock.Clock, opts Options) *Controller {
	opts.fillDefaults()
	return &Controller{
		view:   v,
		clock:  clk,
		opts:   opts,
		logger: opts.Logger.With("component", "page"),
	}
}

// Init wires every feature to the page. Calling it again is a no-op.
func (c *Controller) Init() {
	if c.initialized {
		return
	}
	c.initialized = true

	c.initNavigation()
	c.initSmoothScroll()
	c.initNavbar()
	c.initReveal()
	c.initStats()
	c.initContactForm()
	c.injectNotificationStyles()
	c.initHoverEffects()
	c.initActiveLinks()
	c.initParallax()

	c.logDiagnostics()
	c.scheduleWelcome()
}

// MenuOpen reports whether the mobile menu is open.
func (c *Controller) MenuOpen() bool {
	return !c.navMenu.IsZero() && c.view.HasClass(c.navMenu, classActive)
}

// FormState returns the contact form state.
func (c *Controller) FormState() FormState {
	return c.formState
}

// LastScroll returns the last scroll position seen.
func (c *Controller) LastScroll() float64 {
	return c.lastScroll
}

func (c *Controller) query(sel view.Selector) view.Ref {
	ref, _ := c.view.Query(sel)
	return ref
}

func (c *Controller) logDiagnostics() {
	c.logger.Info("page initialized",
		"nav_links", len(c.navLinks),
		"view_work_button", !c.query(view.ByID(idViewWork)).IsZero(),
		"get_in_touch_button", !c.query(view.ByID(idGetInTouch)).IsZero(),
		"contact_form", !c.contactForm.IsZero(),
		"mobile_toggle", !c.navToggle.IsZero(),
	)
}

func (c *Controller) scheduleWelcome() {
	if c.opts.WelcomeDelay <= 0 {
		return
	}
	c.clock.AfterFunc(c.opts.WelcomeDelay, func() {
		toast.Info(c, c.opts.WelcomeMessage)
	})
}
