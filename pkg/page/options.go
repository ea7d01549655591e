package page

import (
	"log/slog"
	"time"

	"github.com/vango-dev/folio/pkg/toast"
)

// DefaultWelcomeMessage is the text of the welcome notification.
const DefaultWelcomeMessage = "Welcome to my portfolio! Feel free to explore and get in touch."

// Options configure a Controller.
type Options struct {
	// HeaderOffset is subtracted from a section's offset when scrolling to
	// it, so the fixed navbar does not cover the heading.
	HeaderOffset float64

	// ActiveThreshold moves the point at which a section becomes current
	// this far above its top.
	ActiveThreshold float64

	// NavbarThreshold is the scroll position past which the navbar is
	// marked scrolled.
	NavbarThreshold float64

	// RevealThreshold and RevealRootMargin configure the reveal observer.
	RevealThreshold  float64
	RevealRootMargin string

	// RevealStagger is the transition delay added per revealed element.
	RevealStagger time.Duration

	// StatsThreshold is the visible ratio of the hero that starts the
	// stat counters.
	StatsThreshold float64

	// CounterDuration and CounterTick shape the stat counter animation.
	CounterDuration time.Duration
	CounterTick     time.Duration

	// SubmitDelay is the simulated contact form send time.
	SubmitDelay time.Duration

	// ToastDuration is how long a notification stays; ToastExit is the
	// length of its exit animation.
	ToastDuration time.Duration
	ToastExit     time.Duration

	// WelcomeDelay is when the welcome notification appears after Init.
	// Zero disables it.
	WelcomeDelay   time.Duration
	WelcomeMessage string

	// ParallaxRate scales the scroll position into the hero's offset.
	ParallaxRate float64

	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Hooks observe user-visible outcomes, for metrics.
	Hooks Hooks
}

// Hooks are optional callbacks fired on user-visible outcomes.
type Hooks struct {
	// Notified runs for every notification shown.
	Notified func(kind toast.Kind)

	// Submitted runs for every handled contact form submission with
	// outcome "invalid", "sent" or "ignored".
	Submitted func(outcome string)
}

// DefaultOptions returns the options the site ships with.
func DefaultOptions() Options {
	return Options{
		HeaderOffset:     80,
		ActiveThreshold:  100,
		NavbarThreshold:  100,
		RevealThreshold:  0.1,
		RevealRootMargin: "0px 0px -50px 0px",
		RevealStagger:    100 * time.Millisecond,
		StatsThreshold:   0.3,
		CounterDuration:  2000 * time.Millisecond,
		CounterTick:      16 * time.Millisecond,
		SubmitDelay:      1500 * time.Millisecond,
		ToastDuration:    5000 * time.Millisecond,
		ToastExit:        300 * time.Millisecond,
		WelcomeDelay:     2000 * time.Millisecond,
		WelcomeMessage:   DefaultWelcomeMessage,
		ParallaxRate:     -0.1,
	}
}

func (o *Options) fillDefaults() {
	d := DefaultOptions()
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.CounterTick <= 0 {
		o.CounterTick = d.CounterTick
	}
	if o.CounterDuration <= 0 {
		o.CounterDuration = d.CounterDuration
	}
	if o.WelcomeMessage == "" {
		o.WelcomeMessage = d.WelcomeMessage
	}
}
