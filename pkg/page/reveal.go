package page

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/folio/pkg/clock"
	"github.com/vango-dev/folio/pkg/view"
)

const (
	classFadeIn    = "fade-in"
	classVisible   = "visible"
	classStatValue = "stat-value"
)

// revealSelector matches the content blocks revealed on scroll.
var revealSelector = view.Union(
	view.ByClass("skill-category"),
	view.ByClass("project-card"),
	view.ByClass("achievement-item"),
	view.ByClass("about-text"),
	view.Children(view.ByClass("contact-content")),
)

// initReveal fades content blocks in as they enter the viewport, each
// one slightly later than the previous.
func (c *Controller) initReveal() {
	observer := c.view.Observe(view.ObserverOptions{
		Threshold:  c.opts.RevealThreshold,
		RootMargin: c.opts.RevealRootMargin,
	}, func(e view.Entry) {
		if e.Intersecting {
			c.view.AddClass(e.Target, classVisible)
		}
	})

	for i, el := range c.view.QueryAll(revealSelector) {
		delay := time.Duration(i) * c.opts.RevealStagger
		c.view.SetStyle(el, "transition-delay", formatSeconds(delay))
		c.view.AddClass(el, classFadeIn)
		observer.Observe(el)
	}
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

// initStats starts the hero counters the first time the hero is
// sufficiently visible.
func (c *Controller) initStats() {
	c.hero = c.query(view.ByClass(classHero))
	if c.hero.IsZero() {
		return
	}
	c.statsObserver = c.view.Observe(view.ObserverOptions{Threshold: c.opts.StatsThreshold}, func(e view.Entry) {
		if !e.Intersecting {
			return
		}
		c.statsObserver.Unobserve(e.Target)
		if c.statsStarted {
			return
		}
		c.statsStarted = true
		c.animateStats()
	})
	c.statsObserver.Observe(c.hero)
}

func (c *Controller) animateStats() {
	for _, stat := range c.view.QueryAll(view.ByClass(classStatValue)) {
		text := c.view.Text(stat)
		if !strings.Contains(text, "+") {
			continue
		}
		end, ok := leadingInt(strings.Replace(text, "+", "", 1))
		if !ok {
			c.logger.Debug("stat without a number", "text", text)
			continue
		}
		c.animateCounter(stat, 0, end, "+")
	}
}

// animateCounter counts the text of ref from start to end over the
// configured duration, stopping exactly at end.
func (c *Controller) animateCounter(ref view.Ref, start, end int, suffix string) {
	steps := float64(c.opts.CounterDuration) / float64(c.opts.CounterTick)
	increment := float64(end-start) / steps
	current := float64(start)
	target := float64(end)

	var timer clock.Timer
	timer = c.clock.Every(c.opts.CounterTick, func() {
		current += increment
		if current >= target {
			current = target
			timer.Stop()
		}
		c.view.SetText(ref, strconv.Itoa(int(math.Floor(current)))+suffix)
	})
}

// leadingInt parses the integer at the start of s the way browsers parse
// numeric prefixes: leading whitespace and a sign are allowed and parsing
// stops at the first non-digit. ok is false when no digit is found.
func leadingInt(s string) (n int, ok bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
