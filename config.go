package folio

import (
	"log/slog"

	"github.com/vango-dev/folio/internal/config"
	"github.com/vango-dev/folio/pkg/page"
	"github.com/vango-dev/folio/pkg/server"
)

// Options configure an App beyond what folio.yaml holds.
type Options struct {
	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// DevMode disables caching of the thin client and static assets.
	DevMode bool

	// Tracing wraps HTTP requests in OpenTelemetry server spans using the
	// global tracer provider.
	Tracing bool
}

// PageOptions converts the page section of folio.yaml into controller
// options.
func PageOptions(pc config.PageConfig) page.Options {
	return page.Options{
		HeaderOffset:     pc.HeaderOffset,
		ActiveThreshold:  pc.ActiveThreshold,
		NavbarThreshold:  pc.NavbarThreshold,
		RevealThreshold:  pc.RevealThreshold,
		RevealRootMargin: pc.RevealRootMargin,
		RevealStagger:    pc.RevealStagger,
		StatsThreshold:   pc.StatsThreshold,
		CounterDuration:  pc.CounterDuration,
		CounterTick:      pc.CounterTick,
		SubmitDelay:      pc.SubmitDelay,
		ToastDuration:    pc.ToastDuration,
		ToastExit:        pc.ToastExit,
		WelcomeDelay:     pc.WelcomeDelay,
		WelcomeMessage:   pc.WelcomeMessage,
		ParallaxRate:     pc.ParallaxRate,
	}
}

// buildServerConfig converts the server section of folio.yaml into the
// live server configuration.
func buildServerConfig(cfg *config.Config, opts Options, metrics *server.Metrics) *server.ServerConfig {
	sc := server.DefaultServerConfig().WithMaxSessions(cfg.Server.MaxSessions)
	sc.Metrics = metrics
	if cfg.Server.ShutdownTimeout > 0 {
		sc.ShutdownTimeout = cfg.Server.ShutdownTimeout
	}

	session := server.DefaultSessionConfig()
	if hb := cfg.Server.HeartbeatInterval; hb > 0 {
		session.HeartbeatInterval = hb
		session.ReadTimeout = 2 * hb
	}
	sc.WithSessionConfig(session)

	if opts.DevMode {
		sc.WithDevMode()
	}
	// Exported snapshots are served from another origin and connect back.
	if cfg.Export.LiveURL != "" {
		sc.WithCheckOrigin(server.AllowAnyOrigin)
	}
	return sc
}
