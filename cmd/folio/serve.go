package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/folio"
	"github.com/vango-dev/folio/internal/config"
)

func (c *cli) serveCmd() *cobra.Command {
	var (
		port     int
		host     string
		watch    bool
		dev      bool
		tracing  bool
		logLevel string
		logJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive page",
		Long: `Serve the portfolio page and its live sessions.

Every browser that opens the page gets a live session that handles the
menu, smooth scrolling, reveal animations, stat counters, the contact
form and notifications on the server.

With --watch, edits to folio.yaml re-render the page; open browsers on
the old content reload.

Examples:
  folio serve
  folio serve --port=8080 --watch
  folio serve --log-level=debug --log-json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(os.Stderr, logLevel, logJSON)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.runServe(ctx, cfg, logger, serveOptions{watch: watch, dev: dev, tracing: tracing})
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from folio.yaml)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from folio.yaml)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render the page when folio.yaml changes")
	cmd.Flags().BoolVar(&dev, "dev", false, "Disable client and asset caching")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Wrap requests in OpenTelemetry spans")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Log as JSON")

	return cmd
}

type serveOptions struct {
	watch   bool
	dev     bool
	tracing bool
}

func (c *cli) runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts serveOptions) error {
	app, err := folio.New(cfg, folio.Options{Logger: logger, DevMode: opts.dev, Tracing: opts.tracing})
	if err != nil {
		return err
	}

	c.printBanner()
	c.success("Serving %s", cfg.Content.Owner.Name)
	c.info("Local:   %s", cfg.URL())
	c.info("Metrics: %s%s", cfg.URL(), folio.MetricsPath)
	fmt.Fprintln(c.out)

	if opts.watch {
		if cfg.Path() == "" {
			c.warn("No %s to watch; --watch ignored", config.ConfigFileName)
		} else {
			go func() {
				err := config.Watch(ctx, cfg.Path(), logger, func(next *config.Config) {
					closed, err := app.Reload(next)
					if err != nil {
						logger.Warn("page reload failed", "error", err)
						return
					}
					logger.Info("page reloaded", "sessions_reloaded", closed)
				})
				if err != nil {
					logger.Error("config watch stopped", "error", err)
				}
			}()
			c.info("Watching %s", cfg.Path())
		}
	}

	return app.ListenAndServe(ctx)
}

// newLogger builds the process logger from --log-level and --log-json.
func newLogger(w io.Writer, level string, json bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}
