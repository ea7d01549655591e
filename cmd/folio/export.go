package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/folio/internal/config"
	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/pkg/publish"
)

func (c *cli) exportCmd() *cobra.Command {
	var (
		output  string
		liveURL string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a static snapshot of the page",
		Long: `Export the page as static files.

The snapshot contains index.html and assets/style.css. With --live-url
it also contains the thin client, which connects to a running
'folio serve' at that address so the exported page stays interactive.

Examples:
  folio export
  folio export --out=public
  folio export --live-url=wss://live.example.com/_folio/live`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Export.Output = output
			}
			if cmd.Flags().Changed("live-url") {
				cfg.Export.LiveURL = liveURL
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.runExport(ctx, cfg, debug)
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "Output directory (default from folio.yaml)")
	cmd.Flags().StringVar(&liveURL, "live-url", "", "WebSocket URL of a running folio server")
	cmd.Flags().BoolVar(&debug, "debug", false, "Make the thin client log to the console")

	return cmd
}

func (c *cli) runExport(ctx context.Context, cfg *config.Config, debug bool) error {
	snap, err := publish.Build(cfg.Content, publish.Options{LiveURL: cfg.Export.LiveURL, Debug: debug})
	if err != nil {
		return err
	}

	dir := cfg.OutputPath()
	store, err := publish.NewDirStore(dir)
	if err != nil {
		return errors.New("F400").WithDetail("Could not create " + dir).Wrap(err)
	}
	report, err := publish.Publish(ctx, snap, store, publish.PublishOptions{})
	if err != nil {
		return err
	}

	c.success("Exported %d files (%s) to %s", len(report.Written), formatBytes(int64(report.Bytes)), report.Location)
	for _, p := range report.Written {
		c.info("%s", p)
	}
	if cfg.Export.LiveURL == "" {
		c.info("%s", mutedStyle.Render("Static page; pass --live-url to keep it interactive"))
	} else {
		c.info("%s", mutedStyle.Render(fmt.Sprintf("Live sessions connect to %s", cfg.Export.LiveURL)))
	}
	return nil
}
