package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/folio/internal/config"
	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/pkg/publish"
)

type publishFlags struct {
	bucket    string
	prefix    string
	region    string
	endpoint  string
	pathStyle bool
	liveURL   string
	exclude   []string
}

func (c *cli) publishCmd() *cobra.Command {
	var f publishFlags

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export the page and upload it to S3",
		Long: `Export the page and upload the snapshot to an S3 bucket.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN. The region defaults to publish.region in folio.yaml,
then AWS_REGION.

Examples:
  folio publish --bucket=my-site
  folio publish --bucket=my-site --prefix=portfolio --exclude='_folio/**'
  folio publish --bucket=site --endpoint=http://localhost:9000 --path-style`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if cfg.Publish.Bucket == "" {
				return errors.New("F401").WithSuggestion("Pass --bucket or set publish.bucket in folio.yaml")
			}

			client, err := publish.NewS3Client(publish.S3ClientConfig{
				Region:    cfg.Publish.Region,
				Endpoint:  f.endpoint,
				PathStyle: f.pathStyle,
			})
			if err != nil {
				return errors.New("F402").WithSuggestion("Set --region or AWS_REGION").Wrap(err)
			}
			store := publish.NewS3Store(client, cfg.Publish.Bucket, cfg.Publish.Prefix).
				WithCacheControl(cfg.Publish.CacheControl)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.runPublish(ctx, cfg, store)
		},
	}

	cmd.Flags().StringVarP(&f.bucket, "bucket", "b", "", "Target bucket (default from folio.yaml)")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&f.region, "region", "", "AWS region")
	cmd.Flags().StringVar(&f.endpoint, "endpoint", "", "S3 endpoint for S3 compatible stores")
	cmd.Flags().BoolVar(&f.pathStyle, "path-style", false, "Address buckets by path")
	cmd.Flags().StringVar(&f.liveURL, "live-url", "", "WebSocket URL of a running folio server")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "Glob of snapshot paths to skip (repeatable)")

	return cmd
}

// apply overrides folio.yaml with the flags that were set.
func (f *publishFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if f.bucket != "" {
		cfg.Publish.Bucket = f.bucket
	}
	if cmd.Flags().Changed("prefix") {
		cfg.Publish.Prefix = f.prefix
	}
	if f.region != "" {
		cfg.Publish.Region = f.region
	}
	if cmd.Flags().Changed("live-url") {
		cfg.Export.LiveURL = f.liveURL
	}
	if len(f.exclude) > 0 {
		cfg.Publish.Exclude = append(cfg.Publish.Exclude, f.exclude...)
	}
}

func (c *cli) runPublish(ctx context.Context, cfg *config.Config, store publish.Store) error {
	snap, err := publish.Build(cfg.Content, publish.Options{LiveURL: cfg.Export.LiveURL})
	if err != nil {
		return err
	}

	report, err := publish.Publish(ctx, snap, store, publish.PublishOptions{
		Exclude:  cfg.Publish.Exclude,
		Progress: os.Stderr,
	})
	if err != nil {
		return err
	}

	c.success("Published %d files (%s) to %s", len(report.Written), formatBytes(int64(report.Bytes)), report.Location)
	for _, p := range report.Skipped {
		c.info("%s", mutedStyle.Render("skipped "+p))
	}
	return nil
}
