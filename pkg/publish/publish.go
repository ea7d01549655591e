package publish

import (
	"context"
	"io"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/folio/internal/errors"
)

// PublishOptions configure Publish.
type PublishOptions struct {
	// Exclude lists doublestar globs ("_folio/**") of snapshot paths to
	// skip.
	Exclude []string

	// Progress receives a progress bar when set.
	Progress io.Writer

	// Logger receives one debug line per file. Defaults to slog.Default().
	Logger *slog.Logger

	// Concurrency bounds parallel writes. Defaults to DefaultConcurrency.
	Concurrency int
}

// DefaultConcurrency is the number of files written at once.
const DefaultConcurrency = 4

// Report summarizes a Publish run.
type Report struct {
	Location string
	Written  []string
	Skipped  []string
	Bytes    int
}

// Publish writes the snapshot's files to store, skipping excluded paths.
func Publish(ctx context.Context, snap *Snapshot, store Store, opts PublishOptions) (*Report, error) {
	files, skipped, err := Filter(snap.Files, opts.Exclude)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("publishing"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, f := range files {
		g.Go(func() error {
			if err := store.Put(gctx, f); err != nil {
				return errors.New("F402").
					WithDetail("Could not write " + f.Path + " to " + store.Location()).
					Wrap(err)
			}
			logger.Debug("published", "path", f.Path, "bytes", len(f.Data), "content_type", f.ContentType)
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	report := &Report{Location: store.Location(), Skipped: skipped}
	for _, f := range files {
		report.Written = append(report.Written, f.Path)
		report.Bytes += len(f.Data)
	}
	return report, nil
}

// Filter splits files into those to publish and the paths excluded by
// the patterns.
func Filter(files []File, exclude []string) (kept []File, skipped []string, err error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, nil, errors.New("F403").
				WithDetail("Pattern " + pattern + " is not a valid glob").
				WithSuggestion("Use doublestar syntax, e.g. '_folio/**' or '**/*.js'")
		}
	}

	for _, f := range files {
		if excluded(f.Path, exclude) {
			skipped = append(skipped, f.Path)
			continue
		}
		kept = append(kept, f)
	}
	return kept, skipped, nil
}

func excluded(p string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}
