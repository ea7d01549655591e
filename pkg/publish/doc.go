// Package publish writes static snapshots of the portfolio page.
//
// A Snapshot holds the files a static host needs: the rendered page, its
// stylesheet and, when the page connects to a live server, the thin
// client. Paths inside the snapshot are relative so it can be served
// from any prefix.
//
// Snapshots are written to a Store. DirStore writes to a local
// directory (folio export); S3Store uploads to a bucket (folio publish).
//
//	snap, err := publish.Build(cfg.Content, publish.Options{LiveURL: "wss://live.example.com/_folio/live"})
//	if err != nil {
//	    return err
//	}
//	store := publish.NewS3Store(client, "my-site", "portfolio/")
//	report, err := publish.Publish(ctx, snap, store, publish.PublishOptions{
//	    Exclude: []string{"_folio/**"},
//	})
package publish
