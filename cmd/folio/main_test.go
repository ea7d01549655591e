package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/folio/internal/config"
	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/pkg/publish"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func initConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	if _, err := run(t, "init", "--yes", "--config", path); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return path
}

func TestInit(t *testing.T) {
	path := initConfig(t)

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("written config is invalid: %v", err)
	}
	if cfg.Server.Port != config.DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Server.Port, config.DefaultPort)
	}

	_, err = run(t, "init", "--yes", "--config", path)
	if !errors.HasCode(err, "F500") {
		t.Errorf("second init err = %v, want F500", err)
	}
}

func TestExportStatic(t *testing.T) {
	path := initConfig(t)
	out := filepath.Join(filepath.Dir(path), "public")

	stdout, err := run(t, "export", "--config", path, "--out", out)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(stdout, "Exported 2 files") {
		t.Errorf("output = %q", stdout)
	}

	html, err := os.ReadFile(filepath.Join(out, publish.IndexPath))
	if err != nil {
		t.Fatalf("index.html missing: %v", err)
	}
	if strings.Contains(string(html), "<script") {
		t.Error("static export should not include the thin client")
	}
	if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(publish.ClientPath))); !os.IsNotExist(err) {
		t.Error("static export should not write the client")
	}
}

func TestExportLive(t *testing.T) {
	path := initConfig(t)
	live := "wss://live.example.com/_folio/live"

	if _, err := run(t, "export", "--config", path, "--live-url", live); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	// Relative output directories resolve against folio.yaml.
	out := filepath.Join(filepath.Dir(path), config.DefaultOutput)
	html, err := os.ReadFile(filepath.Join(out, publish.IndexPath))
	if err != nil {
		t.Fatalf("index.html missing: %v", err)
	}
	if !strings.Contains(string(html), `data-live="`+live+`"`) {
		t.Error("exported page should connect to the live URL")
	}
	if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(publish.ClientPath))); err != nil {
		t.Errorf("client missing: %v", err)
	}
}

func TestPublishNeedsBucket(t *testing.T) {
	path := initConfig(t)
	_, err := run(t, "publish", "--config", path)
	if !errors.HasCode(err, "F401") {
		t.Errorf("err = %v, want F401", err)
	}
}

type memStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (s *memStore) Put(_ context.Context, f publish.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[f.Path] = f.Data
	return nil
}

func (s *memStore) Location() string { return "mem://" }

func TestRunPublish(t *testing.T) {
	cfg := config.New()
	cfg.Publish.Exclude = []string{"assets/**"}
	store := &memStore{files: map[string][]byte{}}

	var out bytes.Buffer
	c := &cli{out: &out}
	if err := c.runPublish(context.Background(), cfg, store); err != nil {
		t.Fatalf("runPublish failed: %v", err)
	}

	var got []string
	for p := range store.files {
		got = append(got, p)
	}
	if diff := cmp.Diff([]string{publish.IndexPath}, got); diff != "" {
		t.Errorf("uploaded mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "skipped "+publish.StyleSheetPath) {
		t.Errorf("output = %q", out.String())
	}
}

func TestPublishFlagsApply(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{})
	pub, _, err := cmd.Find([]string{"publish"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if err := pub.ParseFlags([]string{"--bucket=site", "--prefix=", "--exclude=_folio/**", "--live-url=ws://x/_folio/live"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	cfg := config.New()
	cfg.Publish.Prefix = "old"
	cfg.Publish.Region = "eu-west-1"
	f := publishFlags{bucket: "site", prefix: "", exclude: []string{"_folio/**"}, liveURL: "ws://x/_folio/live"}
	f.apply(pub, cfg)

	want := config.PublishConfig{
		Bucket:       "site",
		Region:       "eu-west-1",
		CacheControl: config.New().Publish.CacheControl,
		Exclude:      []string{"_folio/**"},
	}
	if diff := cmp.Diff(want, cfg.Publish); diff != "" {
		t.Errorf("publish config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Export.LiveURL != "ws://x/_folio/live" {
		t.Errorf("LiveURL = %q", cfg.Export.LiveURL)
	}
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("output = %q, want %q", out, version)
	}
}

func TestNewLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger, err := newLogger(&buf, "WARN", true)
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("output = %q", out)
	}

	if _, err := newLogger(&buf, "loud", false); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
