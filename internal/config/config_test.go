package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/pkg/content"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Export.Output != DefaultOutput {
		t.Errorf("Export.Output = %q, want %q", cfg.Export.Output, DefaultOutput)
	}
	if cfg.Page.HeaderOffset != 80 || cfg.Page.SubmitDelay != 1500*time.Millisecond {
		t.Errorf("unexpected page defaults: %+v", cfg.Page)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingDirUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}
	if cfg.Content.Owner.Name != content.Default().Owner.Name {
		t.Error("expected sample content")
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), ConfigFileName))
	if !errors.HasCode(err, "F100") {
		t.Errorf("LoadFile() error = %v, want F100", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
server:
  port: 8080
  host: 0.0.0.0
  heartbeat_interval: 15s
page:
  header_offset: 64
  submit_delay: 2s
  welcome_delay: 0s
content:
  owner:
    name: Jane Doe
  stats:
    - value: 12+
      label: Talks
publish:
  bucket: my-site
  exclude:
    - "**/*.map"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Server.Port != 8080 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.HeartbeatInterval != 15*time.Second {
		t.Errorf("HeartbeatInterval = %v, want 15s", cfg.Server.HeartbeatInterval)
	}
	if cfg.Page.HeaderOffset != 64 || cfg.Page.SubmitDelay != 2*time.Second {
		t.Errorf("page = %+v", cfg.Page)
	}
	if cfg.Page.WelcomeDelay != 0 {
		t.Errorf("WelcomeDelay = %v, want 0", cfg.Page.WelcomeDelay)
	}
	if cfg.Page.ToastDuration != 5*time.Second {
		t.Errorf("unset timings should keep defaults, ToastDuration = %v", cfg.Page.ToastDuration)
	}

	if cfg.Content.Owner.Name != "Jane Doe" {
		t.Errorf("Owner.Name = %q", cfg.Content.Owner.Name)
	}
	if cfg.Content.Owner.Title != content.Default().Owner.Title {
		t.Errorf("unset owner fields should keep the sample, Title = %q", cfg.Content.Owner.Title)
	}
	if len(cfg.Content.Stats) != 1 || cfg.Content.Stats[0].Value != "12+" {
		t.Errorf("stats list should be replaced, got %+v", cfg.Content.Stats)
	}
	if len(cfg.Content.Nav) != len(content.Default().Nav) {
		t.Errorf("nav should keep the sample, got %d items", len(cfg.Content.Nav))
	}

	if cfg.Publish.Bucket != "my-site" || len(cfg.Publish.Exclude) != 1 {
		t.Errorf("publish = %+v", cfg.Publish)
	}
	if cfg.Path() != path || cfg.Dir() != dir {
		t.Errorf("Path() = %q, Dir() = %q", cfg.Path(), cfg.Dir())
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "server: [unclosed")
	_, err := LoadFile(path)
	if !errors.HasCode(err, "F101") {
		t.Errorf("LoadFile() error = %v, want F101", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "server:\n  port: 8080\n")

	t.Setenv("FOLIO_SERVER__PORT", "9000")
	t.Setenv("FOLIO_SERVER__MAX_SESSIONS", "25")
	t.Setenv("FOLIO_PAGE__TOAST_DURATION", "3s")
	t.Setenv("FOLIO_PUBLISH__BUCKET", "from-env")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.MaxSessions != 25 {
		t.Errorf("Server.MaxSessions = %d, want 25", cfg.Server.MaxSessions)
	}
	if cfg.Page.ToastDuration != 3*time.Second {
		t.Errorf("Page.ToastDuration = %v, want 3s", cfg.Page.ToastDuration)
	}
	if cfg.Publish.Bucket != "from-env" {
		t.Errorf("Publish.Bucket = %q", cfg.Publish.Bucket)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"FOLIO_SERVER__PORT":         "server.port",
		"FOLIO_PAGE__HEADER_OFFSET":  "page.header_offset",
		"FOLIO_CONTENT__OWNER__NAME": "content.owner.name",
		"FOLIO_EXPORT__LIVE_URL":     "export.live_url",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
		key    string
	}{
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "F103", "server.port"},
		{"negative sessions", func(c *Config) { c.Server.MaxSessions = -1 }, "F103", "server.max_sessions"},
		{"zero tick", func(c *Config) { c.Page.CounterTick = 0 }, "F104", "page.counter_tick"},
		{"negative delay", func(c *Config) { c.Page.SubmitDelay = -time.Second }, "F104", "page.submit_delay"},
		{"ratio above one", func(c *Config) { c.Page.StatsThreshold = 1.5 }, "F104", "page.stats_threshold"},
		{"missing owner", func(c *Config) { c.Content.Owner.Name = "" }, "F200", "content.owner.name"},
		{"welcome disabled", func(c *Config) { c.Page.WelcomeDelay = 0 }, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			if !errors.HasCode(err, tt.code) {
				t.Fatalf("Validate() = %v, want %s", err, tt.code)
			}
			if fe := errors.FromError(err, ""); fe.Key != tt.key {
				t.Errorf("key = %q, want %q", fe.Key, tt.key)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := New()
	cfg.Server.Port = 4000
	cfg.Page.ToastDuration = 7 * time.Second
	cfg.Content.Owner.Name = "Saved Owner"
	cfg.Content.Projects = cfg.Content.Projects[:1]

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	if !Exists(dir) {
		t.Fatal("Exists() = false after SaveTo")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want 4000", loaded.Server.Port)
	}
	if loaded.Page.ToastDuration != 7*time.Second {
		t.Errorf("Page.ToastDuration = %v, want 7s", loaded.Page.ToastDuration)
	}
	if loaded.Content.Owner.Name != "Saved Owner" || len(loaded.Content.Projects) != 1 {
		t.Errorf("content did not round trip: %+v", loaded.Content.Owner)
	}

	loaded.Server.Port = 5000
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	again, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", again.Server.Port)
	}

	if err := New().Save(); err == nil {
		t.Error("Save() without a path should fail")
	}
}

func TestAddressAndOutput(t *testing.T) {
	cfg := New()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 4321
	if cfg.Address() != "127.0.0.1:4321" || cfg.URL() != "http://127.0.0.1:4321" {
		t.Errorf("Address() = %q, URL() = %q", cfg.Address(), cfg.URL())
	}

	cfg.configPath = "/srv/site/folio.yaml"
	if got := cfg.OutputPath(); got != filepath.Join("/srv/site", DefaultOutput) {
		t.Errorf("OutputPath() = %q", got)
	}
	cfg.Export.Output = "/tmp/out"
	if got := cfg.OutputPath(); got != "/tmp/out" {
		t.Errorf("OutputPath() = %q", got)
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "server:\n  port: 8080\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, nil, func(c *Config) { reloaded <- c })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeConfig(t, dir, "server:\n  port: 8181\n")

	select {
	case cfg := <-reloaded:
		if cfg.Server.Port != 8181 {
			t.Errorf("reloaded port = %d, want 8181", cfg.Server.Port)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
