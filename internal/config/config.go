package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/pkg/content"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "folio.yaml"

	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "FOLIO_"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default export directory.
	DefaultOutput = "dist"
)

// Config represents the complete folio.yaml configuration.
type Config struct {
	// Server contains HTTP and live session settings.
	Server ServerConfig `koanf:"server" yaml:"server"`

	// Page contains the interaction timings and thresholds.
	Page PageConfig `koanf:"page" yaml:"page"`

	// Content is what the page shows.
	Content content.Content `koanf:"content" yaml:"content"`

	// Export contains static snapshot settings.
	Export ExportConfig `koanf:"export" yaml:"export"`

	// Publish contains S3 upload settings.
	Publish PublishConfig `koanf:"publish" yaml:"publish"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains server settings.
type ServerConfig struct {
	// Host is the interface to listen on.
	Host string `koanf:"host" yaml:"host"`

	// Port is the TCP port to listen on.
	Port int `koanf:"port" yaml:"port"`

	// MaxSessions limits concurrent live sessions. Zero means unlimited.
	MaxSessions int `koanf:"max_sessions" yaml:"max_sessions"`

	// HeartbeatInterval is how often the server pings live clients.
	HeartbeatInterval time.Duration `koanf:"heartbeat_interval" yaml:"heartbeat_interval"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout"`

	// Debug makes the thin client log protocol traffic to the console.
	Debug bool `koanf:"debug" yaml:"debug"`
}

// PageConfig contains the page controller's timings and thresholds.
type PageConfig struct {
	// HeaderOffset is subtracted from a section's offset when scrolling to it.
	HeaderOffset float64 `koanf:"header_offset" yaml:"header_offset"`

	// ActiveThreshold is how far above a section the active link switches.
	ActiveThreshold float64 `koanf:"active_threshold" yaml:"active_threshold"`

	// NavbarThreshold is the scroll position past which the navbar is marked scrolled.
	NavbarThreshold float64 `koanf:"navbar_threshold" yaml:"navbar_threshold"`

	// RevealThreshold is the visible ratio that reveals an element.
	RevealThreshold float64 `koanf:"reveal_threshold" yaml:"reveal_threshold"`

	// RevealRootMargin shrinks or grows the viewport for reveal checks.
	RevealRootMargin string `koanf:"reveal_root_margin" yaml:"reveal_root_margin"`

	// RevealStagger is the transition delay added per revealed element.
	RevealStagger time.Duration `koanf:"reveal_stagger" yaml:"reveal_stagger"`

	// StatsThreshold is the visible ratio of the hero that starts the counters.
	StatsThreshold float64 `koanf:"stats_threshold" yaml:"stats_threshold"`

	// CounterDuration is how long a stat counter runs.
	CounterDuration time.Duration `koanf:"counter_duration" yaml:"counter_duration"`

	// CounterTick is the interval between counter updates.
	CounterTick time.Duration `koanf:"counter_tick" yaml:"counter_tick"`

	// SubmitDelay is the simulated contact form send time.
	SubmitDelay time.Duration `koanf:"submit_delay" yaml:"submit_delay"`

	// ToastDuration is how long a notification stays before dismissing itself.
	ToastDuration time.Duration `koanf:"toast_duration" yaml:"toast_duration"`

	// ToastExit is the length of the notification exit animation.
	ToastExit time.Duration `koanf:"toast_exit" yaml:"toast_exit"`

	// WelcomeDelay is when the welcome notification appears. Zero disables it.
	WelcomeDelay time.Duration `koanf:"welcome_delay" yaml:"welcome_delay"`

	// WelcomeMessage is the welcome notification text.
	WelcomeMessage string `koanf:"welcome_message" yaml:"welcome_message"`

	// ParallaxRate scales the scroll position into the hero's offset.
	ParallaxRate float64 `koanf:"parallax_rate" yaml:"parallax_rate"`
}

// ExportConfig contains static snapshot settings.
type ExportConfig struct {
	// Output is the directory the snapshot is written to.
	Output string `koanf:"output" yaml:"output"`

	// LiveURL points exported pages at a running folio server.
	// Empty exports a page that stays static.
	LiveURL string `koanf:"live_url" yaml:"live_url,omitempty"`
}

// PublishConfig contains S3 upload settings.
type PublishConfig struct {
	Bucket       string   `koanf:"bucket" yaml:"bucket,omitempty"`
	Prefix       string   `koanf:"prefix" yaml:"prefix,omitempty"`
	Region       string   `koanf:"region" yaml:"region,omitempty"`
	CacheControl string   `koanf:"cache_control" yaml:"cache_control,omitempty"`
	Exclude      []string `koanf:"exclude" yaml:"exclude,omitempty"`
}

// DefaultWelcomeMessage is shown shortly after the page loads.
const DefaultWelcomeMessage = "Welcome to my portfolio! Feel free to explore and get in touch."

// DefaultPageConfig returns the page timings the site ships with.
func DefaultPageConfig() PageConfig {
	return PageConfig{
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

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              DefaultHost,
			Port:              DefaultPort,
			HeartbeatInterval: 30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Page:    DefaultPageConfig(),
		Content: content.Default(),
		Export: ExportConfig{
			Output: DefaultOutput,
		},
		Publish: PublishConfig{
			CacheControl: "public, max-age=300",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for folio.yaml in the directory; a missing file yields the
// defaults with environment overrides applied.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return load("")
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("F100").
				WithDetail("No " + ConfigFileName + " found at " + path).
				WithSuggestion("Run 'folio init' to create one")
		}
		return nil, errors.New("F101").Wrap(err)
	}
	return load(path)
}

// contentLists are the content keys whose file value replaces the sample
// instead of merging element by element into it.
var contentLists = []string{
	"content.nav",
	"content.stats",
	"content.skills",
	"content.projects",
	"content.achievements",
	"content.contact.links",
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.New("F101").
				WithDetail("Failed to parse " + path).
				WithSuggestion("Check that " + ConfigFileName + " is valid YAML").
				Wrap(err)
		}
	}

	// FOLIO_SERVER__PORT -> server.port
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.New("F102").Wrap(err)
	}

	cfg := New()
	for _, key := range contentLists {
		if k.Exists(key) {
			clearContentList(&cfg.Content, key)
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		code := "F101"
		if path == "" {
			code = "F102"
		}
		return nil, errors.New(code).Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// envKey maps an environment variable name to a config key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func clearContentList(c *content.Content, key string) {
	switch key {
	case "content.nav":
		c.Nav = nil
	case "content.stats":
		c.Stats = nil
	case "content.skills":
		c.Skills = nil
	case "content.projects":
		c.Projects = nil
	case "content.achievements":
		c.Achievements = nil
	case "content.contact.links":
		c.Contact.Links = nil
	}
}

// applyDefaults fills in default values for zero fields.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Export.Output == "" {
		c.Export.Output = DefaultOutput
	}
	if c.Page.RevealRootMargin == "" {
		c.Page.RevealRootMargin = DefaultPageConfig().RevealRootMargin
	}
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path as YAML.
func (c *Config) SaveTo(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return errors.New("F105").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("F105").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("F103").
			WithKey("server.port").
			WithDetail(fmt.Sprintf("port %d is out of range", c.Server.Port)).
			WithSuggestion("Use a port between 1 and 65535")
	}
	if c.Server.MaxSessions < 0 {
		return errors.New("F103").WithKey("server.max_sessions").
			WithDetail("max_sessions must be non-negative")
	}
	if c.Server.HeartbeatInterval < 0 {
		return errors.New("F103").WithKey("server.heartbeat_interval").
			WithDetail("heartbeat_interval must be non-negative")
	}

	if err := c.Page.Validate(); err != nil {
		return err
	}
	return c.Content.Validate()
}

// Validate checks the page timings.
func (p *PageConfig) Validate() error {
	positive := []struct {
		key string
		d   time.Duration
	}{
		{"page.counter_duration", p.CounterDuration},
		{"page.counter_tick", p.CounterTick},
		{"page.toast_duration", p.ToastDuration},
	}
	for _, f := range positive {
		if f.d <= 0 {
			return errors.New("F104").WithKey(f.key).
				WithDetail(fmt.Sprintf("must be positive, got %s", f.d))
		}
	}

	nonNegative := []struct {
		key string
		d   time.Duration
	}{
		{"page.reveal_stagger", p.RevealStagger},
		{"page.submit_delay", p.SubmitDelay},
		{"page.toast_exit", p.ToastExit},
		{"page.welcome_delay", p.WelcomeDelay},
	}
	for _, f := range nonNegative {
		if f.d < 0 {
			return errors.New("F104").WithKey(f.key).
				WithDetail(fmt.Sprintf("must not be negative, got %s", f.d))
		}
	}

	ratios := []struct {
		key string
		v   float64
	}{
		{"page.reveal_threshold", p.RevealThreshold},
		{"page.stats_threshold", p.StatsThreshold},
	}
	for _, f := range ratios {
		if f.v < 0 || f.v > 1 {
			return errors.New("F104").WithKey(f.key).
				WithDetail(fmt.Sprintf("must be between 0 and 1, got %g", f.v))
		}
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// OutputPath returns the absolute path to the export directory.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.Export.Output) {
		return c.Export.Output
	}
	return filepath.Join(c.Dir(), c.Export.Output)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
