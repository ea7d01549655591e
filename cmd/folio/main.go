package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vango-dev/folio/internal/config"
	"github.com/vango-dev/folio/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┌─┐┬  ┬┌─┐
  ├┤ │ ││  ││ │
  └  └─┘┴─┘┴└─┘
`

var (
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"})
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"})
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// cli carries the output stream and global flags shared by subcommands.
type cli struct {
	out        io.Writer
	configPath string
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "A server-driven interactive portfolio page",
		Long: `Folio renders a portfolio page from folio.yaml and makes it
interactive from the server.

The page is rendered once, served with a thin JavaScript client and
driven over a WebSocket. It can also be exported as static files or
published to S3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to folio.yaml (default ./folio.yaml)")

	rootCmd.AddCommand(
		c.serveCmd(),
		c.exportCmd(),
		c.publishCmd(),
		c.initCmd(),
		c.versionCmd(),
	)
	return rootCmd
}

// loadConfig reads --config, or folio.yaml in the working directory when
// present, and validates it.
func (c *cli) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFile(c.configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printBanner prints the folio banner.
func (c *cli) printBanner() {
	fmt.Fprintln(c.out, bannerStyle.Render(banner))
}

// success prints a success message.
func (c *cli) success(format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", successStyle.Render("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func (c *cli) info(format string, args ...any) {
	fmt.Fprintf(c.out, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func (c *cli) warn(format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", warnStyle.Render("⚠"), fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("✗"), fmt.Sprintf(format, args...))
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
