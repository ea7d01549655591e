package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/vango-dev/folio/internal/config"
	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/pkg/form"
)

func (c *cli) initCmd() *cobra.Command {
	var skipPrompts bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter folio.yaml",
		Long: `Create a folio.yaml with the sample portfolio content.

Unless --yes is given, init asks for your name, title, tagline, contact
email and port first.

Examples:
  folio init
  folio init --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				path = config.ConfigFileName
			}
			return c.runInit(path, skipPrompts)
		},
	}

	cmd.Flags().BoolVarP(&skipPrompts, "yes", "y", false, "Skip prompts and use defaults")

	return cmd
}

func (c *cli) runInit(path string, skipPrompts bool) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New("F500").
			WithDetail(path + " already exists").
			WithSuggestion("Edit it directly or remove it first")
	}

	cfg := config.New()
	if !skipPrompts {
		c.printBanner()
		if err := promptForConfig(cfg); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.New("F105").Wrap(err)
		}
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	c.success("Created %s", path)
	fmt.Fprintln(c.out)
	c.info("Next steps:")
	c.info("  Edit the content section of %s", path)
	c.info("  folio serve --watch")
	fmt.Fprintln(c.out)
	return nil
}

// promptForConfig asks for the owner details and port.
func promptForConfig(cfg *config.Config) error {
	required := form.Required("This field is required")
	email := form.Email("Please enter a valid email address")

	prompts := []struct {
		label    string
		target   *string
		validate promptui.ValidateFunc
	}{
		{"Your name", &cfg.Content.Owner.Name, required.Validate},
		{"Title", &cfg.Content.Owner.Title, nil},
		{"Tagline", &cfg.Content.Owner.Tagline, nil},
		{"Contact email", &cfg.Content.Contact.Email, func(s string) error {
			if err := required.Validate(s); err != nil {
				return err
			}
			return email.Validate(s)
		}},
	}
	for _, p := range prompts {
		prompt := promptui.Prompt{
			Label:    p.label,
			Default:  *p.target,
			Validate: p.validate,
		}
		v, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("%s: %w", p.label, err)
		}
		*p.target = v
	}

	portPrompt := promptui.Prompt{
		Label:   "Port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)
	return nil
}
