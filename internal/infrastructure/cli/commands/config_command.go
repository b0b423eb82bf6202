package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/wallpaper/internal/app"
	configapp "github.com/doeshing/wallpaper/internal/application/config"
	"github.com/doeshing/wallpaper/internal/domain"
	configinfra "github.com/doeshing/wallpaper/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with all subcommands.
// These commands only need the loader, so they work before a data
// directory exists.
func NewConfigCommand(lazy *app.Lazy) *cobra.Command {
	loader := func() *configinfra.FileLoader {
		return configinfra.NewFileLoader(lazy.Options.ConfigPath)
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect wallpaper configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), loader())
		},
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfiguration(cmd.Context(), cmd.OutOrStdout(), loader())
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := loader().Path()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the default configuration file",
			RunE: func(cmd *cobra.Command, args []string) error {
				return initConfiguration(cmd.OutOrStdout(), loader())
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate the configuration file",
			RunE: func(cmd *cobra.Command, args []string) error {
				return validateConfiguration(cmd.Context(), cmd.OutOrStdout(), loader())
			},
		},
		&cobra.Command{
			Use:   "diff",
			Short: "Show differences from the default configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return diffConfiguration(cmd.Context(), cmd.OutOrStdout(), loader())
			},
		},
	)

	return configCmd
}

// showConfiguration prints the effective configuration as YAML
func showConfiguration(ctx context.Context, out io.Writer, loader *configinfra.FileLoader) error {
	cfg, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = out.Write(raw)
	return err
}

// initConfiguration writes the embedded defaults
func initConfiguration(out io.Writer, loader *configinfra.FileLoader) error {
	path, err := loader.WriteDefault()
	if errors.Is(err, fs.ErrExist) {
		fmt.Fprintf(out, "Config already exists at %s\n", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}

// validateConfiguration loads and validates the configuration
func validateConfiguration(ctx context.Context, out io.Writer, loader *configinfra.FileLoader) error {
	cfg, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}
	if !domain.IsKnownMatugenType(cfg.Preferences.DefaultType) {
		fmt.Fprintf(out, "note: %s is not a built-in matugen scheme\n", cfg.Preferences.DefaultType)
	}
	fmt.Fprintln(out, MsgConfigValid)
	return nil
}

// diffConfiguration compares the effective configuration with the defaults
func diffConfiguration(ctx context.Context, out io.Writer, loader *configinfra.FileLoader) error {
	cfg, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	defaults, err := configinfra.Defaults()
	if err != nil {
		return err
	}
	diff := cmp.Diff(defaults, cfg)
	if diff == "" {
		fmt.Fprintln(out, MsgNoConfigChanges)
		return nil
	}
	fmt.Fprintln(out, "Differences (-default +current):")
	fmt.Fprint(out, diff)
	return nil
}
