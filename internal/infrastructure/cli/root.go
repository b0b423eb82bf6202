package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/wallpaper/internal/app"
	"github.com/doeshing/wallpaper/internal/application/wallpaper"
	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/infrastructure/cli/commands"
	"github.com/doeshing/wallpaper/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewRootCmd wires the cobra root command. The returned closer releases
// resources opened while running it.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, io.Closer) {
	lazy := &app.Lazy{Options: app.Options{
		Verbose: opts.Verbose,
		Stdout:  opts.Stdout,
		Stderr:  opts.Stderr,
	}}

	var (
		gui         bool
		showHistory bool
		restore     int
		light       bool
		matugenType string
		dryRun      bool
	)

	root := &cobra.Command{
		Use:   "wallpaper [path]",
		Short: "Set wallpaper and generate palette",
		Long: "wallpaper sets the wallpaper with swww, generates a palette with matugen and\n" +
			"applies it with wallust, remembering the last " + fmt.Sprint(domain.MaxHistoryEntries) + " wallpapers for --restore.\n\n" +
			"Subcommand names take precedence over paths: pass an image named like a\n" +
			"subcommand (history, runs, doctor, config, version) as ./history.",
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := selectMode(modeFlags{
				gui:        gui,
				history:    showHistory,
				restore:    restore,
				restoreSet: cmd.Flags().Changed("restore"),
				args:       args,
			})
			if err != nil {
				return err
			}

			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch mode.Kind {
			case ModeShowHistory:
				return commands.ListHistory(out, container)
			case ModeRestoreStep:
				res, err := container.WallpaperService.Restore(cmd.Context(), wallpaper.RestoreRequest{
					Step:   mode.Step,
					DryRun: dryRun,
				})
				if err != nil {
					return err
				}
				RenderResult(out, res, dryRun, "Wallpaper restored successfully.")
				return nil
			default:
				res, err := container.WallpaperService.Set(cmd.Context(), wallpaper.SetRequest{
					Path:        mode.Path,
					Pick:        mode.Kind == ModeInteractivePick,
					MatugenType: matugenType,
					Light:       lightFlag(cmd, light),
					DryRun:      dryRun,
				})
				if err != nil {
					return err
				}
				RenderResult(out, res, dryRun, "Done.")
				return nil
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if opts.Stdout != nil {
		root.SetOut(opts.Stdout)
	}
	if opts.Stderr != nil {
		root.SetErr(opts.Stderr)
	}

	flags := root.Flags()
	flags.BoolVar(&gui, "gui", false, "Open graphical file chooser")
	flags.BoolVar(&showHistory, "history", false, "Show wallpaper history")
	flags.IntVar(&restore, "restore", 0, "Restore the wallpaper from history step N (1 = most recent)")
	flags.BoolVarP(&light, "light", "l", false, "Use light palette mode")
	flags.StringVar(&matugenType, "type", "", "matugen scheme type [values: "+strings.Join(domain.KnownMatugenTypes, ", ")+"] (default from config)")
	flags.BoolVar(&dryRun, "dry-run", false, "Show what would be executed without running commands")
	_ = root.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return domain.KnownMatugenTypes, cobra.ShellCompDirectiveNoFileComp
	})

	persistent := root.PersistentFlags()
	persistent.BoolVarP(&lazy.Options.Verbose, "verbose", "v", opts.Verbose, "Enable verbose logging")
	persistent.StringVar(&lazy.Options.ConfigPath, "config", "", "Config file (default $XDG_CONFIG_HOME/wallpaper/config.yaml)")

	root.AddCommand(
		commands.NewHistoryCommand(lazy),
		commands.NewRunsCommand(lazy),
		commands.NewDoctorCommand(lazy),
		commands.NewConfigCommand(lazy),
		commands.NewVersionCommand(),
	)
	return root, lazy
}

// lightFlag returns nil when --light was not given so the config decides.
func lightFlag(cmd *cobra.Command, light bool) *bool {
	if !cmd.Flags().Changed("light") {
		return nil
	}
	return &light
}
