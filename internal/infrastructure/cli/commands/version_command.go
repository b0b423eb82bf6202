package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/wallpaper/internal/version"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show wallpaper version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Version)
				return nil
			}
			writeVersion(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

// writeVersion prints build metadata, skipping fields not set at link time
func writeVersion(out io.Writer) {
	fmt.Fprintf(out, "wallpaper %s (%s/%s, %s)\n", version.Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
	for _, field := range []struct{ label, value string }{
		{"commit", version.Commit},
		{"built", version.BuildDate},
	} {
		if field.value != "" {
			fmt.Fprintf(out, "  %s: %s\n", field.label, field.value)
		}
	}
}
