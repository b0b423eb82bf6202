package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/wallpaper/internal/app"
	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/pkg/filesystem"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(lazy *app.Lazy) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect wallpaper history",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			return ListHistory(cmd.OutOrStdout(), container)
		},
	}

	historyCmd.AddCommand(
		newHistoryListCommand(lazy),
		newHistoryRemoveCommand(lazy),
		newHistoryClearCommand(lazy),
		newHistoryPathCommand(lazy),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recent wallpapers, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			return ListHistory(cmd.OutOrStdout(), container)
		},
	}
}

// newHistoryRemoveCommand creates the 'history remove' subcommand
func newHistoryRemoveCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <step>",
		Short: "Remove one entry (1 = most recent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: step must be a number, got %q", domain.ErrInvalidArgument, args[0])
			}
			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			if container.HistoryService == nil {
				return errors.New(ErrHistoryServiceUnavailable)
			}
			removed, err := container.HistoryService.Remove(step)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", removed.Path)
			return nil
		},
	}
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the history file",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			if container.HistoryService == nil {
				return errors.New(ErrHistoryServiceUnavailable)
			}
			if err := container.HistoryService.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
			return nil
		},
	}
}

// newHistoryPathCommand creates the 'history path' subcommand
func newHistoryPathCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the history file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), container.HistoryService.Path())
			return nil
		},
	}
}

// ListHistory prints the history table used by both --history and 'history list'
func ListHistory(out io.Writer, container *app.Container) error {
	if container.HistoryService == nil {
		return errors.New(ErrHistoryServiceUnavailable)
	}

	history, err := container.HistoryService.List()
	if err != nil {
		return err
	}

	if history.IsEmpty() {
		fmt.Fprintln(out, MsgNoHistory)
		return nil
	}

	fmt.Fprintf(out, "Wallpaper History (%d entries):\n", history.Len())
	fmt.Fprintln(out, strings.Repeat("-", SeparatorWidth))

	for i, entry := range history.Entries {
		fmt.Fprintln(out, formatHistoryLine(i+1, entry, imageSummary(container, entry.Path)))
	}

	return nil
}

// formatHistoryLine renders one history row
func formatHistoryLine(step int, entry domain.HistoryEntry, image string) string {
	ts := entry.Time()
	line := fmt.Sprintf("%2d: %s | %s (%s) | Type: %s | Light: %t",
		step,
		entry.Path,
		ts.UTC().Format(TimestampFormat),
		humanize.Time(ts),
		entry.MatugenType,
		entry.IsLight)
	if image != "" {
		line += " | " + image
	}
	return line
}

// imageSummary describes the file behind a history entry
func imageSummary(container *app.Container, path string) string {
	if !filesystem.Exists(path) {
		return "missing"
	}
	if container.Prober == nil {
		return ""
	}
	info, err := container.Prober.Probe(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%dx%d %s", info.Width, info.Height, info.Format)
}
