package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/wallpaper/internal/app"
	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/infrastructure/cli/helpers"
)

// NewRunsCommand creates the runs command listing recorded tool invocations
func NewRunsCommand(lazy *app.Lazy) *cobra.Command {
	var (
		limit      int
		failedOnly bool
		stats      bool
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent swww/matugen/wallust invocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			if container.RunLog == nil {
				return errors.New(ErrRunLogUnavailable)
			}
			if stats {
				return showRunStats(cmd.OutOrStdout(), container)
			}
			return listRuns(cmd.OutOrStdout(), container, limit, failedOnly)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultRunsLimit, "Max entries to show")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Only show failed steps")
	cmd.Flags().BoolVar(&stats, "stats", false, "Show success rate per program")
	return cmd
}

// listRuns prints run log rows, newest first
func listRuns(out io.Writer, container *app.Container, limit int, failedOnly bool) error {
	records, err := container.RunLog.Recent(limit, failedOnly)
	if err != nil {
		return fmt.Errorf("failed to read run log: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoRunsRecorded)
		return nil
	}

	for _, rec := range records {
		status := "ok"
		if !rec.Success {
			status = fmt.Sprintf("FAILED(%d)", rec.ExitCode)
		}
		fmt.Fprintf(out, "%s | %s | %-13s | %-10s | %s %s\n",
			rec.Timestamp.Local().Format(TimestampFormat),
			shortRunID(rec.RunID),
			rec.Step,
			status,
			rec.Program,
			strings.Join(rec.Args, " "))
		if rec.Error != "" {
			fmt.Fprintf(out, "    %s\n", rec.Error)
		}
	}
	return nil
}

// showRunStats prints success rates per program
func showRunStats(out io.Writer, container *app.Container) error {
	records, err := container.RunLog.Recent(0, false)
	if err != nil {
		return fmt.Errorf("failed to read run log: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoRunsRecorded)
		return nil
	}

	summary := helpers.SummarizeRuns(records)
	fmt.Fprintf(out, "Steps recorded: %s\nSuccess rate: %.1f%%\n",
		humanize.Comma(int64(summary.Total)),
		helpers.CalculateSuccessRate(summary.Successful, summary.Total))
	fmt.Fprintln(out, "By program:")
	for _, stat := range summary.Programs {
		fmt.Fprintf(out, "  %-8s %d runs, %.1f%% ok\n",
			stat.Program,
			stat.Count,
			helpers.CalculateSuccessRate(stat.Successful, stat.Count))
	}
	if !summary.LastFailure.IsZero() {
		fmt.Fprintf(out, "Last failure: %s\n", humanize.Time(summary.LastFailure))
	}
	return nil
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
