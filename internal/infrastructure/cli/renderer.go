package cli

import (
	"fmt"
	"io"

	"github.com/doeshing/wallpaper/internal/application/wallpaper"
)

// RenderResult prints the closing line of a successful set or restore.
func RenderResult(out io.Writer, res wallpaper.Result, dryRun bool, doneMsg string) {
	if dryRun {
		fmt.Fprintf(out, "Dry run complete (%d steps), history unchanged.\n", len(res.Report.Outcomes))
		return
	}
	fmt.Fprintln(out, doneMsg)
}
