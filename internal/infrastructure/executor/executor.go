package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/ports"
)

// LocalRunner runs programs directly (no shell) and echoes their captured
// output once they exit.
type LocalRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewLocalRunner builds a runner echoing to the given writers, defaulting to
// the process streams.
func NewLocalRunner(stdout, stderr io.Writer) *LocalRunner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &LocalRunner{stdout: stdout, stderr: stderr}
}

// Run implements ports.CommandRunner.
func (r *LocalRunner) Run(ctx context.Context, program string, args []string) (domain.CommandResult, error) {
	fmt.Fprintf(r.stdout, "Running: %s\n", commandLine(program, args))

	c := exec.CommandContext(ctx, program, args...)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()

	result := domain.CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
	}
	if result.Stdout != "" {
		fmt.Fprint(r.stdout, result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprintln(r.stderr, strings.TrimRight(result.Stderr, "\n"))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// killed by a signal reports -1, which callers treat as no status
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("failed to spawn command `%s` (is it installed and in PATH?): %w", program, err)
	}
	result.ExitCode = c.ProcessState.ExitCode()
	return result, nil
}

// DryRunner replaces every invocation with a trace line.
type DryRunner struct {
	out io.Writer
}

// NewDryRunner builds a dry-run runner writing traces to out.
func NewDryRunner(out io.Writer) *DryRunner {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunner{out: out}
}

// Run implements ports.CommandRunner without spawning anything.
func (d *DryRunner) Run(_ context.Context, program string, args []string) (domain.CommandResult, error) {
	fmt.Fprintf(d.out, "[DRY RUN] Would run: %s\n", commandLine(program, args))
	return domain.CommandResult{DryRun: true}, nil
}

// PathLocator resolves programs with exec.LookPath.
type PathLocator struct{}

// LookPath implements ports.ToolLocator.
func (PathLocator) LookPath(program string) (string, error) {
	return exec.LookPath(program)
}

func commandLine(program string, args []string) string {
	return strings.TrimSpace(program + " " + strings.Join(args, " "))
}

var (
	_ ports.CommandRunner = (*LocalRunner)(nil)
	_ ports.CommandRunner = (*DryRunner)(nil)
	_ ports.ToolLocator   = PathLocator{}
)
