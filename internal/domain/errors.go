package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories surfaced to the top level. Callers wrap them with context
// and match with errors.Is.
var (
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotAFile    = errors.New("path is not a file")
	ErrConfig          = errors.New("unable to determine data directory")
	ErrRead            = errors.New("failed to read history file")
	ErrWrite           = errors.New("failed to write history file")
	ErrParse           = errors.New("failed to parse history file")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found in history")
	ErrStaleEntry      = errors.New("wallpaper file no longer exists")
	ErrExternalTool    = errors.New("external tool failed")
	ErrNoSelection     = errors.New("no file selected")
)

// ExternalToolError describes a failed external program invocation.
// ExitCode is -1 when the process never reported a status.
type ExternalToolError struct {
	Program  string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Cause    error
}

func (e *ExternalToolError) Error() string {
	cmdline := strings.TrimSpace(e.Program + " " + strings.Join(e.Args, " "))
	if e.ExitCode < 0 {
		if e.Cause != nil {
			return fmt.Sprintf("failed to run `%s`: %v", cmdline, e.Cause)
		}
		return fmt.Sprintf("command `%s` exited without a status", cmdline)
	}
	msg := fmt.Sprintf("command `%s` exited with status %d", cmdline, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + lastLine(stderr)
	}
	return msg
}

// Is lets errors.Is(err, ErrExternalTool) match any ExternalToolError.
func (e *ExternalToolError) Is(target error) bool {
	return target == ErrExternalTool
}

func (e *ExternalToolError) Unwrap() error {
	return e.Cause
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
