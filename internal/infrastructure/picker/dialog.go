package picker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/ports"
)

const dialogTitle = "Choose wallpaper"

var imagePatterns = []string{"*.png", "*.jpg", "*.jpeg", "*.webp", "*.gif", "*.bmp", "*.tif", "*.tiff"}

type captureFunc func(ctx context.Context, program string, args []string) (stdout string, exitCode int, err error)

// DialogPicker asks a desktop dialog program (zenity or kdialog) for a file.
type DialogPicker struct {
	command string
	capture captureFunc
}

// NewDialogPicker builds a picker around command.
func NewDialogPicker(command string) *DialogPicker {
	if command == "" {
		command = domain.DefaultPickerCommand
	}
	return &DialogPicker{command: command, capture: execCapture}
}

// Pick implements ports.FilePicker.
func (p *DialogPicker) Pick(ctx context.Context) (string, error) {
	stdout, code, err := p.capture(ctx, p.command, p.args())
	if err != nil {
		return "", fmt.Errorf("open file chooser %s: %w", p.command, err)
	}
	choice := strings.TrimSpace(stdout)
	// both dialogs exit 1 on cancel
	if code == 1 || (code == 0 && choice == "") {
		return "", domain.ErrNoSelection
	}
	if code != 0 {
		return "", &domain.ExternalToolError{Program: p.command, Args: p.args(), ExitCode: code, Stdout: stdout}
	}
	return choice, nil
}

// Command returns the dialog program name.
func (p *DialogPicker) Command() string {
	return p.command
}

func (p *DialogPicker) args() []string {
	switch filepath.Base(p.command) {
	case "kdialog":
		return []string{"--title", dialogTitle, "--getopenfilename", ".", strings.Join(imagePatterns, " ")}
	default:
		return []string{
			"--file-selection",
			"--title=" + dialogTitle,
			"--file-filter=Images | " + strings.Join(imagePatterns, " "),
			"--file-filter=All files | *",
		}
	}
}

func execCapture(ctx context.Context, program string, args []string) (string, int, error) {
	c := exec.CommandContext(ctx, program, args...)
	var stdout bytes.Buffer
	c.Stdout = &stdout
	err := c.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), exitErr.ExitCode(), nil
	}
	if err != nil {
		return "", -1, err
	}
	return stdout.String(), 0, nil
}

var _ ports.FilePicker = (*DialogPicker)(nil)
