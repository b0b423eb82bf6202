package cli

import (
	"fmt"

	"github.com/doeshing/wallpaper/internal/domain"
)

// ModeKind is the primary action of an invocation.
type ModeKind int

const (
	ModeInteractivePick ModeKind = iota + 1
	ModeExplicitPath
	ModeShowHistory
	ModeRestoreStep
)

// Mode is the one primary action selected on the command line. Path is set
// for ModeExplicitPath, Step for ModeRestoreStep.
type Mode struct {
	Kind ModeKind
	Path string
	Step int
}

// modeFlags are the raw primary-mode inputs.
type modeFlags struct {
	gui        bool
	history    bool
	restore    int
	restoreSet bool
	args       []string
}

// selectMode enforces that exactly one primary mode was requested.
func selectMode(f modeFlags) (Mode, error) {
	var modes []Mode
	if f.gui {
		modes = append(modes, Mode{Kind: ModeInteractivePick})
	}
	if len(f.args) > 0 {
		modes = append(modes, Mode{Kind: ModeExplicitPath, Path: f.args[0]})
	}
	if f.history {
		modes = append(modes, Mode{Kind: ModeShowHistory})
	}
	if f.restoreSet {
		modes = append(modes, Mode{Kind: ModeRestoreStep, Step: f.restore})
	}
	if len(modes) != 1 {
		return Mode{}, fmt.Errorf("%w: exactly one of --gui, path, --history, or --restore must be provided", domain.ErrInvalidArgument)
	}
	return modes[0], nil
}
