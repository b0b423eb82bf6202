package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for history and config files (rw-r--r--)
	FilePermissions = 0o644
)

// History constants
const (
	// MaxHistoryEntries bounds the wallpaper history
	MaxHistoryEntries = 50
	// ProbeCacheMaxEntries bounds the image header cache
	ProbeCacheMaxEntries = 200
	// HistoryFileName is the history file inside the data directory
	HistoryFileName = "history.json"
	// RunLogFileName is the sqlite run log inside the data directory
	RunLogFileName = "runs.db"
	// AppDirName names the per-user data and config directories
	AppDirName = "wallpaper"
	// DefaultRunsLimit is the default number of run log rows to display
	DefaultRunsLimit = 20
)

// Palette defaults
const (
	// DefaultMatugenType is the scheme used when neither flag nor config sets one
	DefaultMatugenType = "scheme-tonal-spot"
	// DefaultPickerCommand is the interactive file chooser
	DefaultPickerCommand = "zenity"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)

// KnownMatugenTypes lists the schemes matugen ships with. The list is only
// used for help text and shell completion; any non-empty value is passed on.
var KnownMatugenTypes = []string{
	"scheme-content",
	"scheme-expressive",
	"scheme-fidelity",
	"scheme-fruit-salad",
	"scheme-monochrome",
	"scheme-neutral",
	"scheme-rainbow",
	"scheme-tonal-spot",
}
