// Package ports defines the interfaces (ports) between the wallpaper core and
// its adapters.
//
// The application services (history bookkeeping, the apply sequencer, the
// doctor) only depend on these interfaces. Concrete implementations live in
// the infrastructure layer: the JSON history file, the sqlite run log, the
// process runner, the zenity picker and the YAML config loader.
package ports

import (
	"context"

	"github.com/doeshing/wallpaper/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.config/wallpaper/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// HistoryRepository persists the wallpaper history as a whole document.
// Load returns an empty history when nothing has been saved yet.
type HistoryRepository interface {
	Load() (domain.History, error)
	Save(domain.History) error
	Clear() error
	Path() string
}

// HistoryLocker serialises load-mutate-save cycles across processes.
// The returned function releases the lock.
type HistoryLocker interface {
	Lock(exclusive bool) (func() error, error)
}

// CommandRunner runs an external program to completion and captures its output.
// A non-nil error means the process could not be started or reported no status;
// a non-zero exit is reported through the result.
type CommandRunner interface {
	Run(ctx context.Context, program string, args []string) (domain.CommandResult, error)
}

// RunLog records attempted external steps.
type RunLog interface {
	Append(domain.RunRecord) error
	Recent(limit int, failedOnly bool) ([]domain.RunRecord, error)
	Path() string
}

// FilePicker prompts the user for an image file.
// It returns domain.ErrNoSelection when the user cancels.
type FilePicker interface {
	Pick(ctx context.Context) (string, error)
}

// ImageProber reads image headers without decoding pixel data.
type ImageProber interface {
	Probe(path string) (domain.ImageInfo, error)
}

// ToolLocator reports where an external program resolves on PATH.
type ToolLocator interface {
	LookPath(program string) (string, error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
