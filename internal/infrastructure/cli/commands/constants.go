package commands

import "github.com/doeshing/wallpaper/internal/domain"

// Error messages
const (
	ErrHistoryServiceUnavailable = "history service unavailable"
	ErrRunLogUnavailable         = "run log disabled or unavailable"
	ErrDoctorServiceUnavailable  = "doctor service unavailable"
)

// Success messages
const (
	MsgNoHistory       = "No wallpaper history found."
	MsgHistoryCleared  = "Wallpaper history cleared."
	MsgNoRunsRecorded  = "No runs recorded yet."
	MsgConfigValid     = "Configuration valid"
	MsgNoConfigChanges = "No differences from default configuration."
)

// Display constants
const (
	// TimestampFormat is used for history and run listings
	TimestampFormat = domain.TimestampFormat
	// SeparatorWidth is the width of the history header rule
	SeparatorWidth = 80
)
