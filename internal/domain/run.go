package domain

import "time"

// RunRecord is one attempted external step as stored in the run log.
type RunRecord struct {
	RunID      string    `json:"run_id"`
	Timestamp  time.Time `json:"timestamp"`
	Step       Step      `json:"step"`
	Program    string    `json:"program"`
	Args       []string  `json:"args"`
	Success    bool      `json:"success"`
	ExitCode   int       `json:"exit_code"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
}

// ImageInfo is the header information of an image file.
type ImageInfo struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
