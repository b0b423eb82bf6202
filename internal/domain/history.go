package domain

import (
	"slices"
	"time"
)

// HistoryEntry records one applied wallpaper. Path is the deduplication key.
type HistoryEntry struct {
	Path        string `json:"path"`
	Timestamp   uint64 `json:"timestamp"`
	MatugenType string `json:"matugen_type"`
	IsLight     bool   `json:"is_light"`
}

// NewHistoryEntry stamps a new entry with the current time.
func NewHistoryEntry(path, matugenType string, isLight bool) HistoryEntry {
	return HistoryEntry{
		Path:        path,
		Timestamp:   uint64(time.Now().Unix()),
		MatugenType: matugenType,
		IsLight:     isLight,
	}
}

// maxTimestamp is 9999-12-31T23:59:59Z, the last instant RFC3339 can render.
const maxTimestamp = 253402300799

// Time converts the stored unix seconds back to a time.Time. Hand-edited
// values past maxTimestamp are clamped.
func (e HistoryEntry) Time() time.Time {
	if e.Timestamp > maxTimestamp {
		return time.Unix(maxTimestamp, 0)
	}
	return time.Unix(int64(e.Timestamp), 0)
}

// History is the bounded, most-recent-first wallpaper log.
type History struct {
	Entries []HistoryEntry `json:"entries"`
}

// Add moves path to the front of the log, replacing any previous entry for
// the same path and evicting the oldest entry beyond MaxHistoryEntries.
func (h *History) Add(path, matugenType string, isLight bool) {
	h.Insert(NewHistoryEntry(path, matugenType, isLight))
}

// Insert is Add with a caller-built entry.
func (h *History) Insert(entry HistoryEntry) {
	h.Entries = slices.DeleteFunc(h.Entries, func(e HistoryEntry) bool {
		return e.Path == entry.Path
	})
	h.Entries = slices.Insert(h.Entries, 0, entry)
	if len(h.Entries) > MaxHistoryEntries {
		h.Entries = h.Entries[:MaxHistoryEntries]
	}
}

// Entry returns the entry at the zero-based index.
func (h *History) Entry(index int) (HistoryEntry, bool) {
	if index < 0 || index >= len(h.Entries) {
		return HistoryEntry{}, false
	}
	return h.Entries[index], true
}

// RemoveAt drops the entry at the zero-based index.
func (h *History) RemoveAt(index int) (HistoryEntry, bool) {
	entry, ok := h.Entry(index)
	if !ok {
		return HistoryEntry{}, false
	}
	h.Entries = slices.Delete(h.Entries, index, index+1)
	return entry, true
}

// IsEmpty reports whether no wallpaper has been recorded.
func (h *History) IsEmpty() bool {
	return len(h.Entries) == 0
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.Entries)
}

// StepToIndex maps a 1-based restore step to a zero-based index.
func StepToIndex(step int) (int, error) {
	if step <= 0 {
		return 0, ErrInvalidArgument
	}
	return step - 1, nil
}
