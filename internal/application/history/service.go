// Package history keeps the wallpaper log: recording applied wallpapers and
// resolving restore steps against it.
package history

import (
	"errors"
	"fmt"

	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/ports"
)

// Service wraps every history access in load (and, for mutations, save).
// Locker is optional; without it concurrent processes race and the last
// save wins.
type Service struct {
	Repo   ports.HistoryRepository
	Locker ports.HistoryLocker
	Logger ports.Logger
	Exists func(path string) bool
}

// Record loads the history, moves path to the front and saves it.
func (s *Service) Record(path, matugenType string, isLight bool) error {
	return s.mutate(func(h *domain.History) error {
		h.Add(path, matugenType, isLight)
		return nil
	})
}

// List returns the current history.
func (s *Service) List() (domain.History, error) {
	if err := s.check(); err != nil {
		return domain.History{}, err
	}
	unlock, err := s.lock(false)
	if err != nil {
		return domain.History{}, err
	}
	defer unlock()
	return s.Repo.Load()
}

// Resolve maps a 1-based restore step to its entry and checks that the
// wallpaper file is still on disk.
func (s *Service) Resolve(step int) (domain.HistoryEntry, error) {
	index, err := domain.StepToIndex(step)
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("%w: restore step must be positive (1-based indexing), got %d", domain.ErrInvalidArgument, step)
	}
	history, err := s.List()
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	if history.IsEmpty() {
		return domain.HistoryEntry{}, fmt.Errorf("%w: no wallpaper history found", domain.ErrNotFound)
	}
	entry, ok := history.Entry(index)
	if !ok {
		return domain.HistoryEntry{}, fmt.Errorf("%w: invalid restore step %d, history has %d entries", domain.ErrNotFound, step, history.Len())
	}
	if s.Exists != nil && !s.Exists(entry.Path) {
		return domain.HistoryEntry{}, fmt.Errorf("%w: %s", domain.ErrStaleEntry, entry.Path)
	}
	return entry, nil
}

// Remove drops the entry at the 1-based step.
func (s *Service) Remove(step int) (domain.HistoryEntry, error) {
	index, err := domain.StepToIndex(step)
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("%w: step must be positive, got %d", domain.ErrInvalidArgument, step)
	}
	var removed domain.HistoryEntry
	err = s.mutate(func(h *domain.History) error {
		entry, ok := h.RemoveAt(index)
		if !ok {
			return fmt.Errorf("%w: invalid step %d, history has %d entries", domain.ErrNotFound, step, h.Len())
		}
		removed = entry
		return nil
	})
	return removed, err
}

// Clear deletes the history file.
func (s *Service) Clear() error {
	if err := s.check(); err != nil {
		return err
	}
	unlock, err := s.lock(true)
	if err != nil {
		return err
	}
	defer unlock()
	return s.Repo.Clear()
}

// Path returns the history file location.
func (s *Service) Path() string {
	if s.Repo == nil {
		return ""
	}
	return s.Repo.Path()
}

func (s *Service) mutate(fn func(*domain.History) error) error {
	if err := s.check(); err != nil {
		return err
	}
	unlock, err := s.lock(true)
	if err != nil {
		return err
	}
	defer unlock()

	history, err := s.Repo.Load()
	if err != nil {
		return err
	}
	if err := fn(&history); err != nil {
		return err
	}
	if err := s.Repo.Save(history); err != nil {
		return err
	}
	s.log("history saved", map[string]interface{}{
		"path":    s.Repo.Path(),
		"entries": history.Len(),
	})
	return nil
}

func (s *Service) lock(exclusive bool) (func(), error) {
	if s.Locker == nil {
		return func() {}, nil
	}
	release, err := s.Locker.Lock(exclusive)
	if err != nil {
		return nil, fmt.Errorf("lock history: %w", err)
	}
	return func() {
		if err := release(); err != nil && s.Logger != nil {
			s.Logger.Warn("history unlock failed", map[string]interface{}{"error": err.Error()})
		}
	}, nil
}

func (s *Service) check() error {
	if s.Repo == nil {
		return errors.New("history.Service dependencies not satisfied")
	}
	return nil
}

func (s *Service) log(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Debug(msg, fields)
	}
}
