// Package wallpaper drives a single invocation: resolve an image, apply it
// and keep the history in step.
package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"io"

	appconfig "github.com/doeshing/wallpaper/internal/application/config"
	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/ports"
)

// Applier runs the external tool sequence.
type Applier interface {
	Apply(ctx context.Context, req domain.ApplyRequest) (domain.SequenceReport, error)
}

// HistoryKeeper is the part of the history service the driver needs.
type HistoryKeeper interface {
	Record(path, matugenType string, isLight bool) error
	Resolve(step int) (domain.HistoryEntry, error)
}

// Service orchestrates set and restore end-to-end.
type Service struct {
	ConfigProvider ports.ConfigProvider
	History        HistoryKeeper
	Applier        Applier
	Picker         ports.FilePicker
	Prober         ports.ImageProber
	DryRunProber   ports.ImageProber
	Logger         ports.Logger
	ResolvePath    func(string) (string, error)
	Out            io.Writer
}

// SetRequest selects a new wallpaper. Exactly one of Path or Pick is used.
// A nil Light falls back to the configured preference.
type SetRequest struct {
	Path        string
	Pick        bool
	MatugenType string
	Light       *bool
	DryRun      bool
}

// RestoreRequest re-applies a wallpaper from history.
type RestoreRequest struct {
	Step   int
	DryRun bool
}

// Result reports what was applied.
type Result struct {
	Entry  domain.HistoryEntry
	Report domain.SequenceReport
}

// Set applies a new wallpaper and records it (unless dry-running).
func (s *Service) Set(ctx context.Context, req SetRequest) (Result, error) {
	if err := s.check(); err != nil {
		return Result{}, err
	}
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load config: %w", err)
	}

	raw := req.Path
	if req.Pick {
		if s.Picker == nil {
			return Result{}, errors.New("file chooser unavailable")
		}
		raw, err = s.Picker.Pick(ctx)
		if err != nil {
			return Result{}, err
		}
	}
	if raw == "" {
		return Result{}, fmt.Errorf("%w: no path provided", domain.ErrInvalidArgument)
	}

	path, err := s.ResolvePath(raw)
	if err != nil {
		return Result{}, err
	}

	entry := domain.HistoryEntry{
		Path:        path,
		MatugenType: cfg.MatugenTypeOr(req.MatugenType),
		IsLight:     cfg.LightOr(req.Light),
	}
	s.printf("wallpaper - %s\n", path)
	return s.apply(ctx, entry, req.DryRun)
}

// Restore re-applies history entry Step and moves it to the front.
func (s *Service) Restore(ctx context.Context, req RestoreRequest) (Result, error) {
	if err := s.check(); err != nil {
		return Result{}, err
	}
	entry, err := s.History.Resolve(req.Step)
	if err != nil {
		return Result{}, err
	}
	s.printf("Restoring wallpaper from step %d: %s\n", req.Step, entry.Path)

	path, err := s.ResolvePath(entry.Path)
	if err != nil {
		return Result{}, err
	}
	entry.Path = path
	return s.apply(ctx, entry, req.DryRun)
}

func (s *Service) apply(ctx context.Context, entry domain.HistoryEntry, dryRun bool) (Result, error) {
	if err := appconfig.ValidateMatugenType(entry.MatugenType); err != nil {
		return Result{}, err
	}
	s.probe(entry.Path, dryRun)

	report, err := s.Applier.Apply(ctx, domain.ApplyRequest{
		Path:        entry.Path,
		MatugenType: entry.MatugenType,
		IsLight:     entry.IsLight,
		DryRun:      dryRun,
	})
	result := Result{Entry: entry, Report: report}
	if err != nil {
		return result, err
	}

	if dryRun {
		s.Logger.Debug("dry run, history not updated", map[string]interface{}{"path": entry.Path})
		return result, nil
	}
	if err := s.History.Record(entry.Path, entry.MatugenType, entry.IsLight); err != nil {
		return result, fmt.Errorf("update history: %w", err)
	}
	return result, nil
}

// probe only informs; the external tools decide which formats they accept.
// Dry runs use DryRunProber when set so nothing is persisted.
func (s *Service) probe(path string, dryRun bool) {
	prober := s.Prober
	if dryRun && s.DryRunProber != nil {
		prober = s.DryRunProber
	}
	if prober == nil {
		return
	}
	info, err := prober.Probe(path)
	if err != nil {
		s.Logger.Warn("unrecognised image format", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return
	}
	s.Logger.Debug("image detected", map[string]interface{}{
		"path":   path,
		"format": info.Format,
		"width":  info.Width,
		"height": info.Height,
	})
}

func (s *Service) printf(format string, args ...interface{}) {
	if s.Out != nil {
		fmt.Fprintf(s.Out, format, args...)
	}
}

func (s *Service) check() error {
	if s.ConfigProvider == nil || s.History == nil || s.Applier == nil || s.Logger == nil || s.ResolvePath == nil {
		return errors.New("wallpaper.Service dependencies not satisfied")
	}
	return nil
}
