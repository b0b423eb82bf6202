package doctor

import (
	"context"
	"fmt"

	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/ports"
)

// requiredTools are the programs the apply sequence invokes.
var requiredTools = []string{"swww", "matugen", "wallust"}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	History        ports.HistoryRepository
	RunLog         ports.RunLog
	Locator        ports.ToolLocator
	DataDir        func() (string, error)
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format %s, default type %s", cfg.ConfigFormatVersion, cfg.MatugenTypeOr(""))))

	if s.DataDir != nil {
		if dir, err := s.DataDir(); err != nil {
			checks = append(checks, fail("Data directory", err.Error()))
		} else {
			checks = append(checks, ok("Data directory", dir))
		}
	}

	if s.History != nil {
		if history, err := s.History.Load(); err != nil {
			checks = append(checks, fail("History", err.Error()))
		} else {
			checks = append(checks, ok("History", fmt.Sprintf("%d/%d entries in %s", history.Len(), domain.MaxHistoryEntries, s.History.Path())))
		}
	}

	switch {
	case !cfg.RunLog.Enabled:
		checks = append(checks, warn("Run log", "disabled in config"))
	case s.RunLog == nil:
		checks = append(checks, warn("Run log", "not initialized"))
	default:
		if _, err := s.RunLog.Recent(1, false); err != nil {
			checks = append(checks, fail("Run log", err.Error()))
		} else {
			checks = append(checks, ok("Run log", s.RunLog.Path()))
		}
	}

	if s.Locator != nil {
		for _, tool := range requiredTools {
			checks = append(checks, s.toolCheck(tool, fail))
		}
		// only --gui needs the chooser
		checks = append(checks, s.toolCheck(cfg.PickerCommand(), warn))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) toolCheck(tool string, missing func(name, details string) domain.HealthCheck) domain.HealthCheck {
	path, err := s.Locator.LookPath(tool)
	if err != nil {
		return missing(tool, "not found in PATH")
	}
	return ok(tool, path)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
