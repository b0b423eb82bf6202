// Package apply runs the external tools that put a wallpaper on screen and
// theme the desktop from it.
package apply

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/ports"
)

// Sequencer invokes swww, matugen and wallust in that order and stops at the
// first failure. Steps that already succeeded are not undone.
type Sequencer struct {
	Runner    ports.CommandRunner
	DryRunner ports.CommandRunner
	RunLog    ports.RunLog
	Logger    ports.Logger
	NewRunID  func() string
}

// Apply runs the three steps for req. The returned report is populated even
// when an error is returned.
func (s *Sequencer) Apply(ctx context.Context, req domain.ApplyRequest) (domain.SequenceReport, error) {
	report := domain.SequenceReport{State: domain.SequenceIdle}
	if s.Runner == nil || s.DryRunner == nil || s.Logger == nil {
		return report, errors.New("apply.Sequencer dependencies not satisfied")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	runner := s.Runner
	if req.DryRun {
		runner = s.DryRunner
	}
	report.RunID = s.runID()
	report.State = domain.SequenceRunning

	for i, program := range req.Programs() {
		outcome := s.runStep(ctx, runner, program)
		report.Outcomes = append(report.Outcomes, outcome)
		if !req.DryRun {
			s.record(report.RunID, outcome)
		}
		if outcome.Err != nil {
			report.State = domain.SequenceFailed
			report.FailedStep = i + 1
			s.Logger.Error("step failed", outcome.Err, map[string]interface{}{
				"run_id": report.RunID,
				"step":   string(outcome.Step),
			})
			return report, fmt.Errorf("%s: %w", outcome.Step, outcome.Err)
		}
		s.Logger.Debug("step finished", map[string]interface{}{
			"run_id":      report.RunID,
			"step":        string(outcome.Step),
			"duration_ms": outcome.DurationMS,
			"dry_run":     req.DryRun,
		})
	}

	report.State = domain.SequenceDone
	return report, nil
}

func (s *Sequencer) runStep(ctx context.Context, runner ports.CommandRunner, program domain.Program) domain.StepOutcome {
	outcome := domain.StepOutcome{
		Step:    program.Step(),
		Program: program.Name(),
		Args:    program.Args(),
	}

	start := time.Now()
	result, err := runner.Run(ctx, outcome.Program, outcome.Args)
	outcome.DurationMS = time.Since(start).Milliseconds()
	outcome.Result = result

	switch {
	case err != nil:
		outcome.Err = &domain.ExternalToolError{
			Program:  outcome.Program,
			Args:     outcome.Args,
			ExitCode: -1,
			Stdout:   result.Stdout,
			Stderr:   result.Stderr,
			Cause:    err,
		}
	case result.ExitCode != 0:
		outcome.Err = &domain.ExternalToolError{
			Program:  outcome.Program,
			Args:     outcome.Args,
			ExitCode: result.ExitCode,
			Stdout:   result.Stdout,
			Stderr:   result.Stderr,
		}
	}
	return outcome
}

// record appends to the run log; failures there never change the outcome.
func (s *Sequencer) record(runID string, outcome domain.StepOutcome) {
	if s.RunLog == nil {
		return
	}
	rec := domain.RunRecord{
		RunID:      runID,
		Timestamp:  time.Now(),
		Step:       outcome.Step,
		Program:    outcome.Program,
		Args:       outcome.Args,
		Success:    outcome.Err == nil,
		ExitCode:   outcome.Result.ExitCode,
		DurationMS: outcome.DurationMS,
	}
	if outcome.Err != nil {
		rec.Error = outcome.Err.Error()
	}
	if err := s.RunLog.Append(rec); err != nil {
		s.Logger.Warn("run log append failed", map[string]interface{}{
			"path":  s.RunLog.Path(),
			"error": err.Error(),
		})
	}
}

func (s *Sequencer) runID() string {
	if s.NewRunID != nil {
		return s.NewRunID()
	}
	return uuid.NewString()
}
