package apply

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/pkg/logger"
)

func TestSequencerRunsStepsInOrder(t *testing.T) {
	runner := &stubRunner{}
	runLog := &stubRunLog{}
	seq := newSequencer(runner, &stubRunner{}, runLog)

	report, err := seq.Apply(context.Background(), domain.ApplyRequest{
		Path:        "/a.jpg",
		MatugenType: "scheme-neutral",
		IsLight:     true,
	})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if report.State != domain.SequenceDone || report.FailedStep != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.RunID != "run-1" {
		t.Fatalf("RunID = %s", report.RunID)
	}

	want := []call{
		{"swww", []string{"img", "/a.jpg", "--transition-type", "any", "--transition-fps", "60", "--transition-duration", "1"}},
		{"matugen", []string{"image", "/a.jpg", "--type", "scheme-neutral"}},
		{"wallust", []string{"run", "/a.jpg", "-k", "--palette", "light"}},
	}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Fatalf("calls = %+v\nwant %+v", runner.calls, want)
	}
	if len(runLog.records) != 3 {
		t.Fatalf("run log records = %d", len(runLog.records))
	}
	for _, rec := range runLog.records {
		if !rec.Success || rec.RunID != "run-1" {
			t.Fatalf("unexpected record %+v", rec)
		}
	}
}

func TestSequencerAbortsOnFirstFailure(t *testing.T) {
	runner := &stubRunner{exitCodes: map[string]int{"matugen": 1}, stderr: "bad scheme"}
	runLog := &stubRunLog{}
	seq := newSequencer(runner, &stubRunner{}, runLog)

	report, err := seq.Apply(context.Background(), domain.ApplyRequest{Path: "/a.jpg", MatugenType: "scheme-x"})
	if !errors.Is(err, domain.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	var toolErr *domain.ExternalToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ExternalToolError in chain, got %T", err)
	}
	if toolErr.Program != "matugen" || toolErr.ExitCode != 1 || toolErr.Stderr != "bad scheme" {
		t.Fatalf("unexpected tool error %+v", toolErr)
	}
	if !reflect.DeepEqual(toolErr.Args, []string{"image", "/a.jpg", "--type", "scheme-x"}) {
		t.Fatalf("args = %v", toolErr.Args)
	}

	if got := runner.programs(); !reflect.DeepEqual(got, []string{"swww", "matugen"}) {
		t.Fatalf("programs run = %v, wallust must not run", got)
	}
	if report.State != domain.SequenceFailed || report.FailedStep != 2 {
		t.Fatalf("report = %+v", report)
	}
	if len(report.Outcomes) != 2 || report.Outcomes[0].Err != nil {
		t.Fatalf("outcomes = %+v", report.Outcomes)
	}
	if len(runLog.records) != 2 || runLog.records[1].Success || runLog.records[1].ExitCode != 1 {
		t.Fatalf("run log = %+v", runLog.records)
	}
}

func TestSequencerSpawnFailure(t *testing.T) {
	runner := &stubRunner{spawnErr: map[string]error{"swww": errors.New("executable file not found")}}
	seq := newSequencer(runner, &stubRunner{}, nil)

	report, err := seq.Apply(context.Background(), domain.ApplyRequest{Path: "/a.jpg", MatugenType: "scheme-content"})
	var toolErr *domain.ExternalToolError
	if !errors.As(err, &toolErr) || toolErr.ExitCode != -1 || toolErr.Cause == nil {
		t.Fatalf("expected spawn ExternalToolError, got %v", err)
	}
	if report.FailedStep != 1 || len(runner.calls) != 1 {
		t.Fatalf("report = %+v, calls = %v", report, runner.calls)
	}
}

func TestSequencerMissingExitStatusFails(t *testing.T) {
	runner := &stubRunner{exitCodes: map[string]int{"wallust": -1}}
	seq := newSequencer(runner, &stubRunner{}, nil)

	report, err := seq.Apply(context.Background(), domain.ApplyRequest{Path: "/a.jpg", MatugenType: "scheme-content"})
	if !errors.Is(err, domain.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if report.FailedStep != 3 {
		t.Fatalf("FailedStep = %d", report.FailedStep)
	}
}

func TestSequencerDryRunNeverUsesRealRunner(t *testing.T) {
	local := &stubRunner{spawnErr: map[string]error{"swww": errors.New("must not run")}}
	dry := &stubRunner{dry: true}
	runLog := &stubRunLog{}
	seq := newSequencer(local, dry, runLog)

	report, err := seq.Apply(context.Background(), domain.ApplyRequest{Path: "/a.jpg", MatugenType: "scheme-content", DryRun: true})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if len(local.calls) != 0 {
		t.Fatalf("local runner invoked in dry run: %v", local.calls)
	}
	if got := dry.programs(); !reflect.DeepEqual(got, []string{"swww", "matugen", "wallust"}) {
		t.Fatalf("dry programs = %v", got)
	}
	if report.State != domain.SequenceDone {
		t.Fatalf("State = %s", report.State)
	}
	if len(runLog.records) != 0 {
		t.Fatalf("dry run wrote run log: %+v", runLog.records)
	}
}

func TestSequencerRunLogErrorIgnored(t *testing.T) {
	seq := newSequencer(&stubRunner{}, &stubRunner{}, &stubRunLog{err: errors.New("disk full")})

	if _, err := seq.Apply(context.Background(), domain.ApplyRequest{Path: "/a.jpg", MatugenType: "scheme-content"}); err != nil {
		t.Fatalf("run log failure leaked: %v", err)
	}
}

func TestSequencerRequiresDependencies(t *testing.T) {
	seq := &Sequencer{}
	if _, err := seq.Apply(context.Background(), domain.ApplyRequest{}); err == nil {
		t.Fatal("expected dependency error")
	}
}

func newSequencer(runner, dry *stubRunner, runLog *stubRunLog) *Sequencer {
	seq := &Sequencer{
		Runner:    runner,
		DryRunner: dry,
		Logger:    logger.NewStd(false),
		NewRunID:  func() string { return "run-1" },
	}
	if runLog != nil {
		seq.RunLog = runLog
	}
	return seq
}

type call struct {
	Program string
	Args    []string
}

type stubRunner struct {
	calls     []call
	exitCodes map[string]int
	spawnErr  map[string]error
	stderr    string
	dry       bool
}

func (s *stubRunner) Run(_ context.Context, program string, args []string) (domain.CommandResult, error) {
	s.calls = append(s.calls, call{Program: program, Args: args})
	if err := s.spawnErr[program]; err != nil {
		return domain.CommandResult{ExitCode: -1}, err
	}
	code := s.exitCodes[program]
	result := domain.CommandResult{ExitCode: code, DryRun: s.dry}
	if code != 0 {
		result.Stderr = s.stderr
	}
	return result, nil
}

func (s *stubRunner) programs() []string {
	var names []string
	for _, c := range s.calls {
		names = append(names, c.Program)
	}
	return names
}

type stubRunLog struct {
	records []domain.RunRecord
	err     error
}

func (s *stubRunLog) Append(rec domain.RunRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *stubRunLog) Recent(int, bool) ([]domain.RunRecord, error) { return s.records, nil }
func (s *stubRunLog) Path() string                                 { return "runs.db" }
