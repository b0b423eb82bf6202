package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/wallpaper/internal/domain"
)

func TestDoctorReportsMissingTools(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfig{cfg: domain.Config{RunLog: domain.RunLogSettings{Enabled: true}, Picker: domain.PickerSettings{Command: "zenity"}}},
		History:        stubHistory{},
		RunLog:         stubRunLog{},
		Locator:        stubLocator{installed: map[string]bool{"swww": true, "wallust": true}},
		DataDir:        func() (string, error) { return "/data/wallpaper", nil },
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	statuses := map[string]domain.HealthStatus{}
	for _, c := range report.Checks {
		statuses[c.Name] = c.Status
	}

	want := map[string]domain.HealthStatus{
		"Config file":    domain.HealthOK,
		"Data directory": domain.HealthOK,
		"History":        domain.HealthOK,
		"Run log":        domain.HealthOK,
		"swww":           domain.HealthOK,
		"matugen":        domain.HealthError,
		"wallust":        domain.HealthOK,
		"zenity":         domain.HealthWarn,
	}
	for name, status := range want {
		if statuses[name] != status {
			t.Errorf("%s = %s, want %s", name, statuses[name], status)
		}
	}
	if !report.Failed() {
		t.Error("expected report to be failed when matugen is missing")
	}
}

func TestDoctorConfigFailure(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfig{err: errors.New("bad yaml")}}

	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(report.Checks) != 1 || report.Checks[0].Status != domain.HealthError {
		t.Fatalf("report = %+v", report)
	}
}

func TestDoctorHistoryAndDataDirFailures(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfig{},
		History:        stubHistory{err: domain.ErrParse},
		DataDir:        func() (string, error) { return "", domain.ErrConfig },
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	var failed []string
	for _, c := range report.Checks {
		if c.Status == domain.HealthError {
			failed = append(failed, c.Name)
		}
		if c.Name == "Run log" && c.Status != domain.HealthWarn {
			t.Errorf("disabled run log should warn, got %s", c.Status)
		}
	}
	if len(failed) != 2 {
		t.Fatalf("failed checks = %v", failed)
	}
}

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubHistory struct {
	err error
}

func (s stubHistory) Load() (domain.History, error) { return domain.History{}, s.err }
func (stubHistory) Save(domain.History) error       { return nil }
func (stubHistory) Clear() error                    { return nil }
func (stubHistory) Path() string                    { return "/data/wallpaper/history.json" }

type stubRunLog struct{}

func (stubRunLog) Append(domain.RunRecord) error                { return nil }
func (stubRunLog) Recent(int, bool) ([]domain.RunRecord, error) { return nil, nil }
func (stubRunLog) Path() string                                 { return "/data/wallpaper/runs.db" }

type stubLocator struct {
	installed map[string]bool
}

func (s stubLocator) LookPath(program string) (string, error) {
	if s.installed[program] {
		return "/usr/bin/" + program, nil
	}
	return "", errors.New("not found")
}
