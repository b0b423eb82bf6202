package domain

// Step identifies a stage of the apply sequence.
type Step string

const (
	StepWallpaperSet Step = "wallpaper-set"
	StepPaletteGen   Step = "palette-gen"
	StepThemeApply   Step = "theme-apply"
)

// Program is one external tool invocation. The set of implementations is
// closed: Swww, Matugen and Wallust.
type Program interface {
	Step() Step
	Name() string
	Args() []string
	program()
}

// Swww sets the visible wallpaper.
type Swww struct {
	Path string
}

func (Swww) Step() Step   { return StepWallpaperSet }
func (Swww) Name() string { return "swww" }
func (Swww) program()     {}
func (p Swww) Args() []string {
	return []string{
		"img", p.Path,
		"--transition-type", "any",
		"--transition-fps", "60",
		"--transition-duration", "1",
	}
}

// Matugen generates the colour palette.
type Matugen struct {
	Path        string
	MatugenType string
}

func (Matugen) Step() Step   { return StepPaletteGen }
func (Matugen) Name() string { return "matugen" }
func (Matugen) program()     {}
func (p Matugen) Args() []string {
	return []string{"image", p.Path, "--type", p.MatugenType}
}

// Wallust applies the theme to the terminal.
type Wallust struct {
	Path    string
	IsLight bool
}

func (Wallust) Step() Step   { return StepThemeApply }
func (Wallust) Name() string { return "wallust" }
func (Wallust) program()     {}
func (p Wallust) Args() []string {
	args := []string{"run", p.Path, "-k"}
	if p.IsLight {
		args = append(args, "--palette", "light")
	}
	return args
}

// ApplyRequest is a resolved wallpaper with its palette options.
type ApplyRequest struct {
	Path        string
	MatugenType string
	IsLight     bool
	DryRun      bool
}

// Programs returns the invocations in their fixed order: wallpaper first so
// the user sees feedback even if a later step fails.
func (r ApplyRequest) Programs() []Program {
	return []Program{
		Swww{Path: r.Path},
		Matugen{Path: r.Path, MatugenType: r.MatugenType},
		Wallust{Path: r.Path, IsLight: r.IsLight},
	}
}

// SequenceState is the state of one apply run.
type SequenceState string

const (
	SequenceIdle    SequenceState = "idle"
	SequenceRunning SequenceState = "running"
	SequenceDone    SequenceState = "done"
	SequenceFailed  SequenceState = "failed"
)

// StepOutcome captures one attempted step.
type StepOutcome struct {
	Step       Step
	Program    string
	Args       []string
	Result     CommandResult
	DurationMS int64
	Err        error
}

// SequenceReport summarises an apply run. FailedStep is 1-based and zero
// unless State is SequenceFailed.
type SequenceReport struct {
	RunID      string
	State      SequenceState
	FailedStep int
	Outcomes   []StepOutcome
}

// CommandResult is what a runner returns for a finished process.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	DryRun   bool
}
