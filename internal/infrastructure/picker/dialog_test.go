package picker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/doeshing/wallpaper/internal/domain"
)

type fakeDialog struct {
	stdout  string
	code    int
	err     error
	program string
	args    []string
}

func (f *fakeDialog) capture(_ context.Context, program string, args []string) (string, int, error) {
	f.program = program
	f.args = args
	return f.stdout, f.code, f.err
}

func TestDialogPickerReturnsChoice(t *testing.T) {
	fake := &fakeDialog{stdout: "/home/user/pics/a.jpg\n"}
	p := NewDialogPicker("zenity")
	p.capture = fake.capture

	got, err := p.Pick(context.Background())
	if err != nil {
		t.Fatalf("Pick error: %v", err)
	}
	if got != "/home/user/pics/a.jpg" {
		t.Fatalf("Pick = %q", got)
	}
	if fake.program != "zenity" || fake.args[0] != "--file-selection" {
		t.Fatalf("unexpected invocation %s %v", fake.program, fake.args)
	}
}

func TestDialogPickerCancel(t *testing.T) {
	p := NewDialogPicker("")
	p.capture = (&fakeDialog{code: 1}).capture

	if _, err := p.Pick(context.Background()); !errors.Is(err, domain.ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	if p.Command() != domain.DefaultPickerCommand {
		t.Fatalf("Command() = %s", p.Command())
	}
}

func TestDialogPickerFailures(t *testing.T) {
	p := NewDialogPicker("kdialog")
	fake := &fakeDialog{code: 5}
	p.capture = fake.capture

	_, err := p.Pick(context.Background())
	if !errors.Is(err, domain.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !strings.Contains(strings.Join(fake.args, " "), "--getopenfilename") {
		t.Fatalf("kdialog args = %v", fake.args)
	}

	p.capture = (&fakeDialog{err: errors.New("not found")}).capture
	if _, err := p.Pick(context.Background()); err == nil || !strings.Contains(err.Error(), "open file chooser") {
		t.Fatalf("unexpected error %v", err)
	}
}
