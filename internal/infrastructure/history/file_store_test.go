package history

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/doeshing/wallpaper/internal/domain"
)

func TestFileStoreLoadMissingFileIsEmpty(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "history.json"))

	history, err := store.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !history.IsEmpty() {
		t.Fatalf("expected empty history, got %+v", history)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.json")
	store := NewFileStoreAt(path)

	var history domain.History
	history.Add("/a.jpg", "scheme-tonal-spot", false)
	history.Add("/b.jpg", "scheme-content", true)
	history.Add("/c.jpg", "scheme-neutral", false)

	if err := store.Save(history); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(loaded.Entries, history.Entries) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded.Entries, history.Entries)
	}
}

func TestFileStoreWritesReadableJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := NewFileStoreAt(path)

	history := domain.History{Entries: []domain.HistoryEntry{
		{Path: "/a.jpg", Timestamp: 1700000000, MatugenType: "scheme-content", IsLight: true},
	}}
	if err := store.Save(history); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"entries"`, `"path": "/a.jpg"`, `"timestamp": 1700000000`, `"matugen_type": "scheme-content"`, `"is_light": true`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("history file missing %s:\n%s", want, data)
		}
	}
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}

func TestFileStoreLoadsHandWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	raw := `{
  "entries": [
    {"path": "/b.jpg", "timestamp": 20, "matugen_type": "scheme-fidelity", "is_light": false},
    {"path": "/a.jpg", "timestamp": 10, "matugen_type": "scheme-rainbow", "is_light": true}
  ]
}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	history, err := NewFileStoreAt(path).Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if history.Len() != 2 {
		t.Fatalf("Len() = %d", history.Len())
	}
	// file order wins, timestamps are not re-sorted
	if first, _ := history.Entry(0); first.Path != "/b.jpg" {
		t.Fatalf("first = %+v", first)
	}
}

func TestFileStoreParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStoreAt(path).Load()
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestFileStoreReadError(t *testing.T) {
	// a directory where the file should be cannot be read as a file
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStoreAt(path).Load()
	if !errors.Is(err, domain.ErrRead) {
		t.Fatalf("expected ErrRead, got %v", err)
	}
}

func TestFileStoreWriteError(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStoreAt(filepath.Join(blocker, "history.json"))
	err := store.Save(domain.History{})
	if !errors.Is(err, domain.ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := NewFileStoreAt(path)

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}
	if err := store.Save(domain.History{}); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected history file removed, stat err = %v", err)
	}
}

func TestNewFileStoreUsesDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")
	store, err := NewFileStore()
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	if store.Path() != filepath.Join("/xdg", "wallpaper", "history.json") {
		t.Fatalf("Path() = %s", store.Path())
	}

	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "")
	if _, err := NewFileStore(); !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestFileLockExclusiveThenShared(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "history.json"))

	release, err := lock.Lock(true)
	if err != nil {
		t.Fatalf("exclusive Lock error: %v", err)
	}
	if err := release(); err != nil {
		t.Fatalf("release error: %v", err)
	}

	release, err = lock.Lock(false)
	if err != nil {
		t.Fatalf("shared Lock error: %v", err)
	}
	if err := release(); err != nil {
		t.Fatalf("release error: %v", err)
	}
}
