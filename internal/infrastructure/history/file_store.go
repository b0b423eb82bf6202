package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/pkg/filesystem"
	"github.com/doeshing/wallpaper/internal/ports"
)

// FileStore keeps the wallpaper history as a pretty-printed JSON document.
type FileStore struct {
	path string
}

// NewFileStore creates a store at <data dir>/history.json.
func NewFileStore() (*FileStore, error) {
	dir, err := filesystem.DataDir()
	if err != nil {
		return nil, err
	}
	return NewFileStoreAt(filepath.Join(dir, domain.HistoryFileName)), nil
}

// NewFileStoreAt creates a store backed by an explicit file.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Load implements ports.HistoryRepository. A missing file is an empty history.
func (f *FileStore) Load() (domain.History, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.History{}, nil
		}
		return domain.History{}, fmt.Errorf("%w %s: %v", domain.ErrRead, f.path, err)
	}
	var history domain.History
	if err := json.Unmarshal(data, &history); err != nil {
		return domain.History{}, fmt.Errorf("%w %s: %v", domain.ErrParse, f.path, err)
	}
	return history, nil
}

// Save implements ports.HistoryRepository. The document is written to a
// sibling temp file and renamed into place.
func (f *FileStore) Save(history domain.History) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("%w: failed to create history directory %s: %v", domain.ErrWrite, dir, err)
	}
	if history.Entries == nil {
		history.Entries = []domain.HistoryEntry{}
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to serialize history: %v", domain.ErrWrite, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, domain.HistoryFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w %s: %v", domain.ErrWrite, f.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w %s: %v", domain.ErrWrite, f.path, err)
	}
	if err := tmp.Chmod(domain.FilePermissions); err != nil {
		tmp.Close()
		return fmt.Errorf("%w %s: %v", domain.ErrWrite, f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w %s: %v", domain.ErrWrite, f.path, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("%w %s: %v", domain.ErrWrite, f.path, err)
	}
	return nil
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w %s: %v", domain.ErrWrite, f.path, err)
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

var _ ports.HistoryRepository = (*FileStore)(nil)
