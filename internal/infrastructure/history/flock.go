//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly

package history

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/ports"
)

// FileLock is an advisory flock(2) on a lock file next to the history file.
// It guards the load-mutate-save cycle against other wallpaper processes.
type FileLock struct {
	path string
}

// NewFileLock returns a lock for <historyPath>.lock.
func NewFileLock(historyPath string) *FileLock {
	return &FileLock{path: historyPath + ".lock"}
}

// Lock blocks until the lock is held. Shared locks allow concurrent readers.
func (l *FileLock) Lock(exclusive bool) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, domain.FilePermissions)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", l.path, err)
	}
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}
	for {
		err = unix.Flock(int(file.Fd()), how)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("lock %s: %w", l.path, err)
	}
	return func() error {
		unlockErr := unix.Flock(int(file.Fd()), unix.LOCK_UN)
		closeErr := file.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

var _ ports.HistoryLocker = (*FileLock)(nil)
