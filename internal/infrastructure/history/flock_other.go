//go:build !(linux || darwin || freebsd || openbsd || netbsd || dragonfly)

package history

import "github.com/doeshing/wallpaper/internal/ports"

// FileLock is a no-op on platforms without flock(2).
type FileLock struct {
	path string
}

// NewFileLock returns a lock for <historyPath>.lock.
func NewFileLock(historyPath string) *FileLock {
	return &FileLock{path: historyPath + ".lock"}
}

// Lock always succeeds immediately.
func (l *FileLock) Lock(bool) (func() error, error) {
	return func() error { return nil }, nil
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

var _ ports.HistoryLocker = (*FileLock)(nil)
