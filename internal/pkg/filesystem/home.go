package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/wallpaper/internal/domain"
)

// UserHomeDir returns the current user's home directory from $HOME.
// It returns "" when the variable is unset.
func UserHomeDir() string {
	return os.Getenv("HOME")
}

// DataDir resolves the per-user data directory: $XDG_DATA_HOME/wallpaper,
// falling back to $HOME/.local/share/wallpaper.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, domain.AppDirName), nil
	}
	if home := UserHomeDir(); home != "" {
		return filepath.Join(home, ".local", "share", domain.AppDirName), nil
	}
	return "", fmt.Errorf("%w: neither XDG_DATA_HOME nor HOME is set", domain.ErrConfig)
}

// ConfigDir resolves $XDG_CONFIG_HOME/wallpaper, falling back to
// $HOME/.config/wallpaper.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, domain.AppDirName), nil
	}
	if home := UserHomeDir(); home != "" {
		return filepath.Join(home, ".config", domain.AppDirName), nil
	}
	return "", fmt.Errorf("%w: neither XDG_CONFIG_HOME nor HOME is set", domain.ErrConfig)
}

// CacheDir resolves $XDG_CACHE_HOME/wallpaper, falling back to
// $HOME/.cache/wallpaper.
func CacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, domain.AppDirName), nil
	}
	if home := UserHomeDir(); home != "" {
		return filepath.Join(home, ".cache", domain.AppDirName), nil
	}
	return "", fmt.Errorf("%w: neither XDG_CACHE_HOME nor HOME is set", domain.ErrConfig)
}

// ExpandTilde replaces a leading "~" or "~/" with the home directory.
func ExpandTilde(path string) string {
	home := UserHomeDir()
	if home == "" {
		return path
	}
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	}
	return path
}

// ResolveImage expands, checks and canonicalises a user supplied image path.
func ResolveImage(path string) (string, error) {
	expanded := ExpandTilde(path)
	info, err := os.Stat(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrPathNotFound, expanded)
		}
		return "", fmt.Errorf("stat %s: %w", expanded, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", domain.ErrPathNotAFile, expanded)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize path %s: %w", expanded, err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize path %s: %w", expanded, err)
	}
	return canonical, nil
}

// Exists reports whether path names an existing file system entry.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
