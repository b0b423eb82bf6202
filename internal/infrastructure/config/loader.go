package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/wallpaper/assets"
	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/pkg/filesystem"
	"github.com/doeshing/wallpaper/internal/ports"
)

const configFileName = "config.yaml"

// FileLoader loads YAML configuration from ~/.config/wallpaper/config.yaml
// (overridable via WALLPAPER_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file yields the embedded
// defaults; nothing is written.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	cfg, err := defaultConfig()
	if err != nil {
		return domain.Config{}, err
	}

	path, err := l.Path()
	if err != nil {
		// no resolvable config dir; defaults are enough to run
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return domain.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return hydrateDefaults(cfg), nil
}

// Path resolves the config file location.
func (l *FileLoader) Path() (string, error) {
	if l.overridePath != "" {
		return filesystem.ExpandTilde(l.overridePath), nil
	}
	if custom := os.Getenv("WALLPAPER_CONFIG"); custom != "" {
		return filesystem.ExpandTilde(custom), nil
	}
	dir, err := filesystem.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// WriteDefault writes the embedded defaults to the config path unless a file
// already exists there.
func (l *FileLoader) WriteDefault() (string, error) {
	path, err := l.Path()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, fs.ErrExist
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, assets.DefaultConfigYAML, domain.FilePermissions)
}

// Defaults returns the embedded default configuration.
func Defaults() (domain.Config, error) {
	cfg, err := defaultConfig()
	if err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

func defaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return cfg, nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.DefaultType == "" {
		cfg.Preferences.DefaultType = domain.DefaultMatugenType
	}
	if cfg.Picker.Command == "" {
		cfg.Picker.Command = domain.DefaultPickerCommand
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
