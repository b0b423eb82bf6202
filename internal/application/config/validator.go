package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/wallpaper/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	switch cfg.ConfigFormatVersion {
	case "", "1":
	default:
		return fmt.Errorf("unsupported config_format_version %q", cfg.ConfigFormatVersion)
	}
	if strings.TrimSpace(cfg.Preferences.DefaultType) == "" {
		return errors.New("preferences.default_type must be set")
	}
	if strings.ContainsAny(cfg.Preferences.DefaultType, " \t\n") {
		return fmt.Errorf("preferences.default_type must be a single word, got %q", cfg.Preferences.DefaultType)
	}
	if strings.TrimSpace(cfg.Picker.Command) == "" {
		return errors.New("picker.command must be set")
	}
	return nil
}

// ValidateMatugenType checks a scheme coming from a flag or a history entry.
// Only emptiness is rejected; matugen decides which names are legal.
func ValidateMatugenType(t string) error {
	if strings.TrimSpace(t) == "" {
		return fmt.Errorf("%w: palette scheme must not be empty", domain.ErrInvalidArgument)
	}
	return nil
}
