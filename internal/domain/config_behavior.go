package domain

import "strings"

// MatugenTypeOr returns the flag value when set, otherwise the configured
// default, otherwise DefaultMatugenType.
func (c *Config) MatugenTypeOr(flag string) string {
	if t := strings.TrimSpace(flag); t != "" {
		return t
	}
	if t := strings.TrimSpace(c.Preferences.DefaultType); t != "" {
		return t
	}
	return DefaultMatugenType
}

// LightOr returns the flag value when it was given on the command line,
// otherwise the configured preference.
func (c *Config) LightOr(flag *bool) bool {
	if flag != nil {
		return *flag
	}
	return c.Preferences.Light
}

// PickerCommand returns the configured chooser program.
func (c *Config) PickerCommand() string {
	if cmd := strings.TrimSpace(c.Picker.Command); cmd != "" {
		return cmd
	}
	return DefaultPickerCommand
}

// IsKnownMatugenType reports whether t is one of the schemes matugen ships with.
func IsKnownMatugenType(t string) bool {
	for _, known := range KnownMatugenTypes {
		if known == t {
			return true
		}
	}
	return false
}
