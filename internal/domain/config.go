package domain

// Config mirrors ~/.config/wallpaper/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Preferences         Preferences     `yaml:"preferences"`
	History             HistorySettings `yaml:"history"`
	RunLog              RunLogSettings  `yaml:"run_log"`
	Picker              PickerSettings  `yaml:"picker"`
	Cache               CacheSettings   `yaml:"cache"`
}

// Preferences captures palette defaults used when flags are absent.
type Preferences struct {
	DefaultType string `yaml:"default_type"`
	Light       bool   `yaml:"light"`
}

// HistorySettings controls the history file.
type HistorySettings struct {
	Lock bool `yaml:"lock"`
}

// RunLogSettings controls the sqlite run log.
type RunLogSettings struct {
	Enabled bool `yaml:"enabled"`
}

// PickerSettings configures the interactive file chooser.
type PickerSettings struct {
	Command string `yaml:"command"`
}

// CacheSettings controls the image header cache.
type CacheSettings struct {
	Enabled bool `yaml:"enabled"`
}
