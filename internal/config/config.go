package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete filterlines configuration
type Config struct {
	Preferences `mapstructure:",squash" yaml:",inline"`
	Logging     LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// Preferences are the search settings read at the start of every filter
// invocation. Key names match the settings file of the original editor
// plugin so existing preference files carry over.
type Preferences struct {
	// PreserveSearch remembers the last pattern and offers it as the initial
	// prompt text next time (default: true)
	PreserveSearch bool `mapstructure:"preserve_search" yaml:"preserve_search"`
	// LatestSearch is the most recently entered pattern
	LatestSearch string `mapstructure:"latest_search" yaml:"latest_search"`
	// InvertSearch keeps segments that do NOT match (default: false)
	InvertSearch bool `mapstructure:"invert_search" yaml:"invert_search"`
	// CaseSensitiveSearch disables case folding (default: true)
	CaseSensitiveSearch bool `mapstructure:"case_sensitive_search" yaml:"case_sensitive_search"`
	// CustomSeparator prompts for a separator expression after the pattern (default: false)
	CustomSeparator bool `mapstructure:"custom_separator" yaml:"custom_separator"`
	// DefaultCustomSeparator is the initial text of the separator prompt
	DefaultCustomSeparator string `mapstructure:"default_custom_separator" yaml:"default_custom_separator"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: false)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is the directory holding filterlines.log. Empty logs to stderr.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// DefaultSeparator matches a single line break of any style.
const DefaultSeparator = `(\n|\r\n|\r)`

// Keys of the settings that filterlines reads.
const (
	KeyPreserveSearch         = "preserve_search"
	KeyLatestSearch           = "latest_search"
	KeyInvertSearch           = "invert_search"
	KeyCaseSensitiveSearch    = "case_sensitive_search"
	KeyCustomSeparator        = "custom_separator"
	KeyDefaultCustomSeparator = "default_custom_separator"
	KeyLoggingEnabled         = "logging.enabled"
	KeyLoggingLevel           = "logging.level"
	KeyLoggingDir             = "logging.dir"
)

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Preferences: Preferences{
			PreserveSearch:         true,
			LatestSearch:           "",
			InvertSearch:           false,
			CaseSensitiveSearch:    true,
			CustomSeparator:        false,
			DefaultCustomSeparator: DefaultSeparator,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with the global viper instance
func SetDefaults() {
	SetDefaultsOn(viper.GetViper())
}

// SetDefaultsOn registers default values with v
func SetDefaultsOn(v *viper.Viper) {
	defaults := Default()

	v.SetDefault(KeyPreserveSearch, defaults.PreserveSearch)
	v.SetDefault(KeyLatestSearch, defaults.LatestSearch)
	v.SetDefault(KeyInvertSearch, defaults.InvertSearch)
	v.SetDefault(KeyCaseSensitiveSearch, defaults.CaseSensitiveSearch)
	v.SetDefault(KeyCustomSeparator, defaults.CustomSeparator)
	v.SetDefault(KeyDefaultCustomSeparator, defaults.DefaultCustomSeparator)

	v.SetDefault(KeyLoggingEnabled, defaults.Logging.Enabled)
	v.SetDefault(KeyLoggingLevel, defaults.Logging.Level)
	v.SetDefault(KeyLoggingDir, defaults.Logging.Dir)
}

// Load reads the configuration from the global viper instance into a Config
// struct and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v and validates it
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "filterlines")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".filterlines"
	}
	return filepath.Join(home, ".config", "filterlines")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Store reads preferences from a viper instance and persists the latest
// search pattern back to its config file.
type Store struct {
	v    *viper.Viper
	path string
}

// NewStore returns a Store backed by v. Writes go to the file v was read
// from, or to path when v was not loaded from a file.
func NewStore(v *viper.Viper, path string) *Store {
	return &Store{v: v, path: path}
}

// Load returns the current preferences, falling back to defaults when the
// configuration does not decode or validate.
func (s *Store) Load() Preferences {
	cfg, err := LoadFrom(s.v)
	if err != nil {
		return Default().Preferences
	}
	return cfg.Preferences
}

// SaveLatestSearch records pattern as latest_search and writes it to the
// config file. Only the file's own settings are written back; values that came
// from flags, the environment or defaults stay out of it.
func (s *Store) SaveLatestSearch(pattern string) error {
	s.v.Set(KeyLatestSearch, pattern)

	path := s.v.ConfigFileUsed()
	if path == "" {
		path = s.path
	}

	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("yaml")
	if _, err := os.Stat(path); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	file.Set(KeyLatestSearch, pattern)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := file.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
