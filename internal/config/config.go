// Package config provides configuration management for ulauncher.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	// DefaultLogLevel is the log level used when none is configured.
	DefaultLogLevel = "warn"

	// DefaultTerminalWidth is the default terminal width when auto-detection fails.
	DefaultTerminalWidth = 80

	// EscDoublePressTimeout is the timeout for double-press ESC actions.
	EscDoublePressTimeout = 2 * time.Second

	// SuggestionLimit is the max number of completions shown under the prompt.
	SuggestionLimit = 5

	// QueryTruncateLength is the max length of a query in list output.
	QueryTruncateLength = 60

	// EnvPrefix prefixes environment overrides, e.g. ULAUNCHER_HISTORY_FILE.
	EnvPrefix = "ULAUNCHER"

	historyFileName = "history.json"
	logFileName     = "ulauncher.log"
)

// ErrInvalidLogLevel is returned when log_level is not a known level.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Config holds the application configuration that is persisted to disk.
type Config struct {
	HistoryFile string `json:"history_file,omitempty" mapstructure:"history_file"`
	LogLevel    string `json:"log_level,omitempty" mapstructure:"log_level"`
	LogFile     string `json:"log_file,omitempty" mapstructure:"log_file"`
}

// GetConfigDir returns the platform-specific config directory for ulauncher.
// This is a variable to allow mocking in tests.
var GetConfigDir = func() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "ulauncher"), nil
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the config file and applies ULAUNCHER_* environment overrides.
// Returns defaults if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	// Keys need a default so Unmarshal picks up their env overrides.
	v.SetDefault("history_file", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the config values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error", "fatal":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
}

// Save writes the config to disk with secure permissions.
func Save(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	// Create config directory with user-only permissions
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// HistoryPath returns the history file location: the configured
// history_file with ~ expanded, or history.json in the config directory.
func HistoryPath(cfg *Config) (string, error) {
	return resolvePath(cfg.HistoryFile, historyFileName)
}

// LogPath returns the log file location, resolved like HistoryPath.
func LogPath(cfg *Config) (string, error) {
	return resolvePath(cfg.LogFile, logFileName)
}

func resolvePath(configured, fallback string) (string, error) {
	if strings.TrimSpace(configured) != "" {
		expanded, err := homedir.Expand(configured)
		if err != nil {
			return "", fmt.Errorf("failed to expand %q: %w", configured, err)
		}
		return filepath.Clean(expanded), nil
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, fallback), nil
}
