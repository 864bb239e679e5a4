package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/balances/date"
	toml "github.com/pelletier/go-toml/v2"
)

// Storage kinds.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

var (
	storageKinds = []string{StorageMemory, StorageFile, StorageSQLite}
	logLevels    = []string{"debug", "info", "warn", "error"}
)

// Config holds all configuration for bal.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	Display DisplayConfig `toml:"display"`
}

// StorageConfig selects where the book is persisted.
type StorageConfig struct {
	Kind string `toml:"kind"` // memory, file or sqlite
	Path string `toml:"path"` // folder of the json files, or of the sqlite database
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// DisplayConfig holds the presentation settings of views.
type DisplayConfig struct {
	DateFormat string `toml:"date_format"` // Go time layout
	Width      int    `toml:"width"`       // terminal word wrap
}

// NewDefaultConfig returns the configuration used when no file nor environment overrides it.
func NewDefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{Kind: StorageFile, Path: ".balances"},
		Logging: LoggingConfig{Level: "warn"},
		Display: DisplayConfig{DateFormat: date.DisplayFormat, Width: 100},
	}
}

// LoadConfig loads configuration from files with environment overrides.
//
// Files are merged in order, later files override earlier ones. Missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if kind := os.Getenv("BAL_STORAGE"); kind != "" {
		config.Storage.Kind = strings.ToLower(kind)
	}
	if path := os.Getenv("BAL_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}
	if level := os.Getenv("BAL_LOG_LEVEL"); level != "" {
		config.Logging.Level = strings.ToLower(level)
	}
	if layout := os.Getenv("BAL_DATE_FORMAT"); layout != "" {
		config.Display.DateFormat = layout
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(storageKinds, c.Storage.Kind) {
		errs = append(errs, fmt.Errorf("invalid storage kind %q: must be one of %v", c.Storage.Kind, storageKinds))
	}
	if c.Storage.Kind != StorageMemory && c.Storage.Path == "" {
		errs = append(errs, fmt.Errorf("storage path cannot be empty when using %s storage", c.Storage.Kind))
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("invalid log level %q: must be one of %v", c.Logging.Level, logLevels))
	}
	if c.Display.DateFormat == "" {
		errs = append(errs, errors.New("date format cannot be empty"))
	}
	if c.Display.Width < 0 {
		errs = append(errs, fmt.Errorf("invalid display width %d", c.Display.Width))
	}
	return errors.Join(errs...)
}
