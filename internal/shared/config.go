package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override values from the configuration file.
const (
	EnvConfigPath = "MLC_CONFIG"
	EnvLogLevel   = "MLC_LOG_LEVEL"
	EnvExportDir  = "MLC_EXPORT_DIR"
)

// ExportFormats lists the report formats accepted by [ExportConfig.Format].
var ExportFormats = []string{"csv", "xml", "markdown", "txt"}

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Export  ExportConfig  `toml:"export"`
	Catalog CatalogConfig `toml:"catalog"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// ExportConfig contains report output settings.
type ExportConfig struct {
	Directory string `toml:"directory"`
	Format    string `toml:"format"`
}

// CatalogConfig contains display names for the reference and local catalogs.
type CatalogConfig struct {
	ReferenceLabel string `toml:"reference_label"`
	LocalLabel     string `toml:"local_label"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveConfig loads the config at path, falling back to defaults when the file does not exist.
//
// An optional .env file in the working directory is loaded first, then environment overrides are applied and the result validated.
func ResolveConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if env := os.Getenv(EnvConfigPath); env != "" {
		path = env
	}

	config := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := LoadConfig(path)
			if err != nil {
				return nil, err
			}
			config = loaded
		}
	}

	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides config values with any MLC_* environment variables that are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvExportDir); v != "" {
		c.Export.Directory = v
	}
}

// Validate checks the log level and export format.
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if !slices.Contains(ExportFormats, c.Export.Format) {
		return fmt.Errorf("%w: export format %q (must be one of %v)", ErrInvalidConfig, c.Export.Format, ExportFormats)
	}
	return nil
}
