// Package config provides configuration management.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"units-system/internal/errors"
	"units-system/internal/logging"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. UNITS_OUTPUT_PRECISION.
const EnvPrefix = "UNITS"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" mapstructure:"version"`

	// Output contains rendering configuration
	Output OutputConfig `json:"output" mapstructure:"output"`

	// Definitions contains extra unit/constant definition sources
	Definitions DefinitionsConfig `json:"definitions" mapstructure:"definitions"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" mapstructure:"logging"`

	// Metrics contains metrics configuration
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// Precision is the number of significant digits shown; 0 prints the shortest exact form
	Precision int `json:"precision" mapstructure:"precision"`

	// Locale is a BCP-47 tag used for verbose magnitudes (e.g. "de")
	Locale string `json:"locale" mapstructure:"locale"`

	// Verbose selects the spelled-out rendering by default
	Verbose bool `json:"verbose" mapstructure:"verbose"`
}

// DefinitionsConfig lists definition files loaded on top of the standard set
type DefinitionsConfig struct {
	// Paths are doublestar glob patterns (e.g. "defs/**/*.hcl")
	Paths []string `json:"paths" mapstructure:"paths"`

	// Strict fails on any invalid definition file instead of skipping it
	Strict bool `json:"strict" mapstructure:"strict"`
}

// MetricsConfig contains metrics settings
type MetricsConfig struct {
	// Enabled dumps collected counters through the logger on exit
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			Precision: 0,
			Locale:    "",
			Verbose:   false,
		},
		Definitions: DefinitionsConfig{
			Paths:  nil,
			Strict: true,
		},
		Logging: logging.DefaultConfig(),
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// DefaultPath returns $HOME/.units/config.yaml
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".units", "config.yaml")
}

func newViper() *viper.Viper {
	d := Default()
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("version", d.Version)
	v.SetDefault("output.precision", d.Output.Precision)
	v.SetDefault("output.locale", d.Output.Locale)
	v.SetDefault("output.verbose", d.Output.Verbose)
	v.SetDefault("definitions.paths", d.Definitions.Paths)
	v.SetDefault("definitions.strict", d.Definitions.Strict)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	return v
}

// Load loads configuration from a file. The format follows the file
// extension (yaml, json, toml). A missing file yields the defaults with
// environment overrides applied; an empty path does the same.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Config("failed to read config "+path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Config("failed to stat config "+path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Config("failed to decode config", err)
	}
	return cfg, nil
}

// Save saves configuration to a file, choosing the format by extension
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	v := viper.New()
	v.Set("version", c.Version)
	v.Set("output.precision", c.Output.Precision)
	v.Set("output.locale", c.Output.Locale)
	v.Set("output.verbose", c.Output.Verbose)
	v.Set("definitions.paths", c.Definitions.Paths)
	v.Set("definitions.strict", c.Definitions.Strict)
	v.Set("logging.level", c.Logging.Level)
	v.Set("logging.format", c.Logging.Format)
	v.Set("logging.output", c.Logging.Output)
	v.Set("logging.development", c.Logging.Development)
	v.Set("metrics.enabled", c.Metrics.Enabled)

	if err := v.WriteConfigAs(path); err != nil {
		return errors.Config("failed to write config "+path, err)
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
