// Package config provides Viper-based configuration loading for the ttrpg CLI.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TTRPG_OUTPUT_COLOR.
const EnvPrefix = "TTRPG"

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Open5eConfig holds reference-data lookup settings.
type Open5eConfig struct {
	// BaseURL is the API root, without a trailing resource path.
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds a single lookup request.
	Timeout time.Duration `mapstructure:"timeout"`
}

// OutputConfig holds presentation settings.
type OutputConfig struct {
	// Color is "auto", "always" or "never".
	Color string `mapstructure:"color"`
	// Format is the record output format for lookups: "text", "json" or "yaml".
	Format string `mapstructure:"format"`
}

// DiceConfig holds roll engine settings.
type DiceConfig struct {
	// Seed makes rolls reproducible when non-zero. Zero uses crypto/rand.
	Seed uint64 `mapstructure:"seed"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Open5e  Open5eConfig  `mapstructure:"open5e"`
	Output  OutputConfig  `mapstructure:"output"`
	Dice    DiceConfig    `mapstructure:"dice"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateOpen5e(c.Open5e); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateOutput(c.Output); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateOpen5e(o Open5eConfig) error {
	var errs []string
	u, err := url.Parse(o.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("open5e.base_url must be an absolute http(s) url, got %q", o.BaseURL))
	}
	if o.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("open5e.timeout must be positive, got %s", o.Timeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateOutput(o OutputConfig) error {
	var errs []string
	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[o.Color] {
		errs = append(errs, fmt.Sprintf("output.color must be one of [auto, always, never], got %q", o.Color))
	}
	validFormats := map[string]bool{"text": true, "json": true, "yaml": true}
	if !validFormats[o.Format] {
		errs = append(errs, fmt.Sprintf("output.format must be one of [text, json, yaml], got %q", o.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// New returns a Viper instance with defaults and TTRPG_ environment
// overrides applied. Callers may bind flags before calling LoadFromViper.
//
// Postcondition: Returns a non-nil Viper with no config file read.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// ReadFile merges the YAML file at path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("open5e.base_url", "https://api.open5e.com")
	v.SetDefault("open5e.timeout", "10s")

	v.SetDefault("output.color", "auto")
	v.SetDefault("output.format", "text")

	v.SetDefault("dice.seed", 0)
}
