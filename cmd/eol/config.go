package main

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eolchecker/eol"
	"github.com/eolchecker/eol/refresh"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "EOL_CONFIG"
	databaseEnv   = "EOL_DB"
)

// Config holds the settings of the eol command.
type Config struct {
	Database       string        `yaml:"database"`
	SoftwareURL    string        `yaml:"software_url"`
	HardwareURL    string        `yaml:"hardware_url"`
	ExcludeVendors []string      `yaml:"exclude_vendors"`
	Concurrency    int           `yaml:"concurrency"`
	RateLimit      float64       `yaml:"rate_limit"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxAge         time.Duration `yaml:"max_age"`
	LegacyNone     *bool         `yaml:"legacy_none"`
}

// LoadConfig reads the YAML file at path, if present, over the defaults and
// applies environment overrides. A missing file is an error only when
// required is set.
func LoadConfig(fsys afero.Fs, path string, required bool, getenv func(string) string) (*Config, error) {
	cfg := defaultConfig()

	raw, err := afero.ReadFile(fsys, path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !required:
	case err != nil:
		return nil, eol.Errorf(eol.EINVALID, "cannot read config %s: %s", path, err)
	default:
		var fileCfg Config
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&fileCfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, eol.Errorf(eol.EINVALID, "cannot parse config %s: %s", path, err)
		}
		cfg = mergeConfig(cfg, fileCfg)
	}

	cfg.applyEnvOverrides(getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the refresh cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Concurrency < 1:
		return eol.Errorf(eol.EINVALID, "concurrency must be at least 1")
	case c.RateLimit < 0:
		return eol.Errorf(eol.EINVALID, "rate_limit must not be negative")
	case c.Timeout <= 0:
		return eol.Errorf(eol.EINVALID, "timeout must be positive")
	case c.MaxAge <= 0:
		return eol.Errorf(eol.EINVALID, "max_age must be positive")
	}
	return nil
}

// Normalizer returns the field normalizer the settings select.
func (c *Config) Normalizer() eol.Normalizer {
	return eol.Normalizer{LegacyNone: c.LegacyNone == nil || *c.LegacyNone}
}

func (c *Config) applyEnvOverrides(getenv func(string) string) {
	if v := getenv(databaseEnv); v != "" {
		c.Database = v
	}
}

func mergeConfig(base, override Config) Config {
	base.Database, _ = lo.Coalesce(override.Database, base.Database)
	base.SoftwareURL, _ = lo.Coalesce(override.SoftwareURL, base.SoftwareURL)
	base.HardwareURL, _ = lo.Coalesce(override.HardwareURL, base.HardwareURL)
	base.Concurrency, _ = lo.Coalesce(override.Concurrency, base.Concurrency)
	base.RateLimit, _ = lo.Coalesce(override.RateLimit, base.RateLimit)
	base.Timeout, _ = lo.Coalesce(override.Timeout, base.Timeout)
	base.MaxAge, _ = lo.Coalesce(override.MaxAge, base.MaxAge)

	if override.ExcludeVendors != nil {
		base.ExcludeVendors = lo.Map(override.ExcludeVendors, func(v string, _ int) string {
			return strings.ToLower(strings.TrimSpace(v))
		})
	}
	if override.LegacyNone != nil {
		base.LegacyNone = override.LegacyNone
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Database:       defaultDBPath(),
		SoftwareURL:    refresh.DefaultSoftwareURL,
		HardwareURL:    refresh.DefaultHardwareURL,
		ExcludeVendors: refresh.DefaultExcludeVendors,
		Concurrency:    refresh.DefaultConcurrency,
		RateLimit:      2,
		Timeout:        10 * time.Second,
		MaxAge:         7 * 24 * time.Hour,
		LegacyNone:     lo.ToPtr(true),
	}
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".eol")
}

func defaultDBPath() string {
	return filepath.Join(defaultDir(), "eol.db")
}

func defaultConfigPath() string {
	return filepath.Join(defaultDir(), "config.yaml")
}
