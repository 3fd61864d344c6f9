// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Environment variables consulted when a setting is not supplied by flag or
// config file.
const (
	EnvStandardNames = "CF_STANDARD_NAMES"
	EnvAreaTypes     = "CF_AREA_TYPES"
	EnvUdunits       = "UDUNITS"
	EnvSpoolDir      = "CF_CACHE_DIR"
	EnvChecker       = "CF_CHECKER"
	EnvMaxAgeDays    = "CF_MAX_AGE_DAYS"
)

// Built-in defaults for the reference table sources.
const (
	DefaultStandardNamesURL = "https://cfconventions.org/Data/cf-standard-names/current/src/cf-standard-name-table.xml"
	DefaultAreaTypesURL     = "https://cfconventions.org/Data/area-type-table/current/src/area-type-table.xml"
	DefaultUdunitsPath      = "/usr/share/xml/udunits/udunits2.xml"
	DefaultMaxAgeDays       = 1.0
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values fall back to environment
// variables and then to built-in defaults.
type Config struct {
	// Sources
	StandardNames string `json:"standard_names,omitempty"` // URL or path of the standard names table
	AreaTypes     string `json:"area_types,omitempty"`     // URL or path of the area types table
	Udunits       string `json:"udunits,omitempty"`        // Path of the udunits database (always local)

	// Cache
	SpoolDir            string   `json:"spool_dir,omitempty"`                                         // Directory holding cached tables
	StandardNamesMaxAge *float64 `json:"standard_names_max_age,omitempty" validate:"omitempty,gte=0"` // Days
	AreaTypesMaxAge     *float64 `json:"area_types_max_age,omitempty" validate:"omitempty,gte=0"`     // Days

	// Checker
	Checker string `json:"checker,omitempty"` // Checker executable name or path
	Version string `json:"version,omitempty"` // CF conventions version passed to the checker

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed refresh narration
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables. Unset
// variables leave the corresponding field empty. A malformed CF_MAX_AGE_DAYS
// value is an error rather than a silent default: a typo there must not
// quietly change the refresh cadence.
func FromEnv() (Config, error) {
	cfg := Config{
		StandardNames: os.Getenv(EnvStandardNames),
		AreaTypes:     os.Getenv(EnvAreaTypes),
		Udunits:       os.Getenv(EnvUdunits),
		SpoolDir:      os.Getenv(EnvSpoolDir),
		Checker:       os.Getenv(EnvChecker),
	}

	if raw := os.Getenv(EnvMaxAgeDays); raw != "" {
		age, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s value %q: %w", EnvMaxAgeDays, raw, err)
		}
		cfg.StandardNamesMaxAge = &age
		cfg.AreaTypesMaxAge = &age
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values using struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. This is used to layer flag values over config-file values over
// environment values over built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.StandardNames == "" {
		result.StandardNames = defaults.StandardNames
	}
	if result.AreaTypes == "" {
		result.AreaTypes = defaults.AreaTypes
	}
	if result.Udunits == "" {
		result.Udunits = defaults.Udunits
	}
	if result.SpoolDir == "" {
		result.SpoolDir = defaults.SpoolDir
	}
	if result.Checker == "" {
		result.Checker = defaults.Checker
	}
	if result.Version == "" {
		result.Version = defaults.Version
	}

	// Pointer fields distinguish "unset" from an explicit zero: a configured
	// max age of 0 means "refresh every run" and must survive the merge.
	if result.StandardNamesMaxAge == nil {
		result.StandardNamesMaxAge = defaults.StandardNamesMaxAge
	}
	if result.AreaTypesMaxAge == nil {
		result.AreaTypesMaxAge = defaults.AreaTypesMaxAge
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// DefaultConfig returns the built-in defaults: the cfconventions.org table
// URLs, a one-day freshness threshold, and a per-user spool directory.
func DefaultConfig() Config {
	snAge := float64(DefaultMaxAgeDays)
	atAge := float64(DefaultMaxAgeDays)
	return Config{
		StandardNames:       DefaultStandardNamesURL,
		AreaTypes:           DefaultAreaTypesURL,
		Udunits:             DefaultUdunitsPath,
		SpoolDir:            defaultSpoolDir(),
		StandardNamesMaxAge: &snAge,
		AreaTypesMaxAge:     &atAge,
		Checker:             "cfchecks",
	}
}

func defaultSpoolDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "cftables")
	}
	return filepath.Join(os.TempDir(), "cftables")
}
