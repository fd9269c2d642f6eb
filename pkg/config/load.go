package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file at the specified path. Defaults
// are applied before parsing so that fields absent from the file keep their
// default values, then the result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention POLARIS_SECTION_FIELD (e.g., POLARIS_CACHE_CAPACITY) and always
// take precedence over file-based configuration.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format POLARIS_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Cache overrides
	if val := os.Getenv("POLARIS_CACHE_CAPACITY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Cache.Capacity = i
		}
	}
	if val := os.Getenv("POLARIS_CACHE_ALLOW_QUANTIFIERS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Cache.AllowQuantifiers = b
		}
	}

	// Policy overrides
	if val := os.Getenv("POLARIS_POLICIES_PATH"); val != "" {
		cfg.Policies.Path = val
	}
	if val := os.Getenv("POLARIS_POLICIES_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Policies.Watch = b
		}
	}
	if val := os.Getenv("POLARIS_POLICIES_DEBOUNCE_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Policies.DebounceInterval = d
		}
	}

	// Metrics overrides
	if val := os.Getenv("POLARIS_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("POLARIS_METRICS_NAMESPACE"); val != "" {
		cfg.Metrics.Namespace = val
	}
	if val := os.Getenv("POLARIS_METRICS_SUBSYSTEM"); val != "" {
		cfg.Metrics.Subsystem = val
	}

	// Logging overrides
	if val := os.Getenv("POLARIS_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("POLARIS_LOGGING_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}
