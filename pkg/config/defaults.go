package config

import "time"

// Default values for configuration fields.
const (
	// Cache defaults
	DefaultCacheCapacity         = 128
	DefaultCacheAllowQuantifiers = true

	// Policy defaults
	DefaultPoliciesPath     = "./policies"
	DefaultPoliciesWatch    = false
	DefaultPoliciesDebounce = 100 * time.Millisecond

	// Metrics defaults
	DefaultMetricsEnabled   = false
	DefaultMetricsNamespace = "polaris"
	DefaultMetricsSubsystem = "constraints"

	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"
)

// ApplyDefaults fills in default values for any unset configuration fields.
// It modifies the configuration in place.
func ApplyDefaults(cfg *Config) {
	if cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = DefaultCacheCapacity
	}
	if cfg.Policies.Path == "" {
		cfg.Policies.Path = DefaultPoliciesPath
	}
	if cfg.Policies.DebounceInterval == 0 {
		cfg.Policies.DebounceInterval = DefaultPoliciesDebounce
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}
}

// NewDefaultConfig returns a configuration with all default values applied.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Cache: CacheConfig{
			AllowQuantifiers: DefaultCacheAllowQuantifiers,
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
