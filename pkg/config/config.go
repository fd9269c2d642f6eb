package config

import "time"

// Config is the root configuration structure for Polaris. It contains all
// configuration sections for the compiled-evaluator cache, policy file
// loading, telemetry, and logging.
type Config struct {
	// Cache contains configuration for the compiled-evaluator cache
	// including capacity and quantifier compilation.
	Cache CacheConfig `yaml:"cache"`

	// Policies contains configuration for policy file loading including
	// source location and watch mode.
	Policies PoliciesConfig `yaml:"policies"`

	// Metrics contains configuration for Prometheus metrics.
	Metrics MetricsConfig `yaml:"metrics"`

	// Logging contains configuration for structured logging.
	Logging LoggingConfig `yaml:"logging"`
}

// CacheConfig contains configuration for the compiled-evaluator cache.
type CacheConfig struct {
	// Capacity is the maximum number of compiled programs retained.
	// When full, the least recently used entry is evicted.
	// Default: 128
	Capacity int `yaml:"capacity"`

	// AllowQuantifiers controls whether constraint sets containing
	// forall/exists quantifiers are compiled. When false such sets are
	// reported as ineligible and callers fall back to interpretation.
	// Default: true
	AllowQuantifiers bool `yaml:"allow_quantifiers"`
}

// PoliciesConfig contains configuration for policy file loading.
type PoliciesConfig struct {
	// Path is the policy file or directory to load. Directories are
	// scanned non-recursively for .yaml and .yml files.
	Path string `yaml:"path"`

	// Watch controls whether policy files are watched for changes.
	// On change the cache is cleared and policies are reloaded.
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceInterval is the quiet period after a file event before a
	// reload fires. Only used when Watch is true.
	// Default: 100ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// MetricsConfig contains configuration for Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether cache metrics are registered.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	// Default: "polaris"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "constraints"
	Subsystem string `yaml:"subsystem"`
}

// LoggingConfig contains configuration for structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, or error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: json or text.
	// Default: "text"
	Format string `yaml:"format"`
}
