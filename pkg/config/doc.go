// Package config provides configuration loading and validation for the
// Polaris constraint engine CLI and embedding services.
//
// Configuration is loaded from YAML files with sensible defaults applied
// before validation. Environment variables using the POLARIS_ prefix
// override file values.
package config
