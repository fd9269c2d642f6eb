package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"meridian-hq/polaris/pkg/config"
	"meridian-hq/polaris/pkg/constraint/cache"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "polaris",
	Short: "Polaris - constraint compilation and evaluation engine",
	Long: `Polaris compiles declarative constraint sets into specialized evaluators
and checks documents against them.

Evaluation reports one of three outcomes per document:
  - satisfied: every constraint holds
  - open: some constrained fields are absent from the document
  - conflict: a present field violates a constraint

Compiled programs are cached by set signature, so repeated checks against
the same constraint set skip compilation entirely.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger builds the CLI logger honoring the --verbose flag.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadRuntimeConfig loads the runtime configuration, falling back to
// defaults when no --config file is given.
func loadRuntimeConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.NewDefaultConfig(), nil
	}
	return config.LoadWithEnvOverrides(cfgFile)
}

// newCacheConfig builds the cache configuration from the runtime config.
func newCacheConfig(cfg *config.Config) *cache.Config {
	ccfg := cache.DefaultConfig()
	ccfg.Capacity = cfg.Cache.Capacity
	ccfg.AllowQuantifiers = cfg.Cache.AllowQuantifiers
	return ccfg
}
