package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"meridian-hq/polaris/pkg/constraint/cache"
	"meridian-hq/polaris/pkg/constraint/interp"
	"meridian-hq/polaris/pkg/constraint/registry"
)

var benchFlags struct {
	policy     string
	doc        string
	iterations int
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare compiled and interpreted evaluation",
	Long: `Measure evaluation throughput for a constraint set against a document,
comparing the compiled program with the generic interpreter.

The compilation itself is timed separately so the per-evaluation numbers
reflect steady-state cost with a warm cache.

Examples:
  # Default 100000 iterations
  polaris bench --policy policies/access.yaml --doc request.json

  # Longer run
  polaris bench --policy policies/access.yaml --doc request.json --iterations 1000000`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringVarP(&benchFlags.policy, "policy", "p", "", "policy file to load")
	benchCmd.Flags().StringVar(&benchFlags.doc, "doc", "", "JSON document to evaluate")
	benchCmd.Flags().IntVar(&benchFlags.iterations, "iterations", 100000, "evaluations per mode")
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchFlags.policy == "" || benchFlags.doc == "" {
		return fmt.Errorf("--policy and --doc must be specified")
	}
	if benchFlags.iterations <= 0 {
		return fmt.Errorf("--iterations must be positive")
	}

	file, err := loadPolicy(benchFlags.policy, "", "")
	if err != nil {
		return err
	}
	doc, err := loadDocument(benchFlags.doc)
	if err != nil {
		return err
	}

	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}

	reg := registry.New()
	logger := newLogger()
	n := benchFlags.iterations

	fmt.Println("Polaris Bench")
	fmt.Println("=============")
	fmt.Printf("Policy: %s (%d nodes)\n", file.Name, file.Set.Len())
	fmt.Printf("Document: %s\n", benchFlags.doc)
	fmt.Printf("Iterations: %d\n", n)
	fmt.Println()

	// Compiled path. First call pays compilation, later calls hit the cache.
	c := cache.New(reg, newCacheConfig(cfg), logger)

	compileStart := time.Now()
	program, err := c.GetOrCompile(file.Set)
	compileDur := time.Since(compileStart)
	if err != nil {
		return fmt.Errorf("compiling %q: %w", file.Name, err)
	}

	compiledStart := time.Now()
	for i := 0; i < n; i++ {
		program.Evaluate(doc)
	}
	compiledDur := time.Since(compiledStart)

	// Interpreted path.
	in := interp.New(reg)
	interpStart := time.Now()
	for i := 0; i < n; i++ {
		if _, err := in.Evaluate(file.Set, doc); err != nil {
			return fmt.Errorf("interpreting %q: %w", file.Name, err)
		}
	}
	interpDur := time.Since(interpStart)

	fmt.Printf("Compilation:  %s (once)\n", compileDur)
	fmt.Printf("Compiled:     %s total, %s/op\n", compiledDur, compiledDur/time.Duration(n))
	fmt.Printf("Interpreted:  %s total, %s/op\n", interpDur, interpDur/time.Duration(n))
	if compiledDur > 0 {
		fmt.Printf("Speedup:      %.1fx\n", float64(interpDur)/float64(compiledDur))
	}

	return nil
}
