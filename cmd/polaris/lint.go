package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"meridian-hq/polaris/pkg/constraint/compile"
	"meridian-hq/polaris/pkg/constraint/registry"
	"meridian-hq/polaris/pkg/policyfile"
)

var lintFlags struct {
	file   string
	dir    string
	strict bool
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate policy files",
	Long: `Validate policy files for syntax and semantic errors.

The lint command parses policy files and performs comprehensive validation:
  - YAML syntax validation
  - Policy structure validation
  - Operator and value validation (unknown operators, bad patterns)
  - Compiler eligibility reporting

Files that parse but cannot be compiled by the baseline compiler are
reported as warnings; with --strict those warnings become errors.

Examples:
  # Lint single file
  polaris lint --file policies/access.yaml

  # Lint directory
  polaris lint --dir policies/

  # Strict mode (warnings as errors)
  polaris lint --dir policies/ --strict

  # JSON output for CI/CD
  polaris lint --dir policies/ --format json`,
	RunE: lintPolicies,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "policy file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of policy files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult represents the validation result for a single policy file.
type LintResult struct {
	File     string        `json:"file"`
	Valid    bool          `json:"valid"`
	Errors   []LintMessage `json:"errors,omitempty"`
	Warnings []LintMessage `json:"warnings,omitempty"`
}

// LintMessage represents a single validation error or warning.
type LintMessage struct {
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Type     string `json:"type,omitempty"`
}

func lintPolicies(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string

	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		matches, err := filepath.Glob(filepath.Join(lintFlags.dir, "*.yaml"))
		if err != nil {
			return fmt.Errorf("failed to list policy files: %w", err)
		}
		ymlMatches, err := filepath.Glob(filepath.Join(lintFlags.dir, "*.yml"))
		if err != nil {
			return fmt.Errorf("failed to list policy files: %w", err)
		}
		files = append(files, matches...)
		files = append(files, ymlMatches...)
	}

	if len(files) == 0 {
		return fmt.Errorf("no policy files found")
	}
	sort.Strings(files)

	reg := registry.New()
	parser := policyfile.NewParser(reg)

	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintPolicyFile(parser, reg, file))
	}

	if lintFlags.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	return printLintResults(results, lintFlags.strict)
}

func lintPolicyFile(parser *policyfile.Parser, reg *registry.Registry, path string) LintResult {
	result := LintResult{File: path, Valid: true}

	file, err := parser.LoadFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, lintMessageFromError(err))
		return result
	}

	report := compile.Analyze(file.Set, reg)
	if !report.Eligible {
		for _, reason := range report.Reasons {
			result.Warnings = append(result.Warnings, LintMessage{
				Message:  fmt.Sprintf("not compilable: %s", reason),
				Severity: "warning",
				Type:     "eligibility",
			})
		}
	}

	return result
}

// lintMessageFromError extracts location information from policy file errors.
func lintMessageFromError(err error) LintMessage {
	var pfErr *policyfile.Error
	if errors.As(err, &pfErr) {
		return LintMessage{
			Line:     pfErr.Location.Line,
			Column:   pfErr.Location.Column,
			Message:  pfErr.Message,
			Severity: "error",
			Type:     string(pfErr.Type),
		}
	}
	return LintMessage{
		Message:  err.Error(),
		Severity: "error",
	}
}

func printLintResults(results []LintResult, strict bool) error {
	var errorCount, warningCount int

	for _, result := range results {
		if result.Valid && len(result.Warnings) == 0 {
			fmt.Printf("✓ %s\n", result.File)
			continue
		}

		if result.Valid {
			fmt.Printf("⚠ %s\n", result.File)
		} else {
			fmt.Printf("✗ %s\n", result.File)
		}

		for _, msg := range result.Errors {
			errorCount++
			if msg.Line > 0 {
				fmt.Printf("    error at line %d, column %d: %s\n", msg.Line, msg.Column, msg.Message)
			} else {
				fmt.Printf("    error: %s\n", msg.Message)
			}
		}
		for _, msg := range result.Warnings {
			warningCount++
			fmt.Printf("    warning: %s\n", msg.Message)
		}
	}

	fmt.Println()
	summary := []string{fmt.Sprintf("%d files", len(results))}
	if errorCount > 0 {
		summary = append(summary, fmt.Sprintf("%d errors", errorCount))
	}
	if warningCount > 0 {
		summary = append(summary, fmt.Sprintf("%d warnings", warningCount))
	}
	fmt.Println(strings.Join(summary, ", "))

	if errorCount > 0 {
		return fmt.Errorf("validation failed")
	}
	if strict && warningCount > 0 {
		return fmt.Errorf("validation failed in strict mode")
	}
	return nil
}
