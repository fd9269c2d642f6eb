package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"meridian-hq/polaris/pkg/constraint"
	"meridian-hq/polaris/pkg/constraint/cache"
	"meridian-hq/polaris/pkg/constraint/compile"
	"meridian-hq/polaris/pkg/constraint/interp"
	"meridian-hq/polaris/pkg/constraint/registry"
	"meridian-hq/polaris/pkg/policyfile"
)

var checkFlags struct {
	policy    string
	dir       string
	name      string
	doc       string
	interpret bool
	format    string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a document against a constraint set",
	Long: `Evaluate a JSON document against a constraint set loaded from a policy file.

The result is one of three outcomes:
  - satisfied: every constraint holds (exit code 0)
  - conflict: a present field violates a constraint (exit code 1)
  - open: some constrained fields are absent from the document (exit code 2)

By default the constraint set is compiled before evaluation. Use --interpret
to force the generic interpreter, for example to check sets that the compiler
rejects as ineligible.

Examples:
  # Check a document against a policy file
  polaris check --policy policies/access.yaml --doc request.json

  # Pick a named policy out of a directory
  polaris check --dir policies/ --name order-limits --doc order.json

  # Force interpreted evaluation
  polaris check --policy policies/access.yaml --doc request.json --interpret

  # JSON output for scripting
  polaris check --policy policies/access.yaml --doc request.json --format json`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.policy, "policy", "p", "", "policy file to load")
	checkCmd.Flags().StringVarP(&checkFlags.dir, "dir", "d", "", "directory of policy files")
	checkCmd.Flags().StringVar(&checkFlags.name, "name", "", "policy name to select (with --dir)")
	checkCmd.Flags().StringVar(&checkFlags.doc, "doc", "", "JSON document to evaluate")
	checkCmd.Flags().BoolVar(&checkFlags.interpret, "interpret", false, "use the interpreter instead of the compiler")
	checkCmd.Flags().StringVar(&checkFlags.format, "format", "text", "output format: text, json")
}

// checkResult is the JSON-serializable outcome of a check run.
type checkResult struct {
	Policy   string   `json:"policy"`
	Document string   `json:"document"`
	Outcome  string   `json:"outcome"`
	Path     string   `json:"path,omitempty"`
	Detail   string   `json:"detail,omitempty"`
	Compiled bool     `json:"compiled"`
	Missing  []string `json:"missing_constraints,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkFlags.doc == "" {
		return fmt.Errorf("--doc must be specified")
	}

	file, err := loadPolicy(checkFlags.policy, checkFlags.dir, checkFlags.name)
	if err != nil {
		return err
	}

	doc, err := loadDocument(checkFlags.doc)
	if err != nil {
		return err
	}

	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}

	reg := registry.New()
	logger := newLogger()

	var residual *constraint.Residual
	compiled := false

	if checkFlags.interpret {
		residual, err = interp.New(reg).Evaluate(file.Set, doc)
		if err != nil {
			return fmt.Errorf("evaluating %q: %w", file.Name, err)
		}
	} else {
		c := cache.New(reg, newCacheConfig(cfg), logger)
		program, err := c.GetOrCompile(file.Set)
		if err != nil {
			var ineligible *compile.IneligibleError
			if errors.As(err, &ineligible) {
				logger.Debug("set not compilable, interpreting", "policy", file.Name, "reasons", ineligible.Reasons)
				residual, err = interp.New(reg).Evaluate(file.Set, doc)
				if err != nil {
					return fmt.Errorf("evaluating %q: %w", file.Name, err)
				}
			} else {
				return fmt.Errorf("compiling %q: %w", file.Name, err)
			}
		} else {
			residual = program.Evaluate(doc)
			compiled = true
		}
	}

	result := buildCheckResult(file, residual, compiled)

	if checkFlags.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printCheckResult(result)
	}

	switch {
	case residual.IsConflict():
		os.Exit(1)
	case residual.IsOpen():
		os.Exit(2)
	}
	return nil
}

func buildCheckResult(file *policyfile.File, r *constraint.Residual, compiled bool) checkResult {
	result := checkResult{
		Policy:   file.Name,
		Document: checkFlags.doc,
		Compiled: compiled,
	}

	switch {
	case r.IsSatisfied():
		result.Outcome = "satisfied"
	case r.IsOpen():
		result.Outcome = "open"
		result.Path = r.Path.String()
		for _, c := range r.Constraints {
			result.Missing = append(result.Missing, c.String())
		}
	case r.IsConflict():
		result.Outcome = "conflict"
		result.Path = r.Path.String()
		result.Detail = fmt.Sprintf("requires %s, got %v", r.Constraint, r.Witness)
	}

	return result
}

func printCheckResult(result checkResult) {
	switch result.Outcome {
	case "satisfied":
		fmt.Printf("✓ %s: satisfied\n", result.Policy)
	case "open":
		fmt.Printf("? %s: open at %s\n", result.Policy, result.Path)
		for _, c := range result.Missing {
			fmt.Printf("    awaiting %s\n", c)
		}
	case "conflict":
		fmt.Printf("✗ %s: conflict at %s\n", result.Policy, result.Path)
		fmt.Printf("    %s\n", result.Detail)
	}
}

// loadPolicy resolves the --policy / --dir / --name flag combination to a
// single policy file.
func loadPolicy(path, dir, name string) (*policyfile.File, error) {
	if path == "" && dir == "" {
		return nil, fmt.Errorf("either --policy or --dir must be specified")
	}
	if path != "" && dir != "" {
		return nil, fmt.Errorf("--policy and --dir are mutually exclusive")
	}

	parser := policyfile.NewParser(nil)

	if path != "" {
		return parser.LoadFile(path)
	}

	files, err := parser.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	if name == "" {
		if len(files) == 1 {
			return files[0], nil
		}
		return nil, fmt.Errorf("directory %q contains %d policies, select one with --name", dir, len(files))
	}
	return policyfile.Find(files, name)
}

// loadDocument reads and decodes a JSON document.
func loadDocument(path string) (constraint.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %q: %w", path, err)
	}

	var doc constraint.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document %q: %w", path, err)
	}
	return doc, nil
}
