// Polaris is a constraint compilation and evaluation engine.
//
// It turns declarative constraint sets into specialized compiled evaluators
// and checks documents against them, reporting satisfied, open, and
// conflicting constraints:
//   - Compiled closure-tree evaluation of scalar constraints
//   - Streaming forall/exists quantifier evaluation
//   - LRU caching of compiled programs keyed by set signature
//   - YAML policy files with precise error locations
//
// Usage:
//
//	# Check a document against a policy file
//	polaris check --policy policies/access.yaml --doc request.json
//
//	# Validate policy files without evaluating anything
//	polaris lint --dir policies/
//
//	# Compare compiled and interpreted evaluation speed
//	polaris bench --policy policies/access.yaml --doc request.json
//
//	# Show version information
//	polaris version
package main

func main() {
	Execute()
}
