// Package policyfile reads declarative constraint sets from YAML files.
//
// A policy file names a constraint set and declares scalar constraints and
// quantifiers over document paths:
//
//	name: admin-access
//	version: "1.0"
//	description: admins only, small orders
//	constraints:
//	  - path: user.role
//	    require:
//	      - op: eq
//	        value: admin
//	quantifiers:
//	  - kind: forall
//	    collection: items
//	    where:
//	      - path: qty
//	        op: lte
//	        value: 5
//
// Parsing keeps YAML node positions, so structural and validation errors
// carry file:line:column locations. Validation checks operator names against
// the operator registry, operand shapes against their operators (integer
// values for ordering operators, scalar lists for membership, compilable
// patterns for matches), and rejects empty paths and empty constraint lists
// before a set ever reaches the analyzer.
//
// Watcher provides debounced fsnotify-based hot reload: callers typically
// reload their sets and clear the compiled-evaluator cache from the reload
// callback.
package policyfile
