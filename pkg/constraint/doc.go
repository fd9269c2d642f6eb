// Package constraint defines the data model for declarative per-field
// constraint sets and their evaluation results.
//
// A Set is a conjunction of nodes. Each node binds a document path to an
// ordered list of constraints, or quantifies (forall/exists) a list of
// element constraints over a collection path. Evaluating a Set against a
// Document yields a Residual:
//
//   - Satisfied: every node holds. A single canonical instance is returned,
//     so the hot path never allocates for the common outcome.
//   - Open: the document has no value at a path. Evaluation is deferred, not
//     failed; the residual restates the constraints so a caller can supply
//     the missing data and retry.
//   - Conflict: the document has a value that violates a constraint. The
//     residual carries the violated constraint and the offending value as a
//     witness for diagnostics.
//
// Sets are built once and evaluated many times. Evaluation is performed
// either by the specializing compiler (package compile) or by the generic
// interpreter (package interp); both produce identical residuals for the
// built-in operators, so callers can treat the two paths interchangeably.
//
// # Basic Usage
//
//	set := constraint.NewSet()
//	set.Require(constraint.MustParsePath("user.role"), constraint.Constraint{
//	    Op:    constraint.OpEqual,
//	    Value: "admin",
//	})
//
//	doc := constraint.Document{"user": map[string]interface{}{"role": "admin"}}
//	// hand the set to compile.Compile or interp.New(...).Evaluate
package constraint
